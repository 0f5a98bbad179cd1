// Package auth contain session token handling and credential based login.
package auth

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"CampusHire-backend/internal/model"
)

const (
	// JwtIssuer is the issuer claim stamped on every session token
	JwtIssuer = "CampusHire"
	// SessionCookieName is the cookie carrying the session token
	SessionCookieName = "token"
	// SessionTTL is how long a session token stays valid
	SessionTTL = 24 * time.Hour
)

// SessionClaims are the claims embedded in a session token. Subject holds
// the user id.
type SessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and validates session tokens with a secret provided at
// startup instead of reading the environment at first use.
type TokenManager struct {
	secret []byte
}

// NewTokenManager constructs a TokenManager for the given signing secret.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Generate signs a session token for the given user.
func (tm *TokenManager) Generate(user model.User) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    JwtIssuer,
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})

	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a session token, returning its claims.
func (tm *TokenManager) Validate(encoded string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(encoded, claims, func(token *jwt.Token) (interface{}, error) {
		if _, isvalid := token.Method.(*jwt.SigningMethodHMAC); !isvalid {
			return nil, fmt.Errorf("invalid token")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Issuer != JwtIssuer {
		return nil, jwt.ErrTokenInvalidIssuer
	}
	return claims, nil
}

// SetSessionCookie attaches the session token as an HTTP-only cookie.
func SetSessionCookie(c *gin.Context, token string) {
	c.SetCookie(SessionCookieName, token, int(SessionTTL.Seconds()), "/", "", false, true)
}

// ClearSessionCookie removes the session cookie from the client.
func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}
