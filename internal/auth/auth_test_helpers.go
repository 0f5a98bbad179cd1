package auth

import (
	"fmt"
	"net/http"
	"testing"

	"CampusHire-backend/internal/database"
	"CampusHire-backend/internal/utilities"
)

// TestSigningSecret is the signing secret shared by every test that needs to
// mint or validate session tokens.
const TestSigningSecret = "test-signing-secret"

// NewTestTokenManager returns a TokenManager built on TestSigningSecret.
func NewTestTokenManager() *TokenManager {
	return NewTokenManager(TestSigningSecret)
}

// GetSessionToken logs in through the login handler and returns the session
// token from the response cookie.
func GetSessionToken(
	t *testing.T,
	db *database.DBinstanceStruct,
	email string,
	password string,
	role string,
) (string, error) {
	t.Helper()
	handler := NewLocalAuthHandler(db, NewTestTokenManager(), NewInMemoryBlacklistStore())
	rec, _, err := utilities.SimulateAPICall(handler.LoginHandler, "/login", http.MethodPost, map[string]string{
		"email":    email,
		"password": password,
		"role":     role,
	})
	if err != nil {
		return "", err
	}
	if rec.Code != http.StatusOK {
		return "", fmt.Errorf("login failed: status %d, body: %s", rec.Code, rec.Body.String())
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == SessionCookieName && cookie.Value != "" {
			return cookie.Value, nil
		}
	}
	return "", fmt.Errorf("login failed: no session cookie in response")
}
