package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"CampusHire-backend/internal/database"
	"CampusHire-backend/internal/model"
	"CampusHire-backend/internal/utilities"
)

const credentialError = "Incorrect email or password"

// LocalAuthHandler holds dependencies for credential based auth endpoints.
type LocalAuthHandler struct {
	DB        *database.DBinstanceStruct
	Tokens    *TokenManager
	Blacklist JwtBlacklistStore
}

// NewLocalAuthHandler creates a new instance of LocalAuthHandler.
func NewLocalAuthHandler(db *database.DBinstanceStruct, tokens *TokenManager, blacklist JwtBlacklistStore) *LocalAuthHandler {
	return &LocalAuthHandler{
		DB:        db,
		Tokens:    tokens,
		Blacklist: blacklist,
	}
}

type registerInfo struct {
	FullName    string `json:"fullname" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	Role        string `json:"role" binding:"required,oneof=student recruiter"`
	PhoneNumber string `json:"phone_number"`
}

type loginInfo struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type userResponse struct {
	User model.User `json:"user"`
}

// RegisterHandler handles account creation from fullname, email, password
// and role. The email must be well formed and not registered yet, compared
// case-insensitively.
// @Summary Register a new account
// @Description Email must be unique (case-insensitive) and role either 'student' or 'recruiter'
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body registerInfo true "Registration info"
// @Success 201 {object} userResponse "Account created, session cookie set"
// @Failure 400 {object} utilities.ErrorResponse "Missing or malformed field, or email already registered"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /user/register [post]
func (lh *LocalAuthHandler) RegisterHandler(c *gin.Context) {
	var info registerInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Fullname, a valid email, password, and role (only 'student' or 'recruiter') must be provided",
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(info.Email))

	var existing model.User
	err := lh.DB.Where("email = ?", email).First(&existing).Error

	switch {
	case err == nil:
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email already registered",
		})
		return

	case errors.Is(err, gorm.ErrRecordNotFound):
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed hash password: %s", err.Error()),
		})
		return
	}

	user := model.User{
		Email:    email,
		Password: hashedPassword,
		Role:     info.Role,
		EditableProfileInfo: model.EditableProfileInfo{
			FullName:    info.FullName,
			PhoneNumber: info.PhoneNumber,
		},
	}
	if err := lh.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create user: %s", err.Error()),
		})
		return
	}

	accessToken, err := lh.Tokens.Generate(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	SetSessionCookie(c, accessToken)
	c.JSON(http.StatusCreated, userResponse{User: user})
}

// LoginHandler handles credential based login. A wrong email, wrong password
// or mismatched role all fail with the same message so nothing leaks about
// which factor was wrong.
// @Summary Authenticate with email, password and role
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials for login"
// @Success 200 {object} userResponse "Session cookie set"
// @Failure 400 {object} utilities.ErrorResponse "Missing field"
// @Failure 401 {object} utilities.ErrorResponse "Email, password or role incorrect"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /user/login [post]
func (lh *LocalAuthHandler) LoginHandler(c *gin.Context) {
	var info loginInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email, password and role must be provided",
		})
		return
	}

	var user model.User
	err := lh.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(info.Email))).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: credentialError})
		return

	case err == nil:
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	if user.Password == "" || !utilities.VerifyPassword(info.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: credentialError})
		return
	}

	if user.Role != info.Role {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: credentialError})
		return
	}

	accessToken, err := lh.Tokens.Generate(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	SetSessionCookie(c, accessToken)
	c.JSON(http.StatusOK, userResponse{User: user})
}

// LogoutHandler revokes the current session token (when one is present) and
// clears the session cookie.
// @Summary Log out and clear the session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} utilities.MessageResponse "Logged out"
// @Router /user/logout [get]
func (lh *LocalAuthHandler) LogoutHandler(c *gin.Context) {
	tokenString, err := c.Cookie(SessionCookieName)
	if err == nil && tokenString != "" {
		if claims, err := lh.Tokens.Validate(tokenString); err == nil {
			if err := lh.Blacklist.AddToBlacklist(tokenString, claims.ExpiresAt.Time); err != nil {
				c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to logout"})
				return
			}
		}
	}

	ClearSessionCookie(c)
	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Logged out successfully"})
}
