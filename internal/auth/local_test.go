package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"CampusHire-backend/internal/database"
	"CampusHire-backend/internal/model"
	"CampusHire-backend/internal/utilities"
)

var testDB *database.DBinstanceStruct
var testTeardown func(context.Context) error

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	testTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}

	m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := testTeardown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "teardown error: %v\n", err)
	}
}

func newTestHandler() *LocalAuthHandler {
	return NewLocalAuthHandler(testDB, NewTestTokenManager(), NewInMemoryBlacklistStore())
}

// sessionCookie returns the session cookie value set on the response, or "".
func sessionCookie(rec interface{ Result() *http.Response }) string {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == SessionCookieName {
			return cookie.Value
		}
	}
	return ""
}

func TestRegisterStudent(t *testing.T) {
	handler := newTestHandler()

	payload := map[string]string{
		"fullname": "Test Student",
		"email":    "register_student@example.com",
		"password": "password123",
		"role":     "student",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.RegisterHandler, "/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code, "unexpected status, body: %s", rec.Body.String())

	token := sessionCookie(rec)
	assert.NotEmpty(t, token, "session cookie not set")

	claims, err := NewTestTokenManager().Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, "register_student@example.com", claims.Email)
	assert.Equal(t, model.RoleStudent, claims.Role)

	userVal, ok := resp["user"].(map[string]interface{})
	assert.True(t, ok, "user key missing in response")
	assert.Equal(t, userVal["id"], claims.Subject, "token subject should match user id")
	_, hasPassword := userVal["password"]
	assert.False(t, hasPassword, "password must never be serialized")
}

func TestRegisterLoginRoundtrip(t *testing.T) {
	handler := newTestHandler()

	registerPayload := map[string]string{
		"fullname": "Roundtrip Recruiter",
		"email":    "roundtrip@example.com",
		"password": "password123",
		"role":     "recruiter",
	}
	rec, _, err := utilities.SimulateAPICall(handler.RegisterHandler, "/register", http.MethodPost, registerPayload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	loginPayload := map[string]string{
		"email":    "roundtrip@example.com",
		"password": "password123",
		"role":     "recruiter",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.LoginHandler, "/login", http.MethodPost, loginPayload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.NotEmpty(t, sessionCookie(rec))
	assert.Contains(t, resp, "user")
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	handler := newTestHandler()

	payload := map[string]string{
		"fullname": "Duplicate Email",
		"email":    "STUDENT1@EXAMPLE.COM", // seeded as student1@example.com
		"password": "password123",
		"role":     "student",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.RegisterHandler, "/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	errMsg, _ := resp["error"].(string)
	assert.Equal(t, "Email already registered", errMsg)
}

func TestRegisterInvalidRole(t *testing.T) {
	handler := newTestHandler()

	payload := map[string]string{
		"fullname": "Invalid Role",
		"email":    "invalid_role@example.com",
		"password": "password123",
		"role":     "admin", // not allowed
	}
	rec, resp, err := utilities.SimulateAPICall(handler.RegisterHandler, "/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	errMsg, _ := resp["error"].(string)
	assert.Contains(t, errMsg, "'student' or 'recruiter'")
}

func TestRegisterMalformedEmail(t *testing.T) {
	handler := newTestHandler()

	payload := map[string]string{
		"fullname": "Bad Email",
		"email":    "not-an-email",
		"password": "password123",
		"role":     "student",
	}
	rec, _, err := utilities.SimulateAPICall(handler.RegisterHandler, "/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginSuccess(t *testing.T) {
	handler := newTestHandler()
	payload := map[string]string{
		"email":    database.TestStudent1.Email,
		"password": database.TestSeedPassword,
		"role":     model.RoleStudent,
	}
	rec, resp, err := utilities.SimulateAPICall(handler.LoginHandler, "/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	token := sessionCookie(rec)
	assert.NotEmpty(t, token)

	claims, err := NewTestTokenManager().Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, database.TestStudent1.ID.String(), claims.Subject)

	userVal, ok := resp["user"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, database.TestStudent1.Email, userVal["email"])
}

func TestLoginWrongPassword(t *testing.T) {
	handler := newTestHandler()
	payload := map[string]string{
		"email":    database.TestStudent1.Email,
		"password": "WrongPass999!",
		"role":     model.RoleStudent,
	}
	rec, resp, err := utilities.SimulateAPICall(handler.LoginHandler, "/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	errMsg, _ := resp["error"].(string)
	assert.Equal(t, credentialError, errMsg)
}

func TestLoginRoleMismatchSameError(t *testing.T) {
	handler := newTestHandler()

	// Correct credentials, wrong role. The message must be identical to the
	// wrong-password one so the response leaks nothing about which factor failed.
	payload := map[string]string{
		"email":    database.TestStudent1.Email,
		"password": database.TestSeedPassword,
		"role":     model.RoleRecruiter,
	}
	rec, resp, err := utilities.SimulateAPICall(handler.LoginHandler, "/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	errMsg, _ := resp["error"].(string)
	assert.Equal(t, credentialError, errMsg)
}

func TestLoginUserNotFound(t *testing.T) {
	handler := newTestHandler()
	payload := map[string]string{
		"email":    "nobody@example.com",
		"password": "SomePassword1!",
		"role":     model.RoleStudent,
	}
	rec, resp, err := utilities.SimulateAPICall(handler.LoginHandler, "/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	errMsg, _ := resp["error"].(string)
	assert.Equal(t, credentialError, errMsg)
}
