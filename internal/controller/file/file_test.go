package file

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"CampusHire-backend/internal/auth"
	"CampusHire-backend/internal/database"
	"CampusHire-backend/internal/middleware"
	"CampusHire-backend/internal/model"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	var teardown func(context.Context) error
	teardown, testDB, err = database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}

	m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if teardown != nil {
		_ = teardown(ctx)
	}
}

func newFileRouter() *gin.Engine {
	r := gin.Default()
	fc := NewFileController(testDB)
	tokens := auth.NewTestTokenManager()

	authed := r.Group("", middleware.RequireAuth(testDB, tokens))
	authed.GET("/file/:id", fc.GetFile)
	authed.GET("/resume/download", fc.DownloadResume)
	authed.GET("/resume/view", fc.ViewResume)
	return r
}

func doGet(r *gin.Engine, path string, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGetFile(t *testing.T) {
	stored := model.File{
		Name:         "test-get-file.pdf",
		Content:      []byte("%PDF-1.4 file body"),
		Extension:    ".pdf",
		OriginalName: "report.pdf",
	}
	assert.NoError(t, testDB.Create(&stored).Error)

	r := newFileRouter()
	token, err := auth.NewTestTokenManager().Generate(database.TestStudent1)
	assert.NoError(t, err)

	rec := doGet(r, fmt.Sprintf("/file/%d", stored.ID), token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "report.pdf")
	assert.Equal(t, stored.Content, rec.Body.Bytes())
}

func TestGetFileNotFound(t *testing.T) {
	r := newFileRouter()
	token, err := auth.NewTestTokenManager().Generate(database.TestStudent1)
	assert.NoError(t, err)

	rec := doGet(r, "/file/999999", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResumeDownloadWithoutResume(t *testing.T) {
	r := newFileRouter()

	// TestRecruiter2 never uploads a resume in any test.
	token, err := auth.NewTestTokenManager().Generate(database.TestRecruiter2)
	assert.NoError(t, err)

	rec := doGet(r, "/resume/download", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No resume uploaded")
}

func TestResumeDownloadAndView(t *testing.T) {
	stored := model.File{
		Name:         "test-resume-dl.pdf",
		Content:      []byte("%PDF-1.4 resume body"),
		Extension:    ".pdf",
		OriginalName: "alice_resume.pdf",
	}
	assert.NoError(t, testDB.Create(&stored).Error)

	// Attach the resume directly to a dedicated user row.
	user := model.User{
		Email:              "resume_owner@example.com",
		Role:               model.RoleStudent,
		ResumeID:           &stored.ID,
		ResumeOriginalName: stored.OriginalName,
	}
	assert.NoError(t, testDB.Create(&user).Error)

	r := newFileRouter()
	token, err := auth.NewTestTokenManager().Generate(user)
	assert.NoError(t, err)

	rec := doGet(r, "/resume/download", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "alice_resume.pdf")
	assert.Equal(t, stored.Content, rec.Body.Bytes())

	rec = doGet(r, "/resume/view", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "inline", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
}

func TestResumeURLRedirect(t *testing.T) {
	user := model.User{
		Email: "remote_resume@example.com",
		Role:  model.RoleStudent,
		EditableProfileInfo: model.EditableProfileInfo{
			ResumeURL: "https://cdn.example.com/resume.pdf",
		},
	}
	assert.NoError(t, testDB.Create(&user).Error)

	r := newFileRouter()
	token, err := auth.NewTestTokenManager().Generate(user)
	assert.NoError(t, err)

	rec := doGet(r, "/resume/view", token)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://cdn.example.com/resume.pdf", rec.Header().Get("Location"))
}
