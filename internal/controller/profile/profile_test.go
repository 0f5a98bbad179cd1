package profile

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"CampusHire-backend/internal/auth"
	"CampusHire-backend/internal/database"
	"CampusHire-backend/internal/middleware"
	"CampusHire-backend/internal/model"
	"CampusHire-backend/internal/testutil"
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

func newProfileRouter() *gin.Engine {
	r := gin.Default()
	pc := NewProfileController(testDB)
	tokens := auth.NewTestTokenManager()

	// Same chain as the production route registration, body cap included.
	r.GET("/user/me", middleware.RequireAuth(testDB, tokens), pc.GetMyProfileHandler)
	r.POST("/user/profile/update",
		middleware.RequireAuth(testDB, tokens),
		middleware.SizeLimit(5<<20),
		pc.UpdateProfileHandler)
	return r
}

func TestGetMyProfile(t *testing.T) {
	r := newProfileRouter()
	token, err := auth.NewTestTokenManager().Generate(database.TestStudent1)
	assert.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/user/me", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.TestStudent1.Email, resp["email"])
	_, hasPassword := resp["password"]
	assert.False(t, hasPassword, "password must never be serialized")
}

func TestUpdateProfileTextFields(t *testing.T) {
	r := newProfileRouter()
	token, err := auth.NewTestTokenManager().Generate(database.TestStudent2)
	assert.NoError(t, err)

	fields := map[string]string{
		"bio":    "Forever a student",
		"skills": "Go, SQL , , Docker",
	}
	rec, resp := testutil.MakeMultipartRequest(fields, nil, token, r, "/user/profile/update", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Equal(t, "Forever a student", resp["bio"])

	var reloaded model.User
	assert.NoError(t, testDB.First(&reloaded, "id = ?", database.TestStudent2.ID).Error)
	assert.Equal(t, "Forever a student", reloaded.Bio)
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, []string(reloaded.Skills))
	// Fields that were not supplied stay as they were.
	assert.Equal(t, database.TestStudent2.FullName, reloaded.FullName)
}

func TestUpdateProfileResumeUpload(t *testing.T) {
	r := newProfileRouter()
	token, err := auth.NewTestTokenManager().Generate(database.TestStudent1)
	assert.NoError(t, err)

	files := []testutil.FilePart{{
		FieldName:   "file",
		FileName:    "my_resume.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF-1.4 fake resume"),
	}}
	rec, resp := testutil.MakeMultipartRequest(nil, files, token, r, "/user/profile/update", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.NotNil(t, resp["resume_id"])
	assert.Equal(t, "my_resume.pdf", resp["resume_original_name"])

	var reloaded model.User
	assert.NoError(t, testDB.First(&reloaded, "id = ?", database.TestStudent1.ID).Error)
	assert.NotNil(t, reloaded.ResumeID)

	var stored model.File
	assert.NoError(t, testDB.First(&stored, "id = ?", *reloaded.ResumeID).Error)
	assert.Equal(t, ".pdf", stored.Extension)
	assert.Equal(t, []byte("%PDF-1.4 fake resume"), stored.Content)
}

func TestUpdateProfilePhotoUpload(t *testing.T) {
	r := newProfileRouter()
	token, err := auth.NewTestTokenManager().Generate(database.TestStudent2)
	assert.NoError(t, err)

	files := []testutil.FilePart{{
		FieldName:   "file",
		FileName:    "me.png",
		ContentType: "image/png",
		Content:     []byte("fake png bytes"),
	}}
	rec, resp := testutil.MakeMultipartRequest(nil, files, token, r, "/user/profile/update", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.NotNil(t, resp["photo_id"])
}

func TestUpdateProfileOversizedFileRejectedBeforeWrite(t *testing.T) {
	r := newProfileRouter()
	token, err := auth.NewTestTokenManager().Generate(database.TestStudent1)
	assert.NoError(t, err)

	var fileCountBefore int64
	assert.NoError(t, testDB.Model(&model.File{}).Count(&fileCountBefore).Error)

	files := []testutil.FilePart{{
		FieldName:   "file",
		FileName:    "huge.pdf",
		ContentType: "application/pdf",
		Content:     bytes.Repeat([]byte("x"), 6<<20), // 6 MB
	}}
	rec, resp := testutil.MakeMultipartRequest(nil, files, token, r, "/user/profile/update", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "5 MB")

	var fileCountAfter int64
	assert.NoError(t, testDB.Model(&model.File{}).Count(&fileCountAfter).Error)
	assert.Equal(t, fileCountBefore, fileCountAfter, "no file row may be written for a rejected upload")
}

func TestUpdateProfileUnsupportedFileType(t *testing.T) {
	r := newProfileRouter()
	token, err := auth.NewTestTokenManager().Generate(database.TestStudent1)
	assert.NoError(t, err)

	files := []testutil.FilePart{{
		FieldName:   "file",
		FileName:    "script.sh",
		ContentType: "application/x-sh",
		Content:     []byte("#!/bin/sh"),
	}}
	rec, resp := testutil.MakeMultipartRequest(nil, files, token, r, "/user/profile/update", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "supported")
}
