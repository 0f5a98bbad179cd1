// Package file provides HTTP handlers for serving stored files and resumes.
package file

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"CampusHire-backend/internal/database"
	"CampusHire-backend/internal/model"
	"CampusHire-backend/internal/utilities"
)

// contentTypes maps stored extensions back to serveable Content-Type values.
var contentTypes = map[string]string{
	".pdf": "application/pdf",
	".jpg": "image/jpeg",
	".png": "image/png",
}

// FileController handles file serving endpoints
type FileController struct {
	DB *database.DBinstanceStruct
}

// NewFileController creates a new instance of FileController
func NewFileController(db *database.DBinstanceStruct) *FileController {
	return &FileController{
		DB: db,
	}
}

// GetFile serves a stored file as an attachment.
// @Summary Download a stored file
// @Tags File
// @Produce octet-stream
// @Param id path integer true "ID of the file"
// @Success 200 {file} binary "File content"
// @Failure 400 {object} utilities.ErrorResponse "Invalid file id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid session"
// @Failure 404 {object} utilities.ErrorResponse "File not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /file/{id} [get]
func (fc *FileController) GetFile(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid file id"})
		return
	}

	var stored model.File
	if err := fc.DB.Where("id = ?", id).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve file: %s", err.Error()),
		})
		return
	}

	serveFile(c, stored, true)
}

// DownloadResume serves the caller's resume as an attachment named after the
// originally uploaded file. A remote resume URL takes precedence and is
// answered with a redirect.
// @Summary Download own resume
// @Tags File
// @Produce octet-stream
// @Success 200 {file} binary "Resume content"
// @Success 302 {string} string "Redirect to the external resume URL"
// @Failure 401 {object} utilities.ErrorResponse "Invalid session"
// @Failure 404 {object} utilities.ErrorResponse "No resume uploaded"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /resume/download [get]
func (fc *FileController) DownloadResume(c *gin.Context) {
	fc.serveResume(c, true)
}

// ViewResume serves the caller's resume inline for in-browser display.
// @Summary View own resume
// @Tags File
// @Produce octet-stream
// @Success 200 {file} binary "Resume content"
// @Success 302 {string} string "Redirect to the external resume URL"
// @Failure 401 {object} utilities.ErrorResponse "Invalid session"
// @Failure 404 {object} utilities.ErrorResponse "No resume uploaded"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /resume/view [get]
func (fc *FileController) ViewResume(c *gin.Context) {
	fc.serveResume(c, false)
}

func (fc *FileController) serveResume(c *gin.Context, asAttachment bool) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	if user.ResumeURL != "" {
		c.Redirect(http.StatusFound, user.ResumeURL)
		return
	}

	if user.ResumeID == nil {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "No resume uploaded"})
		return
	}

	var stored model.File
	if err := fc.DB.Where("id = ?", *user.ResumeID).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "No resume uploaded"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve resume: %s", err.Error()),
		})
		return
	}

	serveFile(c, stored, asAttachment)
}

func serveFile(c *gin.Context, stored model.File, asAttachment bool) {
	contentType, ok := contentTypes[stored.Extension]
	if !ok {
		contentType = "application/octet-stream"
	}

	name := stored.OriginalName
	if name == "" {
		name = stored.Name
	}

	if asAttachment {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	} else {
		c.Header("Content-Disposition", "inline")
	}

	c.Data(http.StatusOK, contentType, stored.Content)
}
