// Package profile provides HTTP handlers for viewing and editing user profiles.
package profile

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"CampusHire-backend/internal/database"
	"CampusHire-backend/internal/model"
	"CampusHire-backend/internal/utilities"
)

// MaxUploadBytes caps the size of a single uploaded file.
const MaxUploadBytes = 5 << 20

// allowedUploadTypes maps accepted Content-Type values to stored extensions.
// PDFs become the resume, images become the profile photo.
var allowedUploadTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/jpg":       ".jpg",
	"image/png":       ".png",
}

// ProfileController handles profile related endpoints
type ProfileController struct {
	DB *database.DBinstanceStruct
}

// NewProfileController creates a new instance of ProfileController
func NewProfileController(db *database.DBinstanceStruct) *ProfileController {
	return &ProfileController{
		DB: db,
	}
}

// GetMyProfileHandler returns the calling user's account and profile.
// @Summary Get the caller's profile
// @Tags Profile
// @Produce json
// @Success 200 {object} model.User "The caller's profile"
// @Failure 401 {object} utilities.ErrorResponse "Invalid session"
// @Router /user/me [get]
func (pc *ProfileController) GetMyProfileHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfileHandler applies a partial profile update from a multipart
// form. Text fields overwrite only when non-empty; an attached file is
// validated before anything is written, then routed by MIME type: PDFs
// replace the resume, images replace the profile photo.
// @Summary Update the caller's profile
// @Description Multipart form. Empty fields are left unchanged. skills and social_links are comma-separated.
// @Tags Profile
// @Accept mpfd
// @Produce json
// @Param fullname formData string false "Full name"
// @Param phone_number formData string false "Phone number"
// @Param bio formData string false "Bio"
// @Param skills formData string false "Comma-separated skills"
// @Param company formData string false "Company name"
// @Param position formData string false "Position"
// @Param location formData string false "Location"
// @Param social_links formData string false "Comma-separated links"
// @Param resume_url formData string false "External resume URL"
// @Param file formData file false "Resume (pdf) or profile photo (jpg, jpeg, png), at most 5 MB"
// @Success 200 {object} model.User "Updated profile"
// @Failure 400 {object} utilities.ErrorResponse "File too large or unsupported file type"
// @Failure 401 {object} utilities.ErrorResponse "Invalid session"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /user/profile/update [post]
func (pc *ProfileController) UpdateProfileHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	// Validate the attachment fully before touching the database so a bad
	// upload never leaves a half-applied update behind. A failed multipart
	// parse (the body-size cap firing mid-read included) must not be
	// mistaken for "no file attached".
	var upload *model.File
	fileHeader, err := c.FormFile("file")
	switch {
	case err == nil:
		if fileHeader.Size > MaxUploadBytes {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "File exceeds the 5 MB limit",
			})
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")
		extension, ok := allowedUploadTypes[contentType]
		if !ok {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "Only pdf, jpg, jpeg and png files are supported",
			})
			return
		}

		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprint("Failed to open uploaded file: ", err.Error()),
			})
			return
		}
		defer f.Close()

		content, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprint("Failed to read uploaded file: ", err.Error()),
			})
			return
		}

		upload = &model.File{
			Name:         uuid.NewString() + extension,
			Content:      content,
			Extension:    extension,
			OriginalName: fileHeader.Filename,
		}

	case errors.Is(err, http.ErrMissingFile):
		// Text-only update.

	default:
		msg := "Failed to parse multipart form"
		if errors.As(err, new(*http.MaxBytesError)) {
			msg = "File exceeds the 5 MB limit"
		}
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: msg})
		return
	}

	info := model.EditableProfileInfo{
		FullName:    c.PostForm("fullname"),
		PhoneNumber: c.PostForm("phone_number"),
		Bio:         c.PostForm("bio"),
		Skills:      splitList(c.PostForm("skills")),
		Company:     c.PostForm("company"),
		Position:    c.PostForm("position"),
		Location:    c.PostForm("location"),
		SocialLinks: splitList(c.PostForm("social_links")),
		ResumeURL:   c.PostForm("resume_url"),
	}

	utilities.MergeNonEmpty(&user.EditableProfileInfo, &info)

	if upload != nil {
		if err := pc.DB.Create(upload).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprint("Failed to store uploaded file: ", err.Error()),
			})
			return
		}
		if upload.Extension == ".pdf" {
			user.ResumeID = &upload.ID
			user.ResumeOriginalName = upload.OriginalName
		} else {
			user.PhotoID = &upload.ID
		}
	}

	if err := pc.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to update profile: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, user)
}

// splitList turns a comma-separated form value into trimmed entries,
// dropping empty ones.
func splitList(raw string) pq.StringArray {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var out pq.StringArray
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
