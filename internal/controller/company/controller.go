// Package company provides HTTP handlers for company registration and editing.
package company

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"CampusHire-backend/internal/database"
	"CampusHire-backend/internal/model"
	"CampusHire-backend/internal/utilities"
)

// allowedLogoTypes maps accepted logo Content-Type values to stored extensions.
var allowedLogoTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
}

// CompanyController handles company related endpoints
type CompanyController struct {
	DB *database.DBinstanceStruct
}

// NewCompanyController creates a new instance of CompanyController
func NewCompanyController(db *database.DBinstanceStruct) *CompanyController {
	return &CompanyController{
		DB: db,
	}
}

type registerCompanyInfo struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Location    string `json:"location"`
}

// RegisterCompany creates a company owned by the calling recruiter.
// A recruiter cannot register two companies with the same name.
// @Summary Register a company
// @Description Only recruiters can access this endpoint
// @Tags Company
// @Accept json
// @Produce json
// @Param Company body registerCompanyInfo true "Company information"
// @Success 201 {object} model.Company "Successfully registered company"
// @Failure 400 {object} utilities.ErrorResponse "Missing name or duplicate company name"
// @Failure 401 {object} utilities.ErrorResponse "Invalid session"
// @Failure 403 {object} utilities.ErrorResponse "Not a recruiter"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /company/register [post]
func (cc *CompanyController) RegisterCompany(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info registerCompanyInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Company name must be provided"})
		return
	}

	var existing model.Company
	err = cc.DB.Where("owner_id = ? AND name = ?", user.ID, info.Name).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "You have already registered a company with this name",
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to check existing companies",
		})
		return
	}

	company := model.Company{
		OwnerID: user.ID,
		EditableCompanyInfo: model.EditableCompanyInfo{
			Name:        info.Name,
			Description: info.Description,
			Website:     info.Website,
			Location:    info.Location,
		},
	}
	if err := cc.DB.Create(&company).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to register company: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, company)
}

// GetMyCompanies returns the companies owned by the calling recruiter.
// @Summary List the caller's companies
// @Tags Company
// @Produce json
// @Success 200 {array} model.Company "The caller's companies"
// @Failure 401 {object} utilities.ErrorResponse "Invalid session"
// @Failure 403 {object} utilities.ErrorResponse "Not a recruiter"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /company [get]
func (cc *CompanyController) GetMyCompanies(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var companies []model.Company
	if err := cc.DB.
		Where("owner_id = ?", user.ID).
		Order("created_at DESC").
		Find(&companies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch companies: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, companies)
}

// GetCompanyByID returns a single company by its uuid.
// @Summary Get company by ID
// @Tags Company
// @Produce json
// @Param id path string true "UUID of the company"
// @Success 200 {object} model.Company "The requested company"
// @Failure 400 {object} utilities.ErrorResponse "Malformed uuid"
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /company/get/{id} [get]
func (cc *CompanyController) GetCompanyByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid company id"})
		return
	}

	var company model.Company
	if err := cc.DB.Where("id = ?", id).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Company not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve company: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, company)
}

// UpdateCompany applies a partial update to a company the caller owns.
// The request may be JSON (text fields only, unknown fields rejected) or a
// multipart form with an optional logo image.
// @Summary Update a company
// @Description Empty or omitted fields are left unchanged
// @Tags Company
// @Accept json
// @Accept mpfd
// @Produce json
// @Param id path string true "UUID of the company"
// @Param Company body model.EditableCompanyInfo false "Fields to update"
// @Success 200 {object} model.Company "Updated company"
// @Failure 400 {object} utilities.ErrorResponse "Malformed uuid, unknown field or unsupported logo type"
// @Failure 401 {object} utilities.ErrorResponse "Invalid session"
// @Failure 403 {object} utilities.ErrorResponse "Company owned by somebody else"
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /company/update/{id} [post]
func (cc *CompanyController) UpdateCompany(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid company id"})
		return
	}

	var company model.Company
	if err := cc.DB.Where("id = ?", id).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Company not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve company: %s", err.Error()),
		})
		return
	}

	if company.OwnerID != user.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You can only update your own company",
		})
		return
	}

	var info model.EditableCompanyInfo
	var logo *model.File

	if c.ContentType() == "application/json" {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Failed to read request body"})
			return
		}

		decoder := json.NewDecoder(bytes.NewReader(body))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&info); err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
			})
			return
		}
	} else {
		info = model.EditableCompanyInfo{
			Name:        c.PostForm("name"),
			Description: c.PostForm("description"),
			Website:     c.PostForm("website"),
			Location:    c.PostForm("location"),
		}

		fileHeader, err := c.FormFile("file")
		if err == nil {
			contentType := fileHeader.Header.Get("Content-Type")
			extension, ok := allowedLogoTypes[contentType]
			if !ok {
				c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
					Error: "Logo must be a jpg, jpeg or png image",
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

			logo = &model.File{
				Name:         uuid.NewString() + extension,
				Content:      content,
				Extension:    extension,
				OriginalName: fileHeader.Filename,
			}
		}
	}

	utilities.MergeNonEmpty(&company.EditableCompanyInfo, &info)

	if logo != nil {
		if err := cc.DB.Create(logo).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprint("Failed to store logo: ", err.Error()),
			})
			return
		}
		company.LogoID = &logo.ID
	}

	if err := cc.DB.Save(&company).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to update company: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, company)
}
