// Package application provides HTTP handlers for job application operations.
package application

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"CampusHire-backend/internal/database"
	"CampusHire-backend/internal/model"
	"CampusHire-backend/internal/utilities"
)

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	DB *database.DBinstanceStruct
}

// NewApplicationController creates a new instance of ApplicationController with the provided database connection.
func NewApplicationController(db *database.DBinstanceStruct) *ApplicationController {
	return &ApplicationController{
		DB: db,
	}
}

// ApplyHandler handles the creation of a new job application by a student.
// @Summary Apply to a job
// @Description Only students can access this endpoint, at most once per job
// @Tags Application
// @Produce json
// @Param id path integer true "ID of the job to apply to"
// @Success 201 {object} model.Application "Successfully applied"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job id or already applied"
// @Failure 401 {object} utilities.ErrorResponse "Invalid session"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as student"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /job/apply/{id} [post]
func (ac *ApplicationController) ApplyHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job id"})
		return
	}

	var job model.Job
	if err := ac.DB.Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		})
		return
	}

	// Friendly duplicate check. The composite unique index still closes the
	// race when two submissions pass this at the same time.
	existing := model.Application{}
	if err := ac.DB.
		Where("applicant_id = ? AND job_id = ?", user.ID, job.ID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "You have already applied to this job",
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to check existing application",
		})
		return
	}

	application := model.Application{
		ApplicantID: user.ID,
		JobID:       job.ID,
		Status:      model.ApplicationStatusPending,
	}

	if err := ac.DB.Create(&application).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "You have already applied to this job",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create application: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, application)
}

type statusUpdateInfo struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatusHandler transitions an application from pending to accepted or
// rejected. Only the creator of the application's job may do this, and
// terminal statuses are immutable.
// @Summary Update application status
// @Description Status must be 'accepted' or 'rejected' (case-insensitive)
// @Tags Application
// @Accept json
// @Produce json
// @Param id path integer true "ID of the application"
// @Param Status body statusUpdateInfo true "New status"
// @Success 200 {object} model.Application "Status updated"
// @Failure 400 {object} utilities.ErrorResponse "Invalid status, or application already decided"
// @Failure 401 {object} utilities.ErrorResponse "Invalid session"
// @Failure 403 {object} utilities.ErrorResponse "Caller does not own the job"
// @Failure 404 {object} utilities.ErrorResponse "Application or job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application/status/{id}/update [post]
func (ac *ApplicationController) UpdateStatusHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info statusUpdateInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Status must be provided"})
		return
	}

	status := strings.ToLower(strings.TrimSpace(info.Status))
	if status != model.ApplicationStatusAccepted && status != model.ApplicationStatusRejected {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Status must be either 'accepted' or 'rejected'",
		})
		return
	}

	id := c.Param("id")

	var application model.Application
	if err := ac.DB.Where("id = ?", id).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve application: %s", err.Error()),
		})
		return
	}

	var job model.Job
	if err := ac.DB.Where("id = ?", application.JobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job for this application no longer exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		})
		return
	}

	if job.CreatedByID != user.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Only the creator of the job can update application status",
		})
		return
	}

	if application.Status != model.ApplicationStatusPending {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Application has already been %s", application.Status),
		})
		return
	}

	if err := ac.DB.Model(&application).Update("status", status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update application: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, application)
}

type applicantProfile struct {
	ID                 uuid.UUID `json:"id"`
	FullName           string    `json:"fullname"`
	Email              string    `json:"email"`
	PhoneNumber        string    `json:"phone_number"`
	Bio                string    `json:"bio"`
	Skills             []string  `json:"skills"`
	Resume             string    `json:"resume"`
	ResumeOriginalName string    `json:"resume_original_name"`
}

type applicantEntry struct {
	ID        uint             `json:"id"`
	Status    string           `json:"status"`
	AppliedAt time.Time        `json:"applied_at"`
	Applicant applicantProfile `json:"applicant"`
}

// GetApplicantsHandler returns the applications for a job with applicant
// profile fields flattened for display. Only the job's creator may call it.
// @Summary List applicants for a job
// @Tags Application
// @Produce json
// @Param id path integer true "ID of the job"
// @Success 200 {array} applicantEntry "Applications with applicant profiles"
// @Failure 401 {object} utilities.ErrorResponse "Invalid session"
// @Failure 403 {object} utilities.ErrorResponse "Caller does not own the job"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application/{id}/applicants [get]
func (ac *ApplicationController) GetApplicantsHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job id"})
		return
	}

	var job model.Job
	if err := ac.DB.Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		})
		return
	}

	if job.CreatedByID != user.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Only the creator of the job can view its applicants",
		})
		return
	}

	var applications []model.Application
	if err := ac.DB.
		Preload("Applicant").
		Where("job_id = ?", job.ID).
		Order("applied_at DESC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch applications: ", err.Error()),
		})
		return
	}

	entries := []applicantEntry{}
	for _, application := range applications {
		entries = append(entries, applicantEntry{
			ID:        application.ID,
			Status:    application.Status,
			AppliedAt: application.AppliedAt,
			Applicant: applicantProfile{
				ID:                 application.Applicant.ID,
				FullName:           application.Applicant.FullName,
				Email:              application.Applicant.Email,
				PhoneNumber:        application.Applicant.PhoneNumber,
				Bio:                application.Applicant.Bio,
				Skills:             application.Applicant.Skills,
				Resume:             resumeReference(application.Applicant),
				ResumeOriginalName: application.Applicant.ResumeOriginalName,
			},
		})
	}

	c.JSON(http.StatusOK, entries)
}

// resumeReference resolves the serveable resume reference for a user: the
// remote URL when one is set, otherwise the stored file route.
func resumeReference(user model.User) string {
	if user.ResumeURL != "" {
		return user.ResumeURL
	}
	if user.ResumeID != nil {
		return fmt.Sprintf("/api/v1/file/%d", *user.ResumeID)
	}
	return ""
}

type appliedJobSummary struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Salary      int    `json:"salary"`
	Location    string `json:"location"`
	CompanyName string `json:"company_name"`
}

type myApplicationEntry struct {
	ID        uint              `json:"id"`
	Status    string            `json:"status"`
	AppliedAt time.Time         `json:"applied_at"`
	Job       appliedJobSummary `json:"job"`
}

// GetMyApplicationsHandler returns the caller's applications, newest first,
// with job and company populated. When the referenced job or company has
// been deleted, placeholder data is substituted instead of failing.
// @Summary List the caller's applications
// @Tags Application
// @Produce json
// @Success 200 {array} myApplicationEntry "The caller's applications"
// @Failure 401 {object} utilities.ErrorResponse "Invalid session"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /user/applications [get]
func (ac *ApplicationController) GetMyApplicationsHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var applications []model.Application
	if err := ac.DB.
		Preload("Job").
		Preload("Job.Company").
		Where("applicant_id = ?", user.ID).
		Order("applied_at DESC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch applications: ", err.Error()),
		})
		return
	}

	entries := []myApplicationEntry{}
	for _, application := range applications {
		entry := myApplicationEntry{
			ID:        application.ID,
			Status:    application.Status,
			AppliedAt: application.AppliedAt,
		}

		if application.Job.ID == 0 {
			entry.Job = appliedJobSummary{
				ID:          application.JobID,
				Title:       "Unknown Job",
				CompanyName: "Unknown Company",
			}
		} else {
			companyName := application.Job.Company.Name
			if companyName == "" {
				companyName = "Unknown Company"
			}
			entry.Job = appliedJobSummary{
				ID:          application.Job.ID,
				Title:       application.Job.Title,
				Salary:      application.Job.Salary,
				Location:    application.Job.Location,
				CompanyName: companyName,
			}
		}

		entries = append(entries, entry)
	}

	c.JSON(http.StatusOK, entries)
}
