// Package job provides HTTP handlers for job posting and search operations.
package job

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"CampusHire-backend/internal/database"
	"CampusHire-backend/internal/model"
	"CampusHire-backend/internal/utilities"
)

// JobController handles job related endpoints
type JobController struct {
	DB *database.DBinstanceStruct
}

// NewJobController creates a new instance of JobController
func NewJobController(db *database.DBinstanceStruct) *JobController {
	return &JobController{
		DB: db,
	}
}

type createJobInfo struct {
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description" binding:"required"`
	Requirements    []string  `json:"requirements" binding:"required"`
	Salary          int       `json:"salary" binding:"required"`
	Location        string    `json:"location" binding:"required"`
	JobType         string    `json:"job_type" binding:"required"`
	ExperienceLevel string    `json:"experience_level" binding:"required"`
	Position        int       `json:"position" binding:"required"`
	CompanyID       uuid.UUID `json:"company_id" binding:"required"`
	Category        string    `json:"category"`
	IsFeatured      bool      `json:"is_featured"`
}

type searchQuery struct {
	Query           string `json:"query"`
	Location        string `json:"location"`
	JobType         string `json:"job_type"`
	ExperienceLevel string `json:"experience_level"`
	SalaryRange     string `json:"salary_range"`
	SortBy          string `json:"sort_by"`
}

// CreateJobHandler handles the creation of a new job by a recruiter.
// The job is owned by the caller, and the referenced company must belong to
// the caller as well.
// @Summary Create job based on given json structure
// @Description Only recruiters can access this endpoint, and only with a company they own
// @Tags Job
// @Accept json
// @Produce json
// @Param Job body createJobInfo true "Input job information"
// @Success 201 {object} model.Job "Successfully created job"
// @Failure 400 {object} utilities.ErrorResponse "Missing required field"
// @Failure 401 {object} utilities.ErrorResponse "Invalid session"
// @Failure 403 {object} utilities.ErrorResponse "Not a recruiter, or company owned by somebody else"
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /job/post [post]
func (jc *JobController) CreateJobHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info createJobInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Title, description, requirements, salary, location, job type, experience level, position and company must all be provided",
		})
		return
	}

	var company model.Company
	if err := jc.DB.Where("id = ?", info.CompanyID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Company not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve company information: %s", err.Error()),
		})
		return
	}

	if company.OwnerID != user.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You can only post jobs for your own company",
		})
		return
	}

	job := model.Job{
		Title:           info.Title,
		Description:     info.Description,
		Requirements:    info.Requirements,
		Salary:          info.Salary,
		Location:        info.Location,
		JobType:         info.JobType,
		ExperienceLevel: info.ExperienceLevel,
		Position:        info.Position,
		Category:        info.Category,
		IsFeatured:      info.IsFeatured,
		CompanyID:       company.ID,
		CreatedByID:     user.ID,
	}
	if err := jc.DB.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create job: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, job)
}

// GetJobs fetches all jobs matching the optional keyword and returns them as
// a JSON response, newest first, with the owning company populated.
// @Summary List jobs, optionally filtered by keyword
// @Description Keyword matches title, description and position with substring matching, case insensitive
// @Tags Job
// @Produce json
// @Param keyword query string false "Keyword to filter by"
// @Success 200 {array} model.Job "Return matching job(s)"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /job/all [get]
func (jc *JobController) GetJobs(c *gin.Context) {
	keyword := c.Query("keyword")

	result := jc.DB.Preload("Company").Order("created_at DESC")

	if keyword != "" {
		kw := "%" + keyword + "%"
		result = result.Where("title ILIKE ? OR description ILIKE ? OR CAST(position AS TEXT) ILIKE ?", kw, kw, kw)
	}

	var jobs []model.Job
	if err := result.Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch jobs: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// SearchJobs builds a conjunctive filter from whichever fields are supplied
// and returns the matching jobs.
// @Summary Structured job search
// @Description Every field is optional; supplied fields are ANDed together.
// @Description salary_range is "min-max" or "min-", sort_by one of recent, salary-high, salary-low
// @Tags Job
// @Accept json
// @Produce json
// @Param Filter body searchQuery true "Search filters"
// @Success 200 {array} model.Job "Return matching job(s)"
// @Failure 400 {object} utilities.ErrorResponse "Malformed salary range"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /job/search [post]
func (jc *JobController) SearchJobs(c *gin.Context) {
	var query searchQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	result := jc.DB.Preload("Company")

	if query.Query != "" {
		kw := "%" + query.Query + "%"
		result = result.Where("title ILIKE ? OR description ILIKE ?", kw, kw)
	}

	if query.Location != "" {
		result = result.Where("location ILIKE ?", "%"+query.Location+"%")
	}

	if query.JobType != "" {
		result = result.Where("job_type ILIKE ?", query.JobType)
	}

	if query.ExperienceLevel != "" {
		result = result.Where("experience_level ILIKE ?", query.ExperienceLevel)
	}

	if query.SalaryRange != "" {
		minSalary, maxSalary, err := parseSalaryRange(query.SalaryRange)
		if err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
			return
		}
		result = result.Where("salary >= ?", minSalary)
		if maxSalary != nil {
			result = result.Where("salary <= ?", *maxSalary)
		}
	}

	switch query.SortBy {
	case "salary-high":
		result = result.Order("salary DESC")
	case "salary-low":
		result = result.Order("salary ASC")
	default: // recent
		result = result.Order("created_at DESC")
	}

	var jobs []model.Job
	if err := result.Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch jobs: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// parseSalaryRange parses a "min-max" or "min-" string into a numeric range.
func parseSalaryRange(raw string) (int, *int, error) {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return 0, nil, fmt.Errorf("Invalid salary range %q, expected 'min-max' or 'min-'", raw)
	}

	minSalary, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, nil, fmt.Errorf("Invalid salary range %q, expected 'min-max' or 'min-'", raw)
	}

	if strings.TrimSpace(parts[1]) == "" {
		return minSalary, nil, nil
	}

	maxSalary, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, nil, fmt.Errorf("Invalid salary range %q, expected 'min-max' or 'min-'", raw)
	}

	return minSalary, &maxSalary, nil
}

// GetJobByID fetches a job by its ID from the database, with its
// applications populated, and returns it as a JSON response.
// @Summary Get job by ID
// @Tags Job
// @Produce json
// @Param id path integer true "ID of desired job"
// @Success 200 {object} model.Job "Return the job with the specified ID"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /job/get/{id} [get]
func (jc *JobController) GetJobByID(c *gin.Context) {
	id := c.Param("id")

	job := model.Job{}
	if err := jc.DB.
		Preload("Company").
		Preload("Applications").
		Where("id = ?", id).
		First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

// GetMyJobs fetches the jobs created by the calling recruiter.
// @Summary List the caller's own jobs
// @Description Only jobs created by the authenticated recruiter are returned
// @Tags Job
// @Produce json
// @Success 200 {array} model.Job "Return the caller's job(s)"
// @Failure 401 {object} utilities.ErrorResponse "Invalid session"
// @Failure 403 {object} utilities.ErrorResponse "Not a recruiter"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /job/getadminjobs [get]
func (jc *JobController) GetMyJobs(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var jobs []model.Job
	if err := jc.DB.
		Preload("Company").
		Where("created_by_id = ?", user.ID).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch jobs: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, jobs)
}
