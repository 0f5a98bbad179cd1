package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	// Swagger documentation definitions.
	_ "CampusHire-backend/docs"
	"CampusHire-backend/internal/auth"
	applicationcontroller "CampusHire-backend/internal/controller/application"
	companycontroller "CampusHire-backend/internal/controller/company"
	filecontroller "CampusHire-backend/internal/controller/file"
	jobcontroller "CampusHire-backend/internal/controller/job"
	profilecontroller "CampusHire-backend/internal/controller/profile"
	"CampusHire-backend/internal/middleware"
	"CampusHire-backend/internal/model"
)

// maxProfileUploadBytes caps the profile update request body.
const maxProfileUploadBytes = 5 << 20

// RegisterRoutes builds the gin engine with every route of the API mounted
// under /api/v1.
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	r.Use(middleware.SafeHeader())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.Config.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))
	r.Use(middleware.RateLimiterMiddleware(s.Config.RateLimit))

	localAuth := auth.NewLocalAuthHandler(s.DB, s.Tokens, s.Blacklist)
	jobController := jobcontroller.NewJobController(s.DB)
	applicationController := applicationcontroller.NewApplicationController(s.DB)
	profileController := profilecontroller.NewProfileController(s.DB)
	companyController := companycontroller.NewCompanyController(s.DB)
	fileController := filecontroller.NewFileController(s.DB)

	r.GET("/health", s.healthHandler)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Endpoints reachable without a session.
	v1.POST("/user/register", localAuth.RegisterHandler)
	v1.POST("/user/login", localAuth.LoginHandler)
	v1.GET("/user/logout", localAuth.LogoutHandler)

	v1.GET("/job/all", jobController.GetJobs)
	v1.GET("/job/jobs", jobController.GetJobs)
	v1.GET("/job/get/:id", jobController.GetJobByID)
	v1.POST("/job/search", jobController.SearchJobs)
	v1.POST("/job/filter", jobController.SearchJobs)

	v1.GET("/company/get/:id", companyController.GetCompanyByID)

	// Endpoints requiring a valid, non-revoked session.
	protected := v1.Group("")
	protected.Use(middleware.JwtBlacklistCheck(s.Blacklist))
	protected.Use(middleware.RequireAuth(s.DB, s.Tokens))

	protected.GET("/user/me", profileController.GetMyProfileHandler)
	protected.POST("/user/profile/update",
		middleware.SizeLimit(maxProfileUploadBytes),
		profileController.UpdateProfileHandler)
	protected.GET("/user/applications", applicationController.GetMyApplicationsHandler)

	protected.GET("/file/:id", fileController.GetFile)
	protected.GET("/resume/download", fileController.DownloadResume)
	protected.GET("/resume/view", fileController.ViewResume)

	student := protected.Group("")
	student.Use(middleware.CheckRole(model.RoleStudent))

	student.POST("/job/apply/:id", applicationController.ApplyHandler)

	recruiter := protected.Group("")
	recruiter.Use(middleware.CheckRole(model.RoleRecruiter))

	recruiter.POST("/job/post", jobController.CreateJobHandler)
	recruiter.GET("/job/getadminjobs", jobController.GetMyJobs)
	recruiter.GET("/application/:id/applicants", applicationController.GetApplicantsHandler)
	recruiter.POST("/application/status/:id/update", applicationController.UpdateStatusHandler)
	recruiter.POST("/company/register", companyController.RegisterCompany)
	recruiter.GET("/company", companyController.GetMyCompanies)
	recruiter.POST("/company/update/:id", companyController.UpdateCompany)

	return r
}

// healthHandler reports database connectivity and pool statistics.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Database health statistics"
// @Router /health [get]
func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
