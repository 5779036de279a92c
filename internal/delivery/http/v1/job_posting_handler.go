package v1

import (
	"net/http"
	"time"

	"maid-recruitment-backend/internal/delivery/http/middleware"
	"maid-recruitment-backend/internal/delivery/http/response"
	"maid-recruitment-backend/internal/domain"
	"maid-recruitment-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobPostingHandler struct {
	jobUC domain.JobUsecase
}

func NewJobPostingHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobPostingHandler{jobUC: jobUC}

	// Public browsing only exposes published postings
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.ListPublished)
		publicJobs.GET("/:id", handler.GetDetails)
	}

	sponsorJobs := protected.Group("/jobs", middleware.RequireRole("sponsor"))
	{
		sponsorJobs.POST("", handler.Create)
		sponsorJobs.PATCH("/:id", handler.UpdateDetails)
		sponsorJobs.POST("/:id/publish", handler.Publish)
		sponsorJobs.POST("/:id/close", handler.Close)
	}

	sponsors := protected.Group("/sponsors", middleware.RequireRole("sponsor"))
	{
		sponsors.GET("/jobs", handler.ListMine)
	}
}

type CreateJobPostingRequest struct {
	Title                string     `json:"title" binding:"required"`
	Description          string     `json:"description"`
	RequiredSkills       []string   `json:"required_skills"`
	RequiredLanguages    []string   `json:"required_languages"`
	ExperienceYears      int        `json:"experience_years"`
	PreferredNationality string     `json:"preferred_nationality"`
	Country              string     `json:"country" binding:"required"`
	City                 string     `json:"city" binding:"required"`
	ContractDuration     string     `json:"contract_duration"`
	StartDate            *time.Time `json:"start_date"`
	SalaryAmount         float64    `json:"salary_amount" binding:"required,gt=0"`
	SalaryCurrency       string     `json:"salary_currency" binding:"required"`
	SalaryPeriod         string     `json:"salary_period" binding:"required"`
	Benefits             []string   `json:"benefits"`
	WorkingHours         string     `json:"working_hours"`
	DaysOff              int        `json:"days_off"`
	AccommodationType    string     `json:"accommodation_type"`
	MaxApplications      int        `json:"max_applications"`
	ExpiresAt            *time.Time `json:"expires_at"`
}

type UpdateJobDetailsRequest struct {
	Title             *string  `json:"title"`
	Description       *string  `json:"description"`
	RequiredSkills    []string `json:"required_skills"`
	RequiredLanguages []string `json:"required_languages"`
	ExperienceYears   *int     `json:"experience_years"`
	ContractDuration  *string  `json:"contract_duration"`
	Benefits          []string `json:"benefits"`
	WorkingHours      *string  `json:"working_hours"`
	DaysOff           *int     `json:"days_off"`
	AccommodationType *string  `json:"accommodation_type"`
}

type CloseJobRequest struct {
	Reason string `json:"reason"`
}

func (h *JobPostingHandler) Create(c *gin.Context) {
	var req CreateJobPostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	sponsorID := c.GetString(string(domain.KeyUserID))
	job, err := h.jobUC.CreateJobPosting(c.Request.Context(), sponsorID, domain.CreateJobPostingCommand{
		Title:                req.Title,
		Description:          req.Description,
		RequiredSkills:       req.RequiredSkills,
		RequiredLanguages:    req.RequiredLanguages,
		ExperienceYears:      req.ExperienceYears,
		PreferredNationality: req.PreferredNationality,
		Country:              req.Country,
		City:                 req.City,
		ContractDuration:     req.ContractDuration,
		StartDate:            req.StartDate,
		SalaryAmount:         req.SalaryAmount,
		SalaryCurrency:       req.SalaryCurrency,
		SalaryPeriod:         req.SalaryPeriod,
		Benefits:             req.Benefits,
		WorkingHours:         req.WorkingHours,
		DaysOff:              req.DaysOff,
		AccommodationType:    req.AccommodationType,
		MaxApplications:      req.MaxApplications,
		ExpiresAt:            req.ExpiresAt,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job posting created", job)
}

func (h *JobPostingHandler) UpdateDetails(c *gin.Context) {
	var req UpdateJobDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	sponsorID := c.GetString(string(domain.KeyUserID))
	job, err := h.jobUC.UpdateJobDetails(c.Request.Context(), sponsorID, c.Param("id"), domain.UpdateJobDetailsCommand{
		Title:             req.Title,
		Description:       req.Description,
		RequiredSkills:    req.RequiredSkills,
		RequiredLanguages: req.RequiredLanguages,
		ExperienceYears:   req.ExperienceYears,
		ContractDuration:  req.ContractDuration,
		Benefits:          req.Benefits,
		WorkingHours:      req.WorkingHours,
		DaysOff:           req.DaysOff,
		AccommodationType: req.AccommodationType,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job posting updated", job)
}

func (h *JobPostingHandler) Publish(c *gin.Context) {
	sponsorID := c.GetString(string(domain.KeyUserID))
	job, err := h.jobUC.PublishJobPosting(c.Request.Context(), sponsorID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job posting published", job)
}

func (h *JobPostingHandler) Close(c *gin.Context) {
	var req CloseJobRequest
	_ = c.ShouldBindJSON(&req)

	sponsorID := c.GetString(string(domain.KeyUserID))
	if err := h.jobUC.CloseJobPosting(c.Request.Context(), sponsorID, c.Param("id"), req.Reason); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job posting closed", nil)
}

func (h *JobPostingHandler) GetDetails(c *gin.Context) {
	jobID := c.Param("id")
	job, err := h.jobUC.GetJobDetails(c.Request.Context(), jobID)
	if err != nil {
		c.Error(err)
		return
	}

	// Browsing a posting counts as a view
	_ = h.jobUC.RecordJobView(c.Request.Context(), jobID)

	response.Success(c, http.StatusOK, "Job posting details", job)
}

func (h *JobPostingHandler) ListPublished(c *gin.Context) {
	page, pageSize := pagination(c)
	jobs, total, err := h.jobUC.ListPublishedJobs(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Published job postings", gin.H{
		"jobs":  jobs,
		"total": total,
		"page":  page,
	})
}

func (h *JobPostingHandler) ListMine(c *gin.Context) {
	sponsorID := c.GetString(string(domain.KeyUserID))
	page, pageSize := pagination(c)
	jobs, total, err := h.jobUC.ListJobsBySponsor(c.Request.Context(), sponsorID, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Your job postings", gin.H{
		"jobs":  jobs,
		"total": total,
		"page":  page,
	})
}
