package v1

import (
	"net/http"
	"strconv"
	"time"

	"maid-recruitment-backend/internal/delivery/http/middleware"
	"maid-recruitment-backend/internal/delivery/http/response"
	"maid-recruitment-backend/internal/domain"
	"maid-recruitment-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	maid := protected.Group("/applications", middleware.RequireRole("maid"))
	{
		maid.POST("", handler.Apply)
		maid.GET("/mine", handler.ListMine)
		maid.POST("/:id/withdraw", handler.Withdraw)
	}

	sponsor := protected.Group("", middleware.RequireRole("sponsor"))
	{
		sponsor.GET("/jobs/:id/applications", handler.ListByJob)
		sponsor.POST("/applications/:id/review", handler.Review)
		sponsor.POST("/applications/:id/accept", handler.Accept)
		sponsor.POST("/applications/:id/reject", handler.Reject)
	}
}

type ApplyRequest struct {
	JobID          string     `json:"job_id" binding:"required"`
	CoverLetter    string     `json:"cover_letter"`
	SalaryAmount   float64    `json:"salary_amount"`
	SalaryCurrency string     `json:"salary_currency"`
	SalaryPeriod   string     `json:"salary_period"`
	AvailableFrom  *time.Time `json:"available_from"`
}

type DecisionRequest struct {
	Notes  string `json:"notes"`
	Reason string `json:"reason"`
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	maidID := c.GetString(string(domain.KeyUserID))
	app, err := h.applicationUC.ApplyToJob(c.Request.Context(), maidID, domain.ApplyToJobCommand{
		JobID:          req.JobID,
		CoverLetter:    req.CoverLetter,
		SalaryAmount:   req.SalaryAmount,
		SalaryCurrency: req.SalaryCurrency,
		SalaryPeriod:   req.SalaryPeriod,
		AvailableFrom:  req.AvailableFrom,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted", app)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	maidID := c.GetString(string(domain.KeyUserID))
	apps, err := h.applicationUC.GetMyApplications(c.Request.Context(), maidID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Your applications", apps)
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	var req DecisionRequest
	_ = c.ShouldBindJSON(&req)

	maidID := c.GetString(string(domain.KeyUserID))
	app, err := h.applicationUC.WithdrawJobApplication(c.Request.Context(), maidID, c.Param("id"), req.Reason)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application withdrawn", app)
}

func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	sponsorID := c.GetString(string(domain.KeyUserID))
	apps, err := h.applicationUC.ListByJobID(c.Request.Context(), sponsorID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications for job", apps)
}

func (h *ApplicationHandler) Review(c *gin.Context) {
	sponsorID := c.GetString(string(domain.KeyUserID))
	app, err := h.applicationUC.ReviewJobApplication(c.Request.Context(), sponsorID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application reviewed", app)
}

func (h *ApplicationHandler) Accept(c *gin.Context) {
	var req DecisionRequest
	_ = c.ShouldBindJSON(&req)

	sponsorID := c.GetString(string(domain.KeyUserID))
	app, err := h.applicationUC.AcceptJobApplication(c.Request.Context(), sponsorID, c.Param("id"), req.Notes)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application accepted", app)
}

func (h *ApplicationHandler) Reject(c *gin.Context) {
	var req DecisionRequest
	_ = c.ShouldBindJSON(&req)

	sponsorID := c.GetString(string(domain.KeyUserID))
	app, err := h.applicationUC.RejectJobApplication(c.Request.Context(), sponsorID, c.Param("id"), req.Reason)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application rejected", app)
}

// pagination parses page/page_size query params with the list defaults
func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return page, pageSize
}
