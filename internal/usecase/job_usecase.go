package usecase

import (
	"context"
	"errors"
	"time"

	"maid-recruitment-backend/internal/domain"
	"maid-recruitment-backend/pkg/apperror"
	"maid-recruitment-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type jobUsecase struct {
	jobRepo     domain.JobRepository
	viewCounter domain.JobViewCounter
	eventBus    domain.EventBus
	audit       domain.AuditLogger
	validate    *validator.Validate

	defaultMaxApplications int
	postingTTL             time.Duration
}

// JobUsecaseConfig carries the posting defaults from app config
type JobUsecaseConfig struct {
	DefaultMaxApplications int
	PostingTTL             time.Duration
}

func NewJobUsecase(
	jobRepo domain.JobRepository,
	viewCounter domain.JobViewCounter,
	eventBus domain.EventBus,
	audit domain.AuditLogger,
	validate *validator.Validate,
	cfg JobUsecaseConfig,
) domain.JobUsecase {
	if cfg.DefaultMaxApplications <= 0 {
		cfg.DefaultMaxApplications = domain.DefaultMaxApplications
	}
	if cfg.PostingTTL <= 0 {
		cfg.PostingTTL = domain.DefaultPostingTTL
	}
	return &jobUsecase{
		jobRepo:                jobRepo,
		viewCounter:            viewCounter,
		eventBus:               eventBus,
		audit:                  audit,
		validate:               validate,
		defaultMaxApplications: cfg.DefaultMaxApplications,
		postingTTL:             cfg.PostingTTL,
	}
}

// CreateJobPosting validates the command, constructs the posting in
// draft status, persists it and publishes its creation event.
func (u *jobUsecase) CreateJobPosting(ctx context.Context, sponsorID string, cmd domain.CreateJobPostingCommand) (*domain.JobPosting, error) {
	if sponsorID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if err := u.validate.Struct(cmd); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	salary, err := domain.NewSalary(cmd.SalaryAmount, domain.Currency(cmd.SalaryCurrency), domain.SalaryPeriod(cmd.SalaryPeriod))
	if err != nil {
		return nil, translateDomainError(err)
	}

	params := domain.NewJobPostingParams{
		SponsorID:            sponsorID,
		Title:                cmd.Title,
		Description:          cmd.Description,
		RequiredSkills:       cmd.RequiredSkills,
		RequiredLanguages:    cmd.RequiredLanguages,
		ExperienceYears:      cmd.ExperienceYears,
		PreferredNationality: cmd.PreferredNationality,
		Location:             domain.Location{Country: cmd.Country, City: cmd.City},
		ContractDuration:     cmd.ContractDuration,
		StartDate:            cmd.StartDate,
		Salary:               salary,
		Benefits:             cmd.Benefits,
		WorkingHours:         cmd.WorkingHours,
		DaysOff:              cmd.DaysOff,
		AccommodationType:    cmd.AccommodationType,
		MaxApplications:      cmd.MaxApplications,
	}
	if params.MaxApplications <= 0 {
		params.MaxApplications = u.defaultMaxApplications
	}
	if cmd.ExpiresAt != nil {
		params.ExpiresAt = *cmd.ExpiresAt
	}

	job, err := domain.NewJobPosting(params)
	if err != nil {
		return nil, translateDomainError(err)
	}

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, translateDomainError(err)
	}

	publishEvents(ctx, u.eventBus, job.DrainEvents())
	writeAudit(ctx, u.audit, domain.AuditEntry{
		Action: "job_posting_created",
		UserID: sponsorID,
		JobID:  job.ID,
		Metadata: map[string]interface{}{
			"title": job.Title,
		},
	})
	return job, nil
}

// UpdateJobDetails applies a partial edit; it requires at least one
// changed field and refuses closed or expired postings.
func (u *jobUsecase) UpdateJobDetails(ctx context.Context, sponsorID, jobID string, cmd domain.UpdateJobDetailsCommand) (*domain.JobPosting, error) {
	if err := u.validate.Struct(cmd); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	job, err := u.loadOwnedJob(ctx, sponsorID, jobID)
	if err != nil {
		return nil, err
	}

	update := domain.JobDetailsUpdate{
		Title:             cmd.Title,
		Description:       cmd.Description,
		RequiredSkills:    cmd.RequiredSkills,
		RequiredLanguages: cmd.RequiredLanguages,
		ExperienceYears:   cmd.ExperienceYears,
		ContractDuration:  cmd.ContractDuration,
		Benefits:          cmd.Benefits,
		WorkingHours:      cmd.WorkingHours,
		DaysOff:           cmd.DaysOff,
		AccommodationType: cmd.AccommodationType,
	}
	if err := job.UpdateDetails(update); err != nil {
		return nil, translateDomainError(err)
	}

	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, translateDomainError(err)
	}

	publishEvents(ctx, u.eventBus, job.DrainEvents())
	writeAudit(ctx, u.audit, domain.AuditEntry{
		Action: "job_details_updated",
		UserID: sponsorID,
		JobID:  job.ID,
	})
	return job, nil
}

// PublishJobPosting moves a draft posting live
func (u *jobUsecase) PublishJobPosting(ctx context.Context, sponsorID, jobID string) (*domain.JobPosting, error) {
	job, err := u.loadOwnedJob(ctx, sponsorID, jobID)
	if err != nil {
		return nil, err
	}

	if job.ExpiresAt.IsZero() {
		job.ExpiresAt = time.Now().Add(u.postingTTL)
	}
	if err := job.Publish(); err != nil {
		return nil, translateDomainError(err)
	}

	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, translateDomainError(err)
	}

	publishEvents(ctx, u.eventBus, job.DrainEvents())
	writeAudit(ctx, u.audit, domain.AuditEntry{
		Action: "job_posting_published",
		UserID: sponsorID,
		JobID:  job.ID,
	})
	return job, nil
}

// CloseJobPosting ends a posting explicitly
func (u *jobUsecase) CloseJobPosting(ctx context.Context, sponsorID, jobID, reason string) error {
	job, err := u.loadOwnedJob(ctx, sponsorID, jobID)
	if err != nil {
		return err
	}

	if reason == "" {
		reason = "closed by sponsor"
	}
	if err := job.Close(reason); err != nil {
		return translateDomainError(err)
	}

	if err := u.jobRepo.Update(ctx, job); err != nil {
		return translateDomainError(err)
	}

	publishEvents(ctx, u.eventBus, job.DrainEvents())
	writeAudit(ctx, u.audit, domain.AuditEntry{
		Action: "job_posting_closed",
		UserID: sponsorID,
		JobID:  job.ID,
		Metadata: map[string]interface{}{
			"reason": reason,
		},
	})
	return nil
}

func (u *jobUsecase) GetJobDetails(ctx context.Context, jobID string) (*domain.JobPosting, error) {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, translateDomainError(err)
	}

	// View counts live in redis; merging is best-effort
	if u.viewCounter != nil {
		if views, err := u.viewCounter.Get(ctx, job.ID); err == nil && views > job.ViewCount {
			job.ViewCount = views
		}
	}
	return job, nil
}

func (u *jobUsecase) ListPublishedJobs(ctx context.Context, page, pageSize int) ([]domain.JobPosting, int64, error) {
	limit, offset := normalizePage(page, pageSize)
	return u.jobRepo.FetchPublished(ctx, limit, offset)
}

func (u *jobUsecase) ListJobsBySponsor(ctx context.Context, sponsorID string, page, pageSize int) ([]domain.JobPosting, int64, error) {
	limit, offset := normalizePage(page, pageSize)
	return u.jobRepo.FetchBySponsorID(ctx, sponsorID, limit, offset)
}

// RecordJobView bumps the redis view counter; counting failures only log
func (u *jobUsecase) RecordJobView(ctx context.Context, jobID string) error {
	if u.viewCounter == nil {
		return nil
	}
	if _, err := u.viewCounter.Increment(ctx, jobID); err != nil {
		logger.Log.Warn("view counter increment failed", "job_id", jobID, "error", err)
	}
	return nil
}

func (u *jobUsecase) loadOwnedJob(ctx context.Context, sponsorID, jobID string) (*domain.JobPosting, error) {
	if sponsorID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	if job.SponsorID != sponsorID {
		return nil, apperror.Forbidden("You can only manage your own job postings")
	}
	return job, nil
}

func normalizePage(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return pageSize, (page - 1) * pageSize
}
