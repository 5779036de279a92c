package usecase

import (
	"context"
	"fmt"
	"strings"

	"maid-recruitment-backend/internal/domain"
	"maid-recruitment-backend/pkg/apperror"
	"maid-recruitment-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	maidProfileRepo domain.MaidProfileRepository
	eventBus        domain.EventBus
	audit           domain.AuditLogger
	validate        *validator.Validate
}

// NewApplicationUsecase creates the application lifecycle usecase
func NewApplicationUsecase(
	applicationRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	maidProfileRepo domain.MaidProfileRepository,
	eventBus domain.EventBus,
	audit domain.AuditLogger,
	validate *validator.Validate,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		maidProfileRepo: maidProfileRepo,
		eventBus:        eventBus,
		audit:           audit,
		validate:        validate,
	}
}

// ApplyToJob submits a maid's application to a published job. The
// preconditions run in order and the first failure short-circuits with
// no side effects; nothing is written before all of them pass.
func (uc *applicationUsecase) ApplyToJob(ctx context.Context, maidID string, cmd domain.ApplyToJobCommand) (*domain.JobApplication, error) {
	if maidID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if err := uc.validate.Struct(cmd); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	// 1. Job must exist
	job, err := uc.jobRepo.GetByID(ctx, cmd.JobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}

	// 2. Job must be published and not expired
	if job.Status != domain.JobStatusPublished {
		return nil, apperror.Conflict("Cannot apply to a job that is not published")
	}
	if job.IsExpired() {
		return nil, apperror.Conflict("This job posting has expired")
	}

	// 3. Capacity ceiling
	if job.HasReachedMaxApplications() {
		return nil, apperror.Conflict("This job posting has reached the maximum number of applications")
	}

	// 4. One active application per maid-job pair
	exists, err := uc.applicationRepo.ExistsActiveForMaidAndJob(ctx, maidID, cmd.JobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("You have already applied to this job")
	}

	// 5. Per-maid cap on simultaneously active applications
	activeCount, err := uc.applicationRepo.CountActiveByMaid(ctx, maidID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if activeCount >= domain.MaxActiveApplicationsPerMaid {
		return nil, apperror.Forbidden(fmt.Sprintf(
			"You cannot have more than %d active applications", domain.MaxActiveApplicationsPerMaid))
	}

	// Eligibility policy (profile active/verified, hard requirements)
	profile, err := uc.maidProfileRepo.GetByUserID(ctx, maidID)
	if err != nil || profile == nil {
		return nil, apperror.Forbidden("Complete your profile before applying")
	}
	if eligibility := domain.CanMaidApplyToJob(profile, job); !eligibility.CanApply {
		return nil, apperror.Forbidden("You are not eligible for this job: " + strings.Join(eligibility.Errors, "; "))
	}

	// 6. Match score floor; the score is snapshotted on the application
	matchScore := job.MatchScore(profile)
	if matchScore < domain.MinimumMatchScore {
		return nil, apperror.Forbidden(fmt.Sprintf(
			"Your match score %d is below the required minimum of %d", matchScore, domain.MinimumMatchScore))
	}

	var proposedSalary *domain.Salary
	if cmd.SalaryAmount > 0 {
		salary, err := domain.NewSalary(cmd.SalaryAmount, domain.Currency(cmd.SalaryCurrency), domain.SalaryPeriod(cmd.SalaryPeriod))
		if err != nil {
			return nil, translateDomainError(err)
		}
		proposedSalary = &salary
	}

	app, err := domain.NewJobApplication(job, maidID, matchScore, cmd.CoverLetter, proposedSalary, cmd.AvailableFrom)
	if err != nil {
		return nil, translateDomainError(err)
	}
	if err := job.IncrementApplicationCount(); err != nil {
		return nil, translateDomainError(err)
	}

	// The partial unique index is the final authority on uniqueness; a
	// lost race surfaces here as the same conflict as the pre-check
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		return nil, translateDomainError(err)
	}

	// Conditional increment is the final authority on capacity. When it
	// reports the job full, the stored application is withdrawn
	// best-effort and the caller sees the capacity conflict.
	if err := uc.jobRepo.IncrementApplications(ctx, job.ID); err != nil {
		uc.rollbackLostCapacityRace(ctx, app)
		return nil, translateDomainError(err)
	}

	publishEvents(ctx, uc.eventBus, app.DrainEvents())
	publishEvents(ctx, uc.eventBus, job.DrainEvents())
	writeAudit(ctx, uc.audit, domain.AuditEntry{
		Action:        "job_application_submitted",
		UserID:        maidID,
		JobID:         job.ID,
		ApplicationID: app.ID,
		Metadata: map[string]interface{}{
			"match_score": matchScore,
		},
	})
	return app, nil
}

// AcceptJobApplication accepts one application for a job. If another
// application on the same job was already accepted, the command fails
// without mutating anything. Closing the parent posting afterwards is
// best-effort cleanup and never rolls back the acceptance.
func (uc *applicationUsecase) AcceptJobApplication(ctx context.Context, sponsorID, applicationID, notes string) (*domain.JobApplication, error) {
	app, err := uc.loadSponsorApplication(ctx, sponsorID, applicationID)
	if err != nil {
		return nil, err
	}

	acceptedStatus := domain.ApplicationStatusAccepted
	accepted, err := uc.applicationRepo.GetByJobID(ctx, app.JobID, &acceptedStatus)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(accepted) > 0 {
		return nil, apperror.Conflict("Another application has already been accepted for this job")
	}

	if err := app.Accept(notes); err != nil {
		return nil, translateDomainError(err)
	}
	if err := uc.applicationRepo.Update(ctx, app); err != nil {
		return nil, translateDomainError(err)
	}

	publishEvents(ctx, uc.eventBus, app.DrainEvents())
	writeAudit(ctx, uc.audit, domain.AuditEntry{
		Action:        "job_application_accepted",
		UserID:        sponsorID,
		JobID:         app.JobID,
		ApplicationID: app.ID,
	})

	uc.closeJobAfterAcceptance(ctx, app.JobID)
	return app, nil
}

// RejectJobApplication finalizes an application as unsuccessful
func (uc *applicationUsecase) RejectJobApplication(ctx context.Context, sponsorID, applicationID, reason string) (*domain.JobApplication, error) {
	app, err := uc.loadSponsorApplication(ctx, sponsorID, applicationID)
	if err != nil {
		return nil, err
	}

	if err := app.Reject(reason); err != nil {
		return nil, translateDomainError(err)
	}
	if err := uc.applicationRepo.Update(ctx, app); err != nil {
		return nil, translateDomainError(err)
	}

	publishEvents(ctx, uc.eventBus, app.DrainEvents())
	writeAudit(ctx, uc.audit, domain.AuditEntry{
		Action:        "job_application_rejected",
		UserID:        sponsorID,
		JobID:         app.JobID,
		ApplicationID: app.ID,
	})
	return app, nil
}

// WithdrawJobApplication finalizes an application at the maid's request
func (uc *applicationUsecase) WithdrawJobApplication(ctx context.Context, maidID, applicationID, reason string) (*domain.JobApplication, error) {
	if maidID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, apperror.NotFound("Application not found")
	}
	if app.MaidID != maidID {
		return nil, apperror.Forbidden("You can only withdraw your own applications")
	}

	if err := app.Withdraw(reason); err != nil {
		return nil, translateDomainError(err)
	}
	if err := uc.applicationRepo.Update(ctx, app); err != nil {
		return nil, translateDomainError(err)
	}

	publishEvents(ctx, uc.eventBus, app.DrainEvents())
	writeAudit(ctx, uc.audit, domain.AuditEntry{
		Action:        "job_application_withdrawn",
		UserID:        maidID,
		JobID:         app.JobID,
		ApplicationID: app.ID,
	})
	return app, nil
}

// ReviewJobApplication marks a pending application as reviewed
func (uc *applicationUsecase) ReviewJobApplication(ctx context.Context, sponsorID, applicationID string) (*domain.JobApplication, error) {
	app, err := uc.loadSponsorApplication(ctx, sponsorID, applicationID)
	if err != nil {
		return nil, err
	}

	if err := app.Review(); err != nil {
		return nil, translateDomainError(err)
	}
	if err := uc.applicationRepo.Update(ctx, app); err != nil {
		return nil, translateDomainError(err)
	}

	publishEvents(ctx, uc.eventBus, app.DrainEvents())
	return app, nil
}

// GetMyApplications returns all applications for the current maid
func (uc *applicationUsecase) GetMyApplications(ctx context.Context, maidID string) ([]domain.JobApplication, error) {
	if maidID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	return uc.applicationRepo.GetByMaidID(ctx, maidID)
}

// ListByJobID returns the applications on one of the sponsor's postings
func (uc *applicationUsecase) ListByJobID(ctx context.Context, sponsorID, jobID string) ([]domain.JobApplication, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	if job.SponsorID != sponsorID {
		return nil, apperror.Forbidden("You can only view applications for your own job postings")
	}
	return uc.applicationRepo.GetByJobID(ctx, jobID, nil)
}

func (uc *applicationUsecase) loadSponsorApplication(ctx context.Context, sponsorID, applicationID string) (*domain.JobApplication, error) {
	if sponsorID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, apperror.NotFound("Application not found")
	}
	if app.SponsorID != sponsorID {
		return nil, apperror.Forbidden("You can only manage applications for your own job postings")
	}
	return app, nil
}

// rollbackLostCapacityRace withdraws an application whose capacity
// reservation failed after the row was stored. Best-effort: a failure
// here only logs, the caller already reports the capacity conflict.
func (uc *applicationUsecase) rollbackLostCapacityRace(ctx context.Context, app *domain.JobApplication) {
	if err := app.Withdraw("job reached maximum applications"); err != nil {
		logger.Log.Error("failed to withdraw application after lost capacity race",
			"application_id", app.ID, "error", err)
		return
	}
	if err := uc.applicationRepo.Update(ctx, app); err != nil {
		logger.Log.Error("failed to persist withdrawal after lost capacity race",
			"application_id", app.ID, "error", err)
	}
}

// closeJobAfterAcceptance closes the parent posting once a candidate
// was accepted. A failure here is logged but never undoes the
// acceptance; accepting the right candidate is the primary effect.
func (uc *applicationUsecase) closeJobAfterAcceptance(ctx context.Context, jobID string) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		logger.Log.Error("failed to load job for closing after acceptance", "job_id", jobID, "error", err)
		return
	}
	if job.Status == domain.JobStatusClosed {
		return
	}
	if err := job.Close("position filled"); err != nil {
		logger.Log.Error("failed to close job after acceptance", "job_id", jobID, "error", err)
		return
	}
	if err := uc.jobRepo.Update(ctx, job); err != nil {
		logger.Log.Error("failed to persist job closure after acceptance", "job_id", jobID, "error", err)
		return
	}
	publishEvents(ctx, uc.eventBus, job.DrainEvents())
}
