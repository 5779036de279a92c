package usecase

import (
	"context"
	"errors"

	"maid-recruitment-backend/internal/domain"
	"maid-recruitment-backend/pkg/apperror"
	"maid-recruitment-backend/pkg/logger"
)

// translateDomainError is the single point converting errors raised by
// aggregate constructors and guards into the uniform failure result.
// Callers above the use-case layer never handle raw domain errors for
// ordinary business rules.
func translateDomainError(err error) *apperror.AppError {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound("Resource not found")
	case errors.Is(err, domain.ErrDuplicateApplication):
		return apperror.Conflict("You have already applied to this job")
	case errors.Is(err, domain.ErrMaxApplicationsReached):
		return apperror.Conflict("This job posting has reached the maximum number of applications")
	case errors.Is(err, domain.ErrApplicationFinal):
		return apperror.UnprocessableEntity(err.Error())
	case errors.Is(err, domain.ErrInvalidJobTransition):
		return apperror.UnprocessableEntity(err.Error())
	case errors.Is(err, domain.ErrJobNotEditable):
		return apperror.UnprocessableEntity("Cannot update closed or expired job posting")
	case errors.Is(err, domain.ErrNoFieldsToUpdate):
		return apperror.BadRequest("At least one field must be provided")
	case errors.Is(err, domain.ErrSponsorRequired),
		errors.Is(err, domain.ErrTitleRequired),
		errors.Is(err, domain.ErrLocationRequired),
		errors.Is(err, domain.ErrInvalidSalaryAmount),
		errors.Is(err, domain.ErrInvalidSalaryCurrency),
		errors.Is(err, domain.ErrInvalidSalaryPeriod):
		return apperror.BadRequest(err.Error())
	default:
		return apperror.Internal(err)
	}
}

// publishEvents pushes drained aggregate events to the bus. Publishing
// happens strictly after persistence; failures are logged and never
// revert persisted state.
func publishEvents(ctx context.Context, bus domain.EventBus, events []domain.Event) {
	if bus == nil {
		return
	}
	for _, event := range events {
		if err := bus.Publish(ctx, event); err != nil {
			logger.Log.Error("domain event publish failed", "type", event.Type, "error", err)
		}
	}
}

// writeAudit records one audit entry; audit failures are logged, never
// surfaced to the caller.
func writeAudit(ctx context.Context, auditLogger domain.AuditLogger, entry domain.AuditEntry) {
	if auditLogger == nil {
		return
	}
	if err := auditLogger.LogSecurityEvent(ctx, entry); err != nil {
		logger.Log.Error("audit log failed", "action", entry.Action, "error", err)
	}
}
