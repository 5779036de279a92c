package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrApplicationFinal guards every transition attempted on an
// application that already reached a terminal status.
var ErrApplicationFinal = errors.New("application is already in a final status")

// JobApplication is one maid's application to one job posting. The
// match score is snapshotted at submission and never recomputed; it
// records eligibility at the time of application.
type JobApplication struct {
	ID             string            `json:"id"`
	JobID          string            `json:"job_id"`
	MaidID         string            `json:"maid_id"`
	SponsorID      string            `json:"sponsor_id"`
	Status         ApplicationStatus `json:"status"`
	CoverLetter    string            `json:"cover_letter,omitempty"`
	ProposedSalary *Salary           `json:"proposed_salary,omitempty"`
	AvailableFrom  *time.Time        `json:"available_from,omitempty"`
	MatchScore     int               `json:"match_score"`
	Notes          string            `json:"notes,omitempty"`
	AppliedAt      time.Time         `json:"applied_at"`
	ReviewedAt     *time.Time        `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`

	events []Event
}

// NewJobApplication creates a pending application against the given
// posting with the score snapshotted by the caller.
func NewJobApplication(job *JobPosting, maidID string, matchScore int, coverLetter string, proposedSalary *Salary, availableFrom *time.Time) (*JobApplication, error) {
	if maidID == "" {
		return nil, errors.New("maid is required")
	}
	if matchScore < 0 || matchScore > 100 {
		return nil, fmt.Errorf("match score %d out of range [0,100]", matchScore)
	}

	now := time.Now()
	app := &JobApplication{
		ID:             uuid.NewString(),
		JobID:          job.ID,
		MaidID:         maidID,
		SponsorID:      job.SponsorID,
		Status:         ApplicationStatusPending,
		CoverLetter:    coverLetter,
		ProposedSalary: proposedSalary,
		AvailableFrom:  availableFrom,
		MatchScore:     matchScore,
		AppliedAt:      now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	app.record(EventApplicationSubmitted, map[string]interface{}{
		"application_id": app.ID,
		"job_id":         app.JobID,
		"maid_id":        app.MaidID,
		"match_score":    app.MatchScore,
	})
	return app, nil
}

// Review marks a pending application as reviewed by the sponsor
func (a *JobApplication) Review() error {
	if err := a.transition(ApplicationStatusReviewed); err != nil {
		return err
	}
	now := time.Now()
	a.ReviewedAt = &now
	return nil
}

// StartInterview moves the application into the interviewing stage
func (a *JobApplication) StartInterview() error {
	return a.transition(ApplicationStatusInterviewing)
}

// Accept finalizes the application as the successful one for its job
func (a *JobApplication) Accept(notes string) error {
	if err := a.transition(ApplicationStatusAccepted); err != nil {
		return err
	}
	now := time.Now()
	a.ReviewedAt = &now
	a.Notes = notes

	a.record(EventApplicationAccepted, map[string]interface{}{
		"application_id": a.ID,
		"job_id":         a.JobID,
		"maid_id":        a.MaidID,
	})
	return nil
}

// Reject finalizes the application as unsuccessful
func (a *JobApplication) Reject(reason string) error {
	if err := a.transition(ApplicationStatusRejected); err != nil {
		return err
	}
	a.Notes = reason

	a.record(EventApplicationRejected, map[string]interface{}{
		"application_id": a.ID,
		"job_id":         a.JobID,
		"reason":         reason,
	})
	return nil
}

// Withdraw finalizes the application at the maid's request
func (a *JobApplication) Withdraw(reason string) error {
	if err := a.transition(ApplicationStatusWithdrawn); err != nil {
		return err
	}
	a.Notes = reason

	a.record(EventApplicationWithdrawn, map[string]interface{}{
		"application_id": a.ID,
		"job_id":         a.JobID,
		"reason":         reason,
	})
	return nil
}

func (a *JobApplication) transition(next ApplicationStatus) error {
	if a.Status.IsFinal() {
		return fmt.Errorf("%w: cannot move from %s to %s", ErrApplicationFinal, a.Status, next)
	}
	if !a.Status.CanTransitionTo(next) {
		return fmt.Errorf("invalid application transition from %s to %s", a.Status, next)
	}
	a.Status = next
	a.UpdatedAt = time.Now()
	return nil
}

func (a *JobApplication) record(eventType string, payload map[string]interface{}) {
	a.events = append(a.events, newEvent(eventType, payload))
}

// DrainEvents returns the buffered domain events and clears the buffer
func (a *JobApplication) DrainEvents() []Event {
	out := make([]Event, len(a.events))
	copy(out, a.events)
	a.events = nil
	return out
}

// ApplicationRepository is the persistence port for applications.
// Create relies on a storage-level uniqueness rule for one active
// application per (job, maid); a lost race surfaces as
// ErrDuplicateApplication, indistinguishable from the pre-check.
type ApplicationRepository interface {
	Create(ctx context.Context, app *JobApplication) error
	GetByID(ctx context.Context, id string) (*JobApplication, error)
	GetByJobID(ctx context.Context, jobID string, status *ApplicationStatus) ([]JobApplication, error)
	GetByMaidID(ctx context.Context, maidID string) ([]JobApplication, error)
	ExistsActiveForMaidAndJob(ctx context.Context, maidID, jobID string) (bool, error)
	CountActiveByMaid(ctx context.Context, maidID string) (int, error)
	Update(ctx context.Context, app *JobApplication) error
}

// ApplicationUsecase defines the application lifecycle commands
type ApplicationUsecase interface {
	ApplyToJob(ctx context.Context, maidID string, cmd ApplyToJobCommand) (*JobApplication, error)
	AcceptJobApplication(ctx context.Context, sponsorID, applicationID, notes string) (*JobApplication, error)
	RejectJobApplication(ctx context.Context, sponsorID, applicationID, reason string) (*JobApplication, error)
	WithdrawJobApplication(ctx context.Context, maidID, applicationID, reason string) (*JobApplication, error)
	ReviewJobApplication(ctx context.Context, sponsorID, applicationID string) (*JobApplication, error)
	GetMyApplications(ctx context.Context, maidID string) ([]JobApplication, error)
	ListByJobID(ctx context.Context, sponsorID, jobID string) ([]JobApplication, error)
}

// ApplyToJobCommand is the inbound DTO for ApplyToJob
type ApplyToJobCommand struct {
	JobID          string  `validate:"required,uuid4"`
	CoverLetter    string  `validate:"max=3000"`
	SalaryAmount   float64 `validate:"omitempty,gt=0"`
	SalaryCurrency string  `validate:"required_with=SalaryAmount,salary_currency"`
	SalaryPeriod   string  `validate:"required_with=SalaryAmount,salary_period"`
	AvailableFrom  *time.Time
}
