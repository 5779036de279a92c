package domain

// JobPostingStatus lifecycle: draft → published → closed.
// Expiry is derived from ExpiresAt and is not a stored status.
type JobPostingStatus string

const (
	JobStatusDraft     JobPostingStatus = "draft"
	JobStatusPublished JobPostingStatus = "published"
	JobStatusClosed    JobPostingStatus = "closed"
)

func (s JobPostingStatus) Valid() bool {
	switch s {
	case JobStatusDraft, JobStatusPublished, JobStatusClosed:
		return true
	}
	return false
}

// CanTransitionTo permits draft→published and draft/published→closed only
func (s JobPostingStatus) CanTransitionTo(next JobPostingStatus) bool {
	switch s {
	case JobStatusDraft:
		return next == JobStatusPublished || next == JobStatusClosed
	case JobStatusPublished:
		return next == JobStatusClosed
	}
	return false
}

// ApplicationStatus lifecycle: pending → reviewed → interviewing,
// with accepted / rejected / withdrawn as terminal states reachable
// from any non-final status.
type ApplicationStatus string

const (
	ApplicationStatusPending      ApplicationStatus = "pending"
	ApplicationStatusReviewed     ApplicationStatus = "reviewed"
	ApplicationStatusInterviewing ApplicationStatus = "interviewing"
	ApplicationStatusAccepted     ApplicationStatus = "accepted"
	ApplicationStatusRejected     ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn    ApplicationStatus = "withdrawn"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewed, ApplicationStatusInterviewing,
		ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	}
	return false
}

// IsFinal reports whether the status is terminal; a final application
// accepts no further transition from any handler.
func (s ApplicationStatus) IsFinal() bool {
	switch s {
	case ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	}
	return false
}

// IsActive is the complement of IsFinal for valid statuses; active
// applications count against the per-maid cap and the per-job
// uniqueness rule.
func (s ApplicationStatus) IsActive() bool {
	return s.Valid() && !s.IsFinal()
}

func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if s.IsFinal() || !next.Valid() || next == ApplicationStatusPending {
		return false
	}
	switch next {
	case ApplicationStatusReviewed:
		return s == ApplicationStatusPending
	case ApplicationStatusInterviewing:
		return s == ApplicationStatusPending || s == ApplicationStatusReviewed
	}
	// terminal states reachable from any non-final status
	return true
}
