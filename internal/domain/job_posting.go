package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common domain errors
var (
	ErrNotFound               = errors.New("resource not found")
	ErrMaxApplicationsReached = errors.New("maximum applications reached")
	ErrJobNotEditable         = errors.New("cannot update closed or expired job posting")
	ErrInvalidJobTransition   = errors.New("invalid job posting status transition")
	ErrNoFieldsToUpdate       = errors.New("no fields to update")
	ErrDuplicateApplication   = errors.New("an active application already exists for this job")
)

type Location struct {
	Country string `json:"country"`
	City    string `json:"city"`
}

// JobPosting is a sponsor's job ad. It owns its capacity ceiling,
// expiry, status lifecycle and candidate scoring.
type JobPosting struct {
	ID                   string           `json:"id"`
	SponsorID            string           `json:"sponsor_id"`
	Title                string           `json:"title"`
	Description          string           `json:"description"`
	RequiredSkills       []string         `json:"required_skills"`
	RequiredLanguages    []string         `json:"required_languages"`
	ExperienceYears      int              `json:"experience_years"`
	PreferredNationality string           `json:"preferred_nationality,omitempty"`
	Location             Location         `json:"location"`
	ContractDuration     string           `json:"contract_duration,omitempty"`
	StartDate            *time.Time       `json:"start_date,omitempty"`
	Salary               Salary           `json:"salary"`
	Benefits             []string         `json:"benefits,omitempty"`
	WorkingHours         string           `json:"working_hours,omitempty"`
	DaysOff              int              `json:"days_off"`
	AccommodationType    string           `json:"accommodation_type,omitempty"`
	Status               JobPostingStatus `json:"status"`
	ApplicationCount     int              `json:"application_count"`
	MaxApplications      int              `json:"max_applications"`
	ViewCount            int64            `json:"view_count"`
	PostedAt             *time.Time       `json:"posted_at,omitempty"`
	ExpiresAt            time.Time        `json:"expires_at"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`

	events []Event
}

// NewJobPostingParams carries the construction inputs. SponsorID,
// Title, Location and Salary are mandatory.
type NewJobPostingParams struct {
	SponsorID            string
	Title                string
	Description          string
	RequiredSkills       []string
	RequiredLanguages    []string
	ExperienceYears      int
	PreferredNationality string
	Location             Location
	ContractDuration     string
	StartDate            *time.Time
	Salary               Salary
	Benefits             []string
	WorkingHours         string
	DaysOff              int
	AccommodationType    string
	MaxApplications      int
	ExpiresAt            time.Time
}

var (
	ErrSponsorRequired  = errors.New("sponsor is required")
	ErrTitleRequired    = errors.New("title is required")
	ErrLocationRequired = errors.New("location country and city are required")
)

func NewJobPosting(p NewJobPostingParams) (*JobPosting, error) {
	if p.SponsorID == "" {
		return nil, ErrSponsorRequired
	}
	if strings.TrimSpace(p.Title) == "" {
		return nil, ErrTitleRequired
	}
	if p.Location.Country == "" || p.Location.City == "" {
		return nil, ErrLocationRequired
	}
	if p.Salary == (Salary{}) {
		return nil, ErrInvalidSalaryAmount
	}
	if p.MaxApplications <= 0 {
		p.MaxApplications = DefaultMaxApplications
	}

	now := time.Now()
	job := &JobPosting{
		ID:                   uuid.NewString(),
		SponsorID:            p.SponsorID,
		Title:                strings.TrimSpace(p.Title),
		Description:          p.Description,
		RequiredSkills:       p.RequiredSkills,
		RequiredLanguages:    p.RequiredLanguages,
		ExperienceYears:      p.ExperienceYears,
		PreferredNationality: p.PreferredNationality,
		Location:             p.Location,
		ContractDuration:     p.ContractDuration,
		StartDate:            p.StartDate,
		Salary:               p.Salary,
		Benefits:             p.Benefits,
		WorkingHours:         p.WorkingHours,
		DaysOff:              p.DaysOff,
		AccommodationType:    p.AccommodationType,
		Status:               JobStatusDraft,
		ApplicationCount:     0,
		MaxApplications:      p.MaxApplications,
		ExpiresAt:            p.ExpiresAt,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	job.record(EventJobPostingCreated, map[string]interface{}{
		"job_id":     job.ID,
		"sponsor_id": job.SponsorID,
		"title":      job.Title,
	})
	return job, nil
}

// DefaultMaxApplications caps postings that do not set their own ceiling
const DefaultMaxApplications = 50

// DefaultPostingTTL is applied at publish time when no expiry was set
const DefaultPostingTTL = 30 * 24 * time.Hour

// IsExpired derives expiry from ExpiresAt; it is independent of the
// stored status enum.
func (j *JobPosting) IsExpired() bool {
	return !j.ExpiresAt.IsZero() && time.Now().After(j.ExpiresAt)
}

func (j *JobPosting) HasReachedMaxApplications() bool {
	return j.ApplicationCount >= j.MaxApplications
}

// AcceptsApplications reports whether new applications may be submitted
func (j *JobPosting) AcceptsApplications() bool {
	return j.Status == JobStatusPublished && !j.IsExpired()
}

// IncrementApplicationCount adds one application to the posting,
// refusing to exceed MaxApplications.
func (j *JobPosting) IncrementApplicationCount() error {
	if j.HasReachedMaxApplications() {
		return ErrMaxApplicationsReached
	}
	j.ApplicationCount++
	j.UpdatedAt = time.Now()
	return nil
}

// Publish moves a draft posting live. PostedAt is stamped and an
// expiry is applied when the sponsor did not choose one.
func (j *JobPosting) Publish() error {
	if !j.Status.CanTransitionTo(JobStatusPublished) {
		return ErrInvalidJobTransition
	}
	now := time.Now()
	j.Status = JobStatusPublished
	j.PostedAt = &now
	if j.ExpiresAt.IsZero() {
		j.ExpiresAt = now.Add(DefaultPostingTTL)
	}
	j.UpdatedAt = now

	j.record(EventJobPostingPublished, map[string]interface{}{
		"job_id":     j.ID,
		"sponsor_id": j.SponsorID,
		"expires_at": j.ExpiresAt,
	})
	return nil
}

// Close ends the posting's lifecycle, either explicitly or because the
// position was filled.
func (j *JobPosting) Close(reason string) error {
	if !j.Status.CanTransitionTo(JobStatusClosed) {
		return ErrInvalidJobTransition
	}
	j.Status = JobStatusClosed
	j.UpdatedAt = time.Now()

	j.record(EventJobPostingClosed, map[string]interface{}{
		"job_id": j.ID,
		"reason": reason,
	})
	return nil
}

// JobDetailsUpdate is a partial update; nil/zero fields are left unchanged.
type JobDetailsUpdate struct {
	Title             *string
	Description       *string
	RequiredSkills    []string
	RequiredLanguages []string
	ExperienceYears   *int
	ContractDuration  *string
	Benefits          []string
	WorkingHours      *string
	DaysOff           *int
	AccommodationType *string
}

func (u JobDetailsUpdate) empty() bool {
	return u.Title == nil && u.Description == nil && u.RequiredSkills == nil &&
		u.RequiredLanguages == nil && u.ExperienceYears == nil && u.ContractDuration == nil &&
		u.Benefits == nil && u.WorkingHours == nil && u.DaysOff == nil && u.AccommodationType == nil
}

// UpdateDetails applies a partial edit. Editing is allowed only while
// the posting is draft or published and not expired.
func (j *JobPosting) UpdateDetails(u JobDetailsUpdate) error {
	if j.Status == JobStatusClosed || j.IsExpired() {
		return ErrJobNotEditable
	}
	if u.empty() {
		return ErrNoFieldsToUpdate
	}

	if u.Title != nil {
		if strings.TrimSpace(*u.Title) == "" {
			return ErrTitleRequired
		}
		j.Title = strings.TrimSpace(*u.Title)
	}
	if u.Description != nil {
		j.Description = *u.Description
	}
	if u.RequiredSkills != nil {
		j.RequiredSkills = u.RequiredSkills
	}
	if u.RequiredLanguages != nil {
		j.RequiredLanguages = u.RequiredLanguages
	}
	if u.ExperienceYears != nil {
		j.ExperienceYears = *u.ExperienceYears
	}
	if u.ContractDuration != nil {
		j.ContractDuration = *u.ContractDuration
	}
	if u.Benefits != nil {
		j.Benefits = u.Benefits
	}
	if u.WorkingHours != nil {
		j.WorkingHours = *u.WorkingHours
	}
	if u.DaysOff != nil {
		j.DaysOff = *u.DaysOff
	}
	if u.AccommodationType != nil {
		j.AccommodationType = *u.AccommodationType
	}
	j.UpdatedAt = time.Now()

	j.record(EventJobDetailsUpdated, map[string]interface{}{
		"job_id": j.ID,
	})
	return nil
}

// Match score component weights. Skill and language components award
// proportional credit so that one more matching skill or language never
// lowers the score.
const (
	matchWeightSkills      = 40
	matchWeightLanguages   = 25
	matchWeightNationality = 15
	matchWeightExperience  = 20
)

// MatchScore computes the compatibility of a candidate profile with
/// this posting as an integer in [0,100]. Deterministic: depends only on
// the posting's requirements and the profile's attributes.
func (j *JobPosting) MatchScore(profile *MaidProfileForMatching) int {
	score := 0.0

	score += overlapRatio(j.RequiredSkills, profile.Skills) * matchWeightSkills
	score += overlapRatio(j.RequiredLanguages, profile.Languages) * matchWeightLanguages

	if j.PreferredNationality == "" || strings.EqualFold(j.PreferredNationality, profile.Nationality) {
		score += matchWeightNationality
	}

	if j.ExperienceYears <= 0 || profile.ExperienceYears >= j.ExperienceYears {
		score += matchWeightExperience
	} else {
		score += float64(profile.ExperienceYears) / float64(j.ExperienceYears) * matchWeightExperience
	}

	result := int(score + 0.5)
	if result < 0 {
		return 0
	}
	if result > 100 {
		return 100
	}
	return result
}

// overlapRatio returns matched/required in [0,1]; an empty requirement
// list is fully satisfied.
func overlapRatio(required, provided []string) float64 {
	if len(required) == 0 {
		return 1
	}
	have := make(map[string]bool, len(provided))
	for _, p := range provided {
		have[strings.ToLower(strings.TrimSpace(p))] = true
	}
	matched := 0
	for _, r := range required {
		if have[strings.ToLower(strings.TrimSpace(r))] {
			matched++
		}
	}
	return float64(matched) / float64(len(required))
}

func (j *JobPosting) record(eventType string, payload map[string]interface{}) {
	j.events = append(j.events, newEvent(eventType, payload))
}

// DrainEvents returns the buffered domain events and clears the buffer.
// Callers receive their own slice, never a live reference.
func (j *JobPosting) DrainEvents() []Event {
	out := make([]Event, len(j.events))
	copy(out, j.events)
	j.events = nil
	return out
}

// JobRepository is the persistence port for job postings. Update
// persists mutable fields except the application counter, which only
// moves through IncrementApplications so the capacity ceiling is
// enforced atomically at the store.
type JobRepository interface {
	Create(ctx context.Context, job *JobPosting) error
	GetByID(ctx context.Context, id string) (*JobPosting, error)
	Update(ctx context.Context, job *JobPosting) error
	// IncrementApplications adds one to the application counter only
	// while it is below MaxApplications; ErrMaxApplicationsReached
	// signals a lost capacity race.
	IncrementApplications(ctx context.Context, jobID string) error
	FetchPublished(ctx context.Context, limit, offset int) ([]JobPosting, int64, error)
	FetchBySponsorID(ctx context.Context, sponsorID string, limit, offset int) ([]JobPosting, int64, error)
}

// JobViewCounter tracks posting view counts outside the aggregate;
// views are a read model concern, never a domain invariant.
type JobViewCounter interface {
	Increment(ctx context.Context, jobID string) (int64, error)
	Get(ctx context.Context, jobID string) (int64, error)
}

// JobUsecase defines the job posting commands and queries
type JobUsecase interface {
	CreateJobPosting(ctx context.Context, sponsorID string, cmd CreateJobPostingCommand) (*JobPosting, error)
	UpdateJobDetails(ctx context.Context, sponsorID, jobID string, cmd UpdateJobDetailsCommand) (*JobPosting, error)
	PublishJobPosting(ctx context.Context, sponsorID, jobID string) (*JobPosting, error)
	CloseJobPosting(ctx context.Context, sponsorID, jobID, reason string) error
	GetJobDetails(ctx context.Context, jobID string) (*JobPosting, error)
	ListPublishedJobs(ctx context.Context, page, pageSize int) ([]JobPosting, int64, error)
	ListJobsBySponsor(ctx context.Context, sponsorID string, page, pageSize int) ([]JobPosting, int64, error)
	RecordJobView(ctx context.Context, jobID string) error
}

// CreateJobPostingCommand is the inbound DTO for CreateJobPosting
type CreateJobPostingCommand struct {
	Title                string     `validate:"required,min=3,max=120"`
	Description          string     `validate:"max=5000"`
	RequiredSkills       []string   `validate:"max=20,dive,min=1"`
	RequiredLanguages    []string   `validate:"max=10,dive,min=1"`
	ExperienceYears      int        `validate:"min=0,max=50"`
	PreferredNationality string     `validate:"max=60"`
	Country              string     `validate:"required,country_name"`
	City                 string     `validate:"required"`
	ContractDuration     string     `validate:"max=60"`
	StartDate            *time.Time
	SalaryAmount         float64    `validate:"required,gt=0"`
	SalaryCurrency       string     `validate:"required,salary_currency"`
	SalaryPeriod         string     `validate:"required,salary_period"`
	Benefits             []string   `validate:"max=20"`
	WorkingHours         string     `validate:"max=60"`
	DaysOff              int        `validate:"min=0,max=7"`
	AccommodationType    string     `validate:"max=60"`
	MaxApplications      int        `validate:"min=0,max=500"`
	ExpiresAt            *time.Time
}

// UpdateJobDetailsCommand mirrors JobDetailsUpdate at the use-case boundary
type UpdateJobDetailsCommand struct {
	Title             *string  `validate:"omitempty,min=3,max=120"`
	Description       *string  `validate:"omitempty,max=5000"`
	RequiredSkills    []string `validate:"omitempty,max=20,dive,min=1"`
	RequiredLanguages []string `validate:"omitempty,max=10,dive,min=1"`
	ExperienceYears   *int     `validate:"omitempty,min=0,max=50"`
	ContractDuration  *string  `validate:"omitempty,max=60"`
	Benefits          []string `validate:"omitempty,max=20"`
	WorkingHours      *string  `validate:"omitempty,max=60"`
	DaysOff           *int     `validate:"omitempty,min=0,max=7"`
	AccommodationType *string  `validate:"omitempty,max=60"`
}
