package postgres

import (
	"context"
	"errors"

	"maid-recruitment-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobPostingRepo struct {
	db *pgxpool.Pool
}

// NewJobRepository creates the postgres-backed job posting repository
func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobPostingRepo{db: db}
}

const jobPostingColumns = `
	id, sponsor_id, title, description, required_skills, required_languages,
	experience_years, preferred_nationality, country, city, contract_duration,
	start_date, salary_amount, salary_currency, salary_period, benefits,
	working_hours, days_off, accommodation_type, status, application_count,
	max_applications, view_count, posted_at, expires_at, created_at, updated_at`

func (r *jobPostingRepo) Create(ctx context.Context, job *domain.JobPosting) error {
	query := `
		INSERT INTO job_postings (` + jobPostingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)`

	_, err := r.db.Exec(ctx, query,
		job.ID, job.SponsorID, job.Title, job.Description,
		pq.Array(job.RequiredSkills), pq.Array(job.RequiredLanguages),
		job.ExperienceYears, job.PreferredNationality,
		job.Location.Country, job.Location.City, job.ContractDuration,
		job.StartDate, job.Salary.Amount, string(job.Salary.Currency), string(job.Salary.Period),
		pq.Array(job.Benefits), job.WorkingHours, job.DaysOff, job.AccommodationType,
		string(job.Status), job.ApplicationCount, job.MaxApplications, job.ViewCount,
		job.PostedAt, nullableTime(job.ExpiresAt), job.CreatedAt, job.UpdatedAt,
	)
	return err
}

func (r *jobPostingRepo) GetByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	query := `SELECT ` + jobPostingColumns + ` FROM job_postings WHERE id = $1`

	job, err := scanJobPosting(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

func (r *jobPostingRepo) Update(ctx context.Context, job *domain.JobPosting) error {
	// application_count is deliberately excluded; it only moves through
	// IncrementApplications so the ceiling is enforced at the store
	query := `
		UPDATE job_postings SET
			title = $2, description = $3, required_skills = $4, required_languages = $5,
			experience_years = $6, preferred_nationality = $7, contract_duration = $8,
			start_date = $9, salary_amount = $10, salary_currency = $11, salary_period = $12,
			benefits = $13, working_hours = $14, days_off = $15, accommodation_type = $16,
			status = $17, max_applications = $18, posted_at = $19, expires_at = $20,
			updated_at = $21
		WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Description,
		pq.Array(job.RequiredSkills), pq.Array(job.RequiredLanguages),
		job.ExperienceYears, job.PreferredNationality, job.ContractDuration,
		job.StartDate, job.Salary.Amount, string(job.Salary.Currency), string(job.Salary.Period),
		pq.Array(job.Benefits), job.WorkingHours, job.DaysOff, job.AccommodationType,
		string(job.Status), job.MaxApplications, job.PostedAt, nullableTime(job.ExpiresAt),
		job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementApplications is the storage-side capacity gate: the counter
// only advances while it is strictly below max_applications, so two
// simultaneous submissions cannot both beat the ceiling.
func (r *jobPostingRepo) IncrementApplications(ctx context.Context, jobID string) error {
	query := `
		UPDATE job_postings
		SET application_count = application_count + 1, updated_at = NOW()
		WHERE id = $1 AND application_count < max_applications`

	cmdTag, err := r.db.Exec(ctx, query, jobID)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		// Either the job vanished or the ceiling was hit; disambiguate
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM job_postings WHERE id = $1)`, jobID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrMaxApplicationsReached
	}
	return nil
}

func (r *jobPostingRepo) FetchPublished(ctx context.Context, limit, offset int) ([]domain.JobPosting, int64, error) {
	query := `SELECT ` + jobPostingColumns + `
		FROM job_postings
		WHERE status = 'published' AND (expires_at IS NULL OR expires_at > NOW())
		ORDER BY posted_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs, err := collectJobPostings(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	countQuery := `
		SELECT COUNT(*) FROM job_postings
		WHERE status = 'published' AND (expires_at IS NULL OR expires_at > NOW())`
	if err := r.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobPostingRepo) FetchBySponsorID(ctx context.Context, sponsorID string, limit, offset int) ([]domain.JobPosting, int64, error) {
	query := `SELECT ` + jobPostingColumns + `
		FROM job_postings
		WHERE sponsor_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, sponsorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs, err := collectJobPostings(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_postings WHERE sponsor_id = $1`, sponsorID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}
