package postgres

import (
	"context"
	"errors"

	"maid-recruitment-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates the postgres-backed application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationColumns = `
	id, job_id, maid_id, sponsor_id, status, cover_letter,
	proposed_salary_amount, proposed_salary_currency, proposed_salary_period,
	available_from, match_score, notes, applied_at, reviewed_at, created_at, updated_at`

// uniqueViolation is the postgres error code raised by the partial
// unique index on (job_id, maid_id) WHERE status NOT IN (final states)
const uniqueViolation = "23505"

func (r *applicationRepo) Create(ctx context.Context, app *domain.JobApplication) error {
	query := `
		INSERT INTO job_applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	var salaryAmount *float64
	var salaryCurrency, salaryPeriod *string
	if app.ProposedSalary != nil {
		salaryAmount = &app.ProposedSalary.Amount
		c, p := string(app.ProposedSalary.Currency), string(app.ProposedSalary.Period)
		salaryCurrency, salaryPeriod = &c, &p
	}

	_, err := r.db.Exec(ctx, query,
		app.ID, app.JobID, app.MaidID, app.SponsorID, string(app.Status), app.CoverLetter,
		salaryAmount, salaryCurrency, salaryPeriod,
		app.AvailableFrom, app.MatchScore, app.Notes,
		app.AppliedAt, app.ReviewedAt, app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		// A lost uniqueness race looks exactly like the pre-check failure
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateApplication
		}
		return err
	}
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.JobApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM job_applications WHERE id = $1`

	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

func (r *applicationRepo) GetByJobID(ctx context.Context, jobID string, status *domain.ApplicationStatus) ([]domain.JobApplication, error) {
	query := `SELECT ` + applicationColumns + `
		FROM job_applications
		WHERE job_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY match_score DESC, applied_at ASC`

	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}

	rows, err := r.db.Query(ctx, query, jobID, statusArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

func (r *applicationRepo) GetByMaidID(ctx context.Context, maidID string) ([]domain.JobApplication, error) {
	query := `SELECT ` + applicationColumns + `
		FROM job_applications
		WHERE maid_id = $1
		ORDER BY applied_at DESC`

	rows, err := r.db.Query(ctx, query, maidID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

func (r *applicationRepo) ExistsActiveForMaidAndJob(ctx context.Context, maidID, jobID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM job_applications
			WHERE maid_id = $1 AND job_id = $2
			  AND status NOT IN ('accepted', 'rejected', 'withdrawn')
		)`

	var exists bool
	err := r.db.QueryRow(ctx, query, maidID, jobID).Scan(&exists)
	return exists, err
}

func (r *applicationRepo) CountActiveByMaid(ctx context.Context, maidID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM job_applications
		WHERE maid_id = $1
		  AND status NOT IN ('accepted', 'rejected', 'withdrawn')`

	var count int
	err := r.db.QueryRow(ctx, query, maidID).Scan(&count)
	return count, err
}

func (r *applicationRepo) Update(ctx context.Context, app *domain.JobApplication) error {
	query := `
		UPDATE job_applications SET
			status = $2, notes = $3, reviewed_at = $4, updated_at = $5
		WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, query,
		app.ID, string(app.Status), app.Notes, app.ReviewedAt, app.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
