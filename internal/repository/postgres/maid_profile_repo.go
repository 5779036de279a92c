package postgres

import (
	"context"
	"errors"

	"maid-recruitment-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type maidProfileRepo struct {
	db *pgxpool.Pool
}

// NewMaidProfileRepository creates the read-only view over maid
// profiles used for matching. Profiles are owned by the profile
// bounded context; this repository never writes.
func NewMaidProfileRepository(db *pgxpool.Pool) domain.MaidProfileRepository {
	return &maidProfileRepo{db: db}
}

func (r *maidProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.MaidProfileForMatching, error) {
	query := `
		SELECT user_id, skills, languages, nationality, experience_years,
		       is_active, is_verified
		FROM maid_profiles
		WHERE user_id = $1`

	var (
		p         domain.MaidProfileForMatching
		skills    []string
		languages []string
	)
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, pq.Array(&skills), pq.Array(&languages),
		&p.Nationality, &p.ExperienceYears, &p.IsActive, &p.IsVerified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	p.Skills = skills
	p.Languages = languages
	return &p, nil
}
