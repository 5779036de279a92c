package domain

import "context"

// MaidProfileForMatching is a read-only view of a maid profile owned by
// the profile bounded context. It is consumed for score computation and
// eligibility checks only, never mutated here.
type MaidProfileForMatching struct {
	UserID          string   `json:"user_id"`
	Skills          []string `json:"skills"`
	Languages       []string `json:"languages"`
	Nationality     string   `json:"nationality"`
	ExperienceYears int      `json:"experience_years"`
	IsActive        bool     `json:"is_active"`
	IsVerified      bool     `json:"is_verified"`
}

type MaidProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*MaidProfileForMatching, error)
}
