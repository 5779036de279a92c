package domain_test

import (
	"testing"
	"time"

	"maid-recruitment-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eligibleProfile() *domain.MaidProfileForMatching {
	return &domain.MaidProfileForMatching{
		UserID:          "m1",
		Skills:          []string{"childcare"},
		Languages:       []string{"English", "Arabic"},
		Nationality:     "Filipino",
		ExperienceYears: 3,
		IsActive:        true,
		IsVerified:      true,
	}
}

func TestCanMaidApplyToJob(t *testing.T) {
	t.Run("Eligible maid on a published job", func(t *testing.T) {
		job := newTestPosting(t)
		require.NoError(t, job.Publish())

		result := domain.CanMaidApplyToJob(eligibleProfile(), job)
		assert.True(t, result.CanApply)
		assert.Empty(t, result.Errors)
	})

	t.Run("Inactive profile", func(t *testing.T) {
		job := newTestPosting(t)
		require.NoError(t, job.Publish())
		profile := eligibleProfile()
		profile.IsActive = false

		result := domain.CanMaidApplyToJob(profile, job)
		assert.False(t, result.CanApply)
		assert.Contains(t, result.Errors, "maid profile is not active")
	})

	t.Run("Unverified profile", func(t *testing.T) {
		job := newTestPosting(t)
		require.NoError(t, job.Publish())
		profile := eligibleProfile()
		profile.IsVerified = false

		result := domain.CanMaidApplyToJob(profile, job)
		assert.False(t, result.CanApply)
		assert.Contains(t, result.Errors, "maid profile is not verified")
	})

	t.Run("Draft job", func(t *testing.T) {
		job := newTestPosting(t)

		result := domain.CanMaidApplyToJob(eligibleProfile(), job)
		assert.False(t, result.CanApply)
		assert.Contains(t, result.Errors, "job posting is not published")
	})

	t.Run("Expired job", func(t *testing.T) {
		job := newTestPosting(t)
		require.NoError(t, job.Publish())
		job.ExpiresAt = time.Now().Add(-time.Hour)

		result := domain.CanMaidApplyToJob(eligibleProfile(), job)
		assert.False(t, result.CanApply)
		assert.Contains(t, result.Errors, "job posting has expired")
	})

	t.Run("Missing required language", func(t *testing.T) {
		job := newTestPosting(t)
		require.NoError(t, job.Publish())
		profile := eligibleProfile()
		profile.Languages = []string{"Tagalog"}

		result := domain.CanMaidApplyToJob(profile, job)
		assert.False(t, result.CanApply)
		assert.Contains(t, result.Errors, "missing required languages: english")
	})

	t.Run("Language match is case-insensitive", func(t *testing.T) {
		job := newTestPosting(t)
		require.NoError(t, job.Publish())
		profile := eligibleProfile()
		profile.Languages = []string{"ENGLISH"}

		result := domain.CanMaidApplyToJob(profile, job)
		assert.True(t, result.CanApply)
	})

	t.Run("Missing skills alone do not block", func(t *testing.T) {
		job := newTestPosting(t)
		require.NoError(t, job.Publish())
		profile := eligibleProfile()
		profile.Skills = nil

		result := domain.CanMaidApplyToJob(profile, job)
		assert.True(t, result.CanApply)
	})

	t.Run("Collects every failed rule", func(t *testing.T) {
		job := newTestPosting(t)
		profile := eligibleProfile()
		profile.IsActive = false
		profile.IsVerified = false

		result := domain.CanMaidApplyToJob(profile, job)
		assert.False(t, result.CanApply)
		assert.Len(t, result.Errors, 3)
	})
}
