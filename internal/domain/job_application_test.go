package domain_test

import (
	"testing"

	"maid-recruitment-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApplication(t *testing.T) *domain.JobApplication {
	t.Helper()
	job := newTestPosting(t)
	app, err := domain.NewJobApplication(job, "m1", 85, "I have 5 years of experience", nil, nil)
	require.NoError(t, err)
	return app
}

func TestNewJobApplication(t *testing.T) {
	t.Run("Should start pending with the score snapshotted", func(t *testing.T) {
		job := newTestPosting(t)
		app, err := domain.NewJobApplication(job, "m1", 85, "", nil, nil)
		require.NoError(t, err)

		assert.Equal(t, domain.ApplicationStatusPending, app.Status)
		assert.Equal(t, 85, app.MatchScore)
		assert.Equal(t, job.ID, app.JobID)
		assert.Equal(t, job.SponsorID, app.SponsorID)
		assert.Nil(t, app.ReviewedAt)

		events := app.DrainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, domain.EventApplicationSubmitted, events[0].Type)
		assert.Equal(t, app.ID, events[0].Payload["application_id"])
	})

	t.Run("Should reject missing maid and out-of-range score", func(t *testing.T) {
		job := newTestPosting(t)

		_, err := domain.NewJobApplication(job, "", 85, "", nil, nil)
		assert.Error(t, err)

		_, err = domain.NewJobApplication(job, "m1", -1, "", nil, nil)
		assert.Error(t, err)

		_, err = domain.NewJobApplication(job, "m1", 101, "", nil, nil)
		assert.Error(t, err)
	})
}

func TestDrainEventsClearsBuffer(t *testing.T) {
	app := newTestApplication(t)

	first := app.DrainEvents()
	assert.Len(t, first, 1)
	assert.Empty(t, app.DrainEvents())

	require.NoError(t, app.Accept("welcome aboard"))
	assert.Len(t, app.DrainEvents(), 1)
	assert.Empty(t, app.DrainEvents())
}

func TestApplicationReview(t *testing.T) {
	app := newTestApplication(t)

	require.NoError(t, app.Review())
	assert.Equal(t, domain.ApplicationStatusReviewed, app.Status)
	require.NotNil(t, app.ReviewedAt)

	// reviewed is only reachable from pending
	assert.Error(t, app.Review())
}

func TestApplicationInterview(t *testing.T) {
	t.Run("From pending", func(t *testing.T) {
		app := newTestApplication(t)
		require.NoError(t, app.StartInterview())
		assert.Equal(t, domain.ApplicationStatusInterviewing, app.Status)
	})

	t.Run("From reviewed", func(t *testing.T) {
		app := newTestApplication(t)
		require.NoError(t, app.Review())
		require.NoError(t, app.StartInterview())
		assert.Equal(t, domain.ApplicationStatusInterviewing, app.Status)
	})
}

func TestApplicationAccept(t *testing.T) {
	app := newTestApplication(t)
	app.DrainEvents()

	require.NoError(t, app.Accept("start next month"))
	assert.Equal(t, domain.ApplicationStatusAccepted, app.Status)
	assert.Equal(t, "start next month", app.Notes)
	require.NotNil(t, app.ReviewedAt)

	events := app.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventApplicationAccepted, events[0].Type)
}

func TestFinalStatusIsTerminal(t *testing.T) {
	cases := []struct {
		name     string
		finalize func(a *domain.JobApplication) error
	}{
		{"accepted", func(a *domain.JobApplication) error { return a.Accept("") }},
		{"rejected", func(a *domain.JobApplication) error { return a.Reject("not a fit") }},
		{"withdrawn", func(a *domain.JobApplication) error { return a.Withdraw("found another job") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApplication(t)
			require.NoError(t, tc.finalize(app))
			require.True(t, app.Status.IsFinal())
			final := app.Status

			assert.ErrorIs(t, app.Review(), domain.ErrApplicationFinal)
			assert.ErrorIs(t, app.StartInterview(), domain.ErrApplicationFinal)
			assert.ErrorIs(t, app.Accept(""), domain.ErrApplicationFinal)
			assert.ErrorIs(t, app.Reject(""), domain.ErrApplicationFinal)
			assert.ErrorIs(t, app.Withdraw(""), domain.ErrApplicationFinal)
			assert.Equal(t, final, app.Status)
		})
	}
}

func TestApplicationStatusTransitions(t *testing.T) {
	assert.True(t, domain.ApplicationStatusPending.CanTransitionTo(domain.ApplicationStatusReviewed))
	assert.True(t, domain.ApplicationStatusPending.CanTransitionTo(domain.ApplicationStatusWithdrawn))
	assert.True(t, domain.ApplicationStatusReviewed.CanTransitionTo(domain.ApplicationStatusInterviewing))
	assert.True(t, domain.ApplicationStatusInterviewing.CanTransitionTo(domain.ApplicationStatusAccepted))

	assert.False(t, domain.ApplicationStatusReviewed.CanTransitionTo(domain.ApplicationStatusReviewed))
	assert.False(t, domain.ApplicationStatusInterviewing.CanTransitionTo(domain.ApplicationStatusPending))
	assert.False(t, domain.ApplicationStatusAccepted.CanTransitionTo(domain.ApplicationStatusRejected))

	assert.True(t, domain.ApplicationStatusPending.IsActive())
	assert.True(t, domain.ApplicationStatusInterviewing.IsActive())
	assert.False(t, domain.ApplicationStatusWithdrawn.IsActive())
	assert.False(t, domain.ApplicationStatus("bogus").IsActive())
}
