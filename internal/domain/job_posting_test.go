package domain_test

import (
	"testing"
	"time"

	"maid-recruitment-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPosting(t *testing.T) *domain.JobPosting {
	t.Helper()
	salary, err := domain.NewSalary(1800, domain.CurrencyAED, domain.PeriodMonthly)
	require.NoError(t, err)

	job, err := domain.NewJobPosting(domain.NewJobPostingParams{
		SponsorID:            "s1",
		Title:                "Nanny",
		Description:          "Live-in nanny for two children",
		RequiredSkills:       []string{"childcare", "cooking"},
		RequiredLanguages:    []string{"english"},
		ExperienceYears:      2,
		PreferredNationality: "Filipino",
		Location:             domain.Location{Country: "UAE", City: "Dubai"},
		Salary:               salary,
		MaxApplications:      3,
	})
	require.NoError(t, err)
	return job
}

func TestNewJobPosting(t *testing.T) {
	t.Run("Should create in draft with zero applications", func(t *testing.T) {
		job := newTestPosting(t)
		assert.Equal(t, domain.JobStatusDraft, job.Status)
		assert.Equal(t, 0, job.ApplicationCount)
		assert.NotEmpty(t, job.ID)

		events := job.DrainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, domain.EventJobPostingCreated, events[0].Type)
	})

	t.Run("Should fail without sponsor, title or location", func(t *testing.T) {
		salary, _ := domain.NewSalary(1800, domain.CurrencyAED, domain.PeriodMonthly)

		_, err := domain.NewJobPosting(domain.NewJobPostingParams{
			Title: "Nanny", Location: domain.Location{Country: "UAE", City: "Dubai"}, Salary: salary,
		})
		assert.ErrorIs(t, err, domain.ErrSponsorRequired)

		_, err = domain.NewJobPosting(domain.NewJobPostingParams{
			SponsorID: "s1", Location: domain.Location{Country: "UAE", City: "Dubai"}, Salary: salary,
		})
		assert.ErrorIs(t, err, domain.ErrTitleRequired)

		_, err = domain.NewJobPosting(domain.NewJobPostingParams{
			SponsorID: "s1", Title: "Nanny", Location: domain.Location{Country: "UAE"}, Salary: salary,
		})
		assert.ErrorIs(t, err, domain.ErrLocationRequired)
	})

	t.Run("Should apply the default application ceiling", func(t *testing.T) {
		salary, _ := domain.NewSalary(1800, domain.CurrencyAED, domain.PeriodMonthly)
		job, err := domain.NewJobPosting(domain.NewJobPostingParams{
			SponsorID: "s1", Title: "Nanny",
			Location: domain.Location{Country: "UAE", City: "Dubai"}, Salary: salary,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultMaxApplications, job.MaxApplications)
	})
}

func TestJobPostingLifecycle(t *testing.T) {
	t.Run("Publish stamps PostedAt and default expiry", func(t *testing.T) {
		job := newTestPosting(t)
		job.DrainEvents()

		require.NoError(t, job.Publish())
		assert.Equal(t, domain.JobStatusPublished, job.Status)
		require.NotNil(t, job.PostedAt)
		assert.False(t, job.ExpiresAt.IsZero())

		events := job.DrainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, domain.EventJobPostingPublished, events[0].Type)
	})

	t.Run("Publish twice fails", func(t *testing.T) {
		job := newTestPosting(t)
		require.NoError(t, job.Publish())
		assert.ErrorIs(t, job.Publish(), domain.ErrInvalidJobTransition)
	})

	t.Run("Close from draft or published, never from closed", func(t *testing.T) {
		job := newTestPosting(t)
		require.NoError(t, job.Close("changed my mind"))
		assert.Equal(t, domain.JobStatusClosed, job.Status)
		assert.ErrorIs(t, job.Close("again"), domain.ErrInvalidJobTransition)
	})

	t.Run("Expiry is derived, not stored", func(t *testing.T) {
		job := newTestPosting(t)
		require.NoError(t, job.Publish())
		assert.False(t, job.IsExpired())

		job.ExpiresAt = time.Now().Add(-time.Hour)
		assert.True(t, job.IsExpired())
		assert.Equal(t, domain.JobStatusPublished, job.Status)
		assert.False(t, job.AcceptsApplications())
	})
}

func TestIncrementApplicationCount(t *testing.T) {
	job := newTestPosting(t)

	for i := 0; i < job.MaxApplications; i++ {
		require.NoError(t, job.IncrementApplicationCount())
	}
	assert.True(t, job.HasReachedMaxApplications())

	// the (max+1)-th increment must fail, never silently exceed
	err := job.IncrementApplicationCount()
	assert.ErrorIs(t, err, domain.ErrMaxApplicationsReached)
	assert.Equal(t, job.MaxApplications, job.ApplicationCount)
}

func TestUpdateDetails(t *testing.T) {
	title := "Senior Nanny"

	t.Run("Should update while draft", func(t *testing.T) {
		job := newTestPosting(t)
		job.DrainEvents()

		require.NoError(t, job.UpdateDetails(domain.JobDetailsUpdate{Title: &title}))
		assert.Equal(t, "Senior Nanny", job.Title)

		events := job.DrainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, domain.EventJobDetailsUpdated, events[0].Type)
	})

	t.Run("Should reject empty update", func(t *testing.T) {
		job := newTestPosting(t)
		assert.ErrorIs(t, job.UpdateDetails(domain.JobDetailsUpdate{}), domain.ErrNoFieldsToUpdate)
	})

	t.Run("Should reject closed posting and change nothing", func(t *testing.T) {
		job := newTestPosting(t)
		require.NoError(t, job.Close("filled"))
		before := job.Title

		err := job.UpdateDetails(domain.JobDetailsUpdate{Title: &title})
		assert.ErrorIs(t, err, domain.ErrJobNotEditable)
		assert.Equal(t, before, job.Title)
	})

	t.Run("Should reject expired posting", func(t *testing.T) {
		job := newTestPosting(t)
		require.NoError(t, job.Publish())
		job.ExpiresAt = time.Now().Add(-time.Minute)

		err := job.UpdateDetails(domain.JobDetailsUpdate{Title: &title})
		assert.ErrorIs(t, err, domain.ErrJobNotEditable)
	})
}

func TestMatchScore(t *testing.T) {
	job := newTestPosting(t)

	perfect := &domain.MaidProfileForMatching{
		UserID:          "m1",
		Skills:          []string{"childcare", "cooking"},
		Languages:       []string{"english"},
		Nationality:     "Filipino",
		ExperienceYears: 5,
	}

	t.Run("Perfect profile scores 100", func(t *testing.T) {
		assert.Equal(t, 100, job.MatchScore(perfect))
	})

	t.Run("Deterministic", func(t *testing.T) {
		first := job.MatchScore(perfect)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, job.MatchScore(perfect))
		}
	})

	t.Run("Bounded to [0,100] for arbitrary profiles", func(t *testing.T) {
		profiles := []*domain.MaidProfileForMatching{
			{},
			{Skills: []string{"x", "y", "z"}, Languages: []string{"a", "b"}, ExperienceYears: 99},
			{Skills: []string{"childcare"}, Nationality: "Indonesian"},
			perfect,
		}
		for _, p := range profiles {
			score := job.MatchScore(p)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	})

	t.Run("Adding a matching skill never lowers the score", func(t *testing.T) {
		p := &domain.MaidProfileForMatching{Languages: []string{"english"}, Nationality: "Filipino", ExperienceYears: 3}
		prev := job.MatchScore(p)
		for _, skill := range job.RequiredSkills {
			p.Skills = append(p.Skills, skill)
			next := job.MatchScore(p)
			assert.GreaterOrEqual(t, next, prev)
			prev = next
		}
	})

	t.Run("Adding a matching language never lowers the score", func(t *testing.T) {
		p := &domain.MaidProfileForMatching{Skills: []string{"childcare"}, ExperienceYears: 3}
		prev := job.MatchScore(p)
		for _, lang := range job.RequiredLanguages {
			p.Languages = append(p.Languages, lang)
			next := job.MatchScore(p)
			assert.GreaterOrEqual(t, next, prev)
			prev = next
		}
	})

	t.Run("No nationality preference awards the nationality component", func(t *testing.T) {
		open := newTestPosting(t)
		open.PreferredNationality = ""
		mismatched := &domain.MaidProfileForMatching{
			Skills:          []string{"childcare", "cooking"},
			Languages:       []string{"english"},
			Nationality:     "Kenyan",
			ExperienceYears: 5,
		}
		assert.Equal(t, 100, open.MatchScore(mismatched))
		assert.Less(t, job.MatchScore(mismatched), 100)
	})

	t.Run("Partial experience earns partial credit", func(t *testing.T) {
		junior := &domain.MaidProfileForMatching{
			Skills:          []string{"childcare", "cooking"},
			Languages:       []string{"english"},
			Nationality:     "Filipino",
			ExperienceYears: 1, // job asks for 2
		}
		score := job.MatchScore(junior)
		assert.Less(t, score, 100)
		assert.Greater(t, score, 80)
	})
}
