package postgres

import (
	"time"

	"maid-recruitment-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

// rowScanner is satisfied by both pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanJobPosting(row rowScanner) (*domain.JobPosting, error) {
	var (
		j         domain.JobPosting
		skills    []string
		languages []string
		benefits  []string
		currency  string
		period    string
		status    string
		expiresAt *time.Time
	)

	err := row.Scan(
		&j.ID, &j.SponsorID, &j.Title, &j.Description,
		pq.Array(&skills), pq.Array(&languages),
		&j.ExperienceYears, &j.PreferredNationality,
		&j.Location.Country, &j.Location.City, &j.ContractDuration,
		&j.StartDate, &j.Salary.Amount, &currency, &period,
		pq.Array(&benefits), &j.WorkingHours, &j.DaysOff, &j.AccommodationType,
		&status, &j.ApplicationCount, &j.MaxApplications, &j.ViewCount,
		&j.PostedAt, &expiresAt, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	j.RequiredSkills = skills
	j.RequiredLanguages = languages
	j.Benefits = benefits
	j.Salary.Currency = domain.Currency(currency)
	j.Salary.Period = domain.SalaryPeriod(period)
	j.Status = domain.JobPostingStatus(status)
	if expiresAt != nil {
		j.ExpiresAt = *expiresAt
	}
	return &j, nil
}

func collectJobPostings(rows pgx.Rows) ([]domain.JobPosting, error) {
	var jobs []domain.JobPosting
	for rows.Next() {
		j, err := scanJobPosting(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

func scanApplication(row rowScanner) (*domain.JobApplication, error) {
	var (
		a              domain.JobApplication
		status         string
		salaryAmount   *float64
		salaryCurrency *string
		salaryPeriod   *string
	)

	err := row.Scan(
		&a.ID, &a.JobID, &a.MaidID, &a.SponsorID, &status,
		&a.CoverLetter, &salaryAmount, &salaryCurrency, &salaryPeriod,
		&a.AvailableFrom, &a.MatchScore, &a.Notes,
		&a.AppliedAt, &a.ReviewedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Status = domain.ApplicationStatus(status)
	if salaryAmount != nil && salaryCurrency != nil && salaryPeriod != nil {
		a.ProposedSalary = &domain.Salary{
			Amount:   *salaryAmount,
			Currency: domain.Currency(*salaryCurrency),
			Period:   domain.SalaryPeriod(*salaryPeriod),
		}
	}
	return &a, nil
}

func collectApplications(rows pgx.Rows) ([]domain.JobApplication, error) {
	var apps []domain.JobApplication
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *a)
	}
	return apps, rows.Err()
}

// nullableTime maps the zero time to NULL
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
