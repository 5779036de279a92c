package domain_test

import (
	"testing"

	"maid-recruitment-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSalaryValidation(t *testing.T) {
	t.Run("Should reject non-positive amounts", func(t *testing.T) {
		_, err := domain.NewSalary(0, domain.CurrencyAED, domain.PeriodMonthly)
		assert.ErrorIs(t, err, domain.ErrInvalidSalaryAmount)

		_, err = domain.NewSalary(-100, domain.CurrencyAED, domain.PeriodMonthly)
		assert.ErrorIs(t, err, domain.ErrInvalidSalaryAmount)
	})

	t.Run("Should reject unsupported currency", func(t *testing.T) {
		_, err := domain.NewSalary(1800, domain.Currency("XYZ"), domain.PeriodMonthly)
		assert.ErrorIs(t, err, domain.ErrInvalidSalaryCurrency)
	})

	t.Run("Should reject invalid period", func(t *testing.T) {
		_, err := domain.NewSalary(1800, domain.CurrencyAED, domain.SalaryPeriod("daily"))
		assert.ErrorIs(t, err, domain.ErrInvalidSalaryPeriod)
	})

	t.Run("Should accept a valid salary", func(t *testing.T) {
		s, err := domain.NewSalary(1800, domain.CurrencyAED, domain.PeriodMonthly)
		require.NoError(t, err)
		assert.Equal(t, 1800.0, s.Amount)
	})
}

func TestSalaryMonthlyAmount(t *testing.T) {
	cases := []struct {
		name     string
		amount   float64
		period   domain.SalaryPeriod
		expected float64
	}{
		{"monthly unchanged", 1800, domain.PeriodMonthly, 1800},
		{"weekly x4.33", 500, domain.PeriodWeekly, 2165},
		{"hourly x160", 10, domain.PeriodHourly, 1600},
		{"yearly /12", 24000, domain.PeriodYearly, 2000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := domain.NewSalary(tc.amount, domain.CurrencyAED, tc.period)
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, s.MonthlyAmount(), 0.001)
		})
	}
}

func TestSalaryMonthlyAmountMonotonic(t *testing.T) {
	// For any fixed period, a higher amount never normalizes lower
	periods := []domain.SalaryPeriod{domain.PeriodMonthly, domain.PeriodWeekly, domain.PeriodHourly, domain.PeriodYearly}
	for _, p := range periods {
		prev := 0.0
		for amount := 1.0; amount <= 10000; amount *= 3 {
			s, err := domain.NewSalary(amount, domain.CurrencyUSD, p)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, s.MonthlyAmount(), prev, "period %s amount %f", p, amount)
			prev = s.MonthlyAmount()
		}
	}
}

func TestSalaryCompare(t *testing.T) {
	weekly, _ := domain.NewSalary(500, domain.CurrencyAED, domain.PeriodWeekly)   // 2165/month
	monthly, _ := domain.NewSalary(1800, domain.CurrencyAED, domain.PeriodMonthly)
	same, _ := domain.NewSalary(1800, domain.CurrencyAED, domain.PeriodMonthly)

	assert.Equal(t, 1, weekly.Compare(monthly))
	assert.Equal(t, -1, monthly.Compare(weekly))
	assert.Equal(t, 0, monthly.Compare(same))

	// ordering agrees with the normalized monthly amount
	if weekly.MonthlyAmount() > monthly.MonthlyAmount() {
		assert.Positive(t, weekly.Compare(monthly))
	}
}

func TestSalaryInRangeAndEquals(t *testing.T) {
	s, _ := domain.NewSalary(1800, domain.CurrencyAED, domain.PeriodMonthly)

	assert.True(t, s.InRange(1000, 2000))
	assert.False(t, s.InRange(2000, 3000))
	assert.True(t, s.InRange(1800, 1800))

	same, _ := domain.NewSalary(1800, domain.CurrencyAED, domain.PeriodMonthly)
	other, _ := domain.NewSalary(1800, domain.CurrencySAR, domain.PeriodMonthly)
	assert.True(t, s.Equals(same))
	assert.False(t, s.Equals(other))

	assert.Equal(t, "1800.00 AED/monthly", s.Format())
}
