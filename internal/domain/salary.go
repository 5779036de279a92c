package domain

import (
	"errors"
	"fmt"
)

// SalaryPeriod is the pay interval a salary amount refers to
type SalaryPeriod string

const (
	PeriodMonthly SalaryPeriod = "monthly"
	PeriodWeekly  SalaryPeriod = "weekly"
	PeriodHourly  SalaryPeriod = "hourly"
	PeriodYearly  SalaryPeriod = "yearly"
)

// Currency codes supported by the marketplace
type Currency string

const (
	CurrencyAED Currency = "AED"
	CurrencySAR Currency = "SAR"
	CurrencyQAR Currency = "QAR"
	CurrencyKWD Currency = "KWD"
	CurrencyBHD Currency = "BHD"
	CurrencyOMR Currency = "OMR"
	CurrencyUSD Currency = "USD"
)

var validCurrencies = map[Currency]bool{
	CurrencyAED: true,
	CurrencySAR: true,
	CurrencyQAR: true,
	CurrencyKWD: true,
	CurrencyBHD: true,
	CurrencyOMR: true,
	CurrencyUSD: true,
}

var validPeriods = map[SalaryPeriod]bool{
	PeriodMonthly: true,
	PeriodWeekly:  true,
	PeriodHourly:  true,
	PeriodYearly:  true,
}

var (
	ErrInvalidSalaryAmount   = errors.New("salary amount must be greater than zero")
	ErrInvalidSalaryCurrency = errors.New("unsupported salary currency")
	ErrInvalidSalaryPeriod   = errors.New("invalid salary period")
)

// Salary is an immutable monetary amount with a pay period.
// Equality is structural; comparison normalizes to a monthly amount.
type Salary struct {
	Amount   float64      `json:"amount"`
	Currency Currency     `json:"currency"`
	Period   SalaryPeriod `json:"period"`
}

func NewSalary(amount float64, currency Currency, period SalaryPeriod) (Salary, error) {
	if amount <= 0 {
		return Salary{}, ErrInvalidSalaryAmount
	}
	if !validCurrencies[currency] {
		return Salary{}, ErrInvalidSalaryCurrency
	}
	if !validPeriods[period] {
		return Salary{}, ErrInvalidSalaryPeriod
	}
	return Salary{Amount: amount, Currency: currency, Period: period}, nil
}

// MonthlyAmount normalizes the salary to a monthly figure:
// weekly x4.33, hourly x160, yearly /12
func (s Salary) MonthlyAmount() float64 {
	switch s.Period {
	case PeriodWeekly:
		return s.Amount * 4.33
	case PeriodHourly:
		return s.Amount * 160
	case PeriodYearly:
		return s.Amount / 12
	default:
		return s.Amount
	}
}

// Compare orders two salaries by normalized monthly amount.
// NOTE: no currency conversion is applied; amounts in different
// currencies are compared as raw numbers. Known limitation, kept
// deliberate until an exchange-rate source is decided.
func (s Salary) Compare(other Salary) int {
	a, b := s.MonthlyAmount(), other.MonthlyAmount()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// InRange reports whether the normalized monthly amount falls within [min, max]
func (s Salary) InRange(min, max float64) bool {
	m := s.MonthlyAmount()
	return m >= min && m <= max
}

func (s Salary) Format() string {
	return fmt.Sprintf("%.2f %s/%s", s.Amount, s.Currency, s.Period)
}

func (s Salary) Equals(other Salary) bool {
	return s.Amount == other.Amount && s.Currency == other.Currency && s.Period == other.Period
}
