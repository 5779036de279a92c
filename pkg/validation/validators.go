package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// ISO-3166-ish country token: letters and spaces only
var countryRegex = regexp.MustCompile(`^[\p{L} .'-]+$`)

var currencies = map[string]bool{
	"AED": true, "SAR": true, "QAR": true, "KWD": true,
	"BHD": true, "OMR": true, "USD": true,
}

var periods = map[string]bool{
	"monthly": true, "weekly": true, "hourly": true, "yearly": true,
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("salary_currency", SalaryCurrency)
	_ = v.RegisterValidation("salary_period", SalaryPeriod)
	_ = v.RegisterValidation("country_name", CountryName)
}

// SalaryCurrency validates the currency against the supported set
func SalaryCurrency(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // optional, use required if needed
	}
	return currencies[val]
}

// SalaryPeriod validates the pay period
func SalaryPeriod(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return periods[val]
}

// CountryName validates that a string looks like a country or city name
func CountryName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return countryRegex.MatchString(val)
}
