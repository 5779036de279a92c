package domain

import "strings"

// Application policy caps
const (
	// MaxActiveApplicationsPerMaid ceilings how many non-final
	// applications one maid may hold at once.
	MaxActiveApplicationsPerMaid = 5

	// MinimumMatchScore is the submission-time floor; a lower-scoring
	// application is refused outright rather than accepted and flagged.
	MinimumMatchScore = 40
)

// ApplicationEligibility is the outcome of the eligibility policy.
// When CanApply is false, Errors lists every failed rule.
type ApplicationEligibility struct {
	CanApply bool     `json:"can_apply"`
	Errors   []string `json:"errors,omitempty"`
}

// CanMaidApplyToJob evaluates the cross-cutting eligibility rules: the
// maid must be active and verified, the job must be open for
// applications, and every required language must be spoken. Languages
// are the hard requirement; skills and nationality preference are soft
// and graded by the match score with its submission floor.
func CanMaidApplyToJob(profile *MaidProfileForMatching, job *JobPosting) ApplicationEligibility {
	var errs []string

	if !profile.IsActive {
		errs = append(errs, "maid profile is not active")
	}
	if !profile.IsVerified {
		errs = append(errs, "maid profile is not verified")
	}
	if job.Status != JobStatusPublished {
		errs = append(errs, "job posting is not published")
	}
	if job.IsExpired() {
		errs = append(errs, "job posting has expired")
	}
	if missing := missingRequirements(job.RequiredLanguages, profile.Languages); len(missing) > 0 {
		errs = append(errs, "missing required languages: "+strings.Join(missing, ", "))
	}

	return ApplicationEligibility{CanApply: len(errs) == 0, Errors: errs}
}

func missingRequirements(required, provided []string) []string {
	if len(required) == 0 {
		return nil
	}
	have := make(map[string]bool, len(provided))
	for _, p := range provided {
		have[strings.ToLower(strings.TrimSpace(p))] = true
	}
	var missing []string
	for _, r := range required {
		if !have[strings.ToLower(strings.TrimSpace(r))] {
			missing = append(missing, r)
		}
	}
	return missing
}
