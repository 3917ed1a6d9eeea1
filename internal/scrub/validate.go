package scrub

import "regexp"

// residualCheck is a high-confidence detector run against already-scrubbed
// text. These checks are deliberately decoupled from the pattern registry:
// they exist to catch a registry rule silently failing to fire, so they must
// not be configurable through the same surface they are validating.
type residualCheck struct {
	name  string
	regex *regexp.Regexp
}

var residualChecks = []residualCheck{
	{"api_key", regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{20,}`)},
	{"aws_access_key", regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`)},
	{"github_token", regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{36}\b`)},
	{"email", regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)},
	{"jwt", regexp.MustCompile(`\beyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`)},
	{"pem_header", regexp.MustCompile(`-----BEGIN [A-Z ]+-----`)},
	{"ssn", regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{"connection_string", regexp.MustCompile(`://[^\s/@:]+:[^\s@]+@`)},
	{"credit_card", regexp.MustCompile(`\b(?:\d{4}[ -]?){3}\d{4}\b`)},
}

// ValidationResult reports residual leakage found in scrubbed text.
// Downstream code should treat Clean=false as a hard stop before
// transmission, not a warning.
type ValidationResult struct {
	Clean    bool     `json:"clean"`
	Residual []string `json:"residual"`
}

// Validate runs the independent residual-leakage checks against text that
// has already been through Scrub. Empty input is trivially clean.
func Validate(text string) ValidationResult {
	result := ValidationResult{Clean: true, Residual: []string{}}
	if text == "" {
		return result
	}
	for _, c := range residualChecks {
		if c.regex.MatchString(text) {
			result.Clean = false
			result.Residual = append(result.Residual, c.name)
		}
	}
	return result
}
