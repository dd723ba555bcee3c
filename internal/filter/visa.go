package filter

import (
	"fmt"
	"strings"
)

// Sentinel scores for the two auto-pass branches. Out of band so the
// caller can tell them apart from computed sponsorship scores.
const (
	IndiaAutoPassScore  = 99
	RemoteInternScore   = 50
	sponsorshipMinScore = 1
)

// CheckVisa returns (passed, score, reason) for an international role.
// Priority order: India locations auto-pass, then remote internships,
// then the weighted sponsorship phrase score over the JD only.
// The title is never scanned for sponsorship phrases.
func CheckVisa(title, description, country string, isRemote bool) (bool, int, string) {
	c := strings.ToLower(strings.TrimSpace(country))
	t := strings.ToLower(title)
	d := strings.ToLower(description)

	for _, k := range indiaKeywords {
		if strings.Contains(c, k) {
			return true, IndiaAutoPassScore, "India — no sponsorship needed"
		}
	}

	isIntern := false
	for _, k := range visaInternKeywords {
		if strings.Contains(t, k) {
			isIntern = true
			break
		}
	}
	if isRemote && isIntern {
		return true, RemoteInternScore, "Remote internship — auto-pass"
	}

	score := 0
	var reasons []string

	for _, kw := range sponsorshipPositive {
		if strings.Contains(d, kw.Keyword) {
			score += kw.Weight
			reasons = append(reasons, fmt.Sprintf("+%d '%s'", kw.Weight, kw.Keyword))
		}
	}

	for _, kw := range sponsorshipNegative {
		if strings.Contains(d, kw.Keyword) {
			score += kw.Weight
			reasons = append(reasons, fmt.Sprintf("%d '%s'", kw.Weight, kw.Keyword))
		}
	}

	if score >= sponsorshipMinScore {
		return true, score, "Sponsorship likely: " + joinTop(reasons, 3)
	}

	if score < -2 {
		return false, score, "No sponsorship: " + joinTop(reasons, 3)
	}

	// Neutral zone (-2..0): no strong signal either way, still a
	// rejection but with its own reason string. Product-level choice,
	// kept as-is because changing it moves accept rates.
	return false, score, "No sponsorship info for international role"
}

// IsRemote is how callers derive the is_remote flag: "remote" anywhere
// in the country text or the title.
func IsRemote(title, country string) bool {
	return strings.Contains(strings.ToLower(country), "remote") ||
		strings.Contains(strings.ToLower(title), "remote")
}

func joinTop(parts []string, n int) string {
	if len(parts) > n {
		parts = parts[:n]
	}
	return strings.Join(parts, "; ")
}
