package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MaxExperienceYears rejects a posting once the JD asks for at least
// this many years.
const MaxExperienceYears = 3

// Patterns that indicate required experience. Each captures the
// integer years; ranges like "5-7 years" capture the lower bound.
var experiencePatterns = []*regexp.Regexp{
	// "5+ years", "5+ yrs"
	regexp.MustCompile(`(?i)(\d+)\s*\+\s*(?:years|yrs)`),
	// "5-7 years", "5–7 years"
	regexp.MustCompile(`(?i)(\d+)\s*[-–]\s*\d+\s*(?:years|yrs)`),
	// "minimum 5 years", "at least 5 years"
	regexp.MustCompile(`(?i)(?:minimum|at least|min\.?)\s*(?:of\s+)?(\d+)\s*(?:years|yrs)`),
	// "5 years of experience"
	regexp.MustCompile(`(?i)(\d+)\s*(?:years|yrs)\s*(?:of\s+)?(?:experience|exp)`),
	// "5 years' experience" (possessive)
	regexp.MustCompile(`(?i)(\d+)\s*(?:years|yrs)['’]\s*(?:experience|exp)`),
	// "experience: 5 years"
	regexp.MustCompile(`(?i)experience\s*[:=]\s*(\d+)\s*(?:years|yrs)`),
}

// ExtractYears returns the MAXIMUM years-of-experience mentioned in
// text, 0 when no pattern matches. Maximum, not first match: a JD
// mentioning both "2 years" and "5+ years" is read as requiring 5.
// Captures outside [0,30] are discarded as noise.
func ExtractYears(text string) int {
	if text == "" {
		return 0
	}

	text = strings.ToLower(text)
	maxYears := -1

	for _, pattern := range experiencePatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			val, err := strconv.Atoi(m[1])
			if err != nil || val < 0 || val > 30 {
				continue
			}
			if val > maxYears {
				maxYears = val
			}
		}
	}

	if maxYears < 0 {
		return 0
	}
	return maxYears
}

// IsInternshipTitle checks if the title indicates an internship role.
func IsInternshipTitle(title string) bool {
	t := strings.ToLower(title)
	for _, k := range internshipTitleKeywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}

// PassesExperienceFilter returns (passed, years, reason).
// Internship titles auto-pass before any extraction runs, even when
// the JD itself demands years of experience.
func PassesExperienceFilter(title, description string) (bool, int, string) {
	if IsInternshipTitle(title) {
		return true, 0, "Internship role — auto-pass"
	}

	years := ExtractYears(description)

	if years >= MaxExperienceYears {
		return false, years, fmt.Sprintf("Requires %d+ years experience", years)
	}

	if years == 0 {
		return true, 0, "No experience requirement found"
	}

	return true, years, fmt.Sprintf("Requires %d years — acceptable", years)
}
