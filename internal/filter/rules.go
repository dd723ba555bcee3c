package filter

import (
	"fmt"
	"strings"
)

// AcceptThreshold is the minimum rule score for a posting to survive
// the first filter stage.
const AcceptThreshold = 2

// ScoreJob runs the weighted keyword tables over title + JD and
// returns the total plus an ordered breakdown of every contribution.
// Pure function of its inputs.
func ScoreJob(title, description string) (int, []string) {
	score := 0
	var breakdown []string
	t := strings.ToLower(strings.TrimSpace(title))
	d := strings.ToLower(strings.TrimSpace(description))

	for _, kw := range titlePositive {
		if strings.Contains(t, kw.Keyword) {
			score += kw.Weight
			breakdown = append(breakdown, fmt.Sprintf("title:+%d '%s'", kw.Weight, kw.Keyword))
		}
	}

	for _, kw := range titleNegative {
		if strings.Contains(t, kw.Keyword) {
			score += kw.Weight
			breakdown = append(breakdown, fmt.Sprintf("title:%d '%s'", kw.Weight, kw.Keyword))
		}
	}

	for _, kw := range jdPositive {
		if strings.Contains(d, kw.Keyword) {
			score += kw.Weight
			breakdown = append(breakdown, fmt.Sprintf("jd:+%d '%s'", kw.Weight, kw.Keyword))
		}
	}

	for _, kw := range jdNegative {
		if strings.Contains(d, kw.Keyword) {
			score += kw.Weight
			breakdown = append(breakdown, fmt.Sprintf("jd:%d '%s'", kw.Weight, kw.Keyword))
		}
	}

	return score, breakdown
}

// PassesRuleFilter returns (accepted, score, breakdown).
func PassesRuleFilter(title, description string) (bool, int, []string) {
	score, breakdown := ScoreJob(title, description)
	return score >= AcceptThreshold, score, breakdown
}
