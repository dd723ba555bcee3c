package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreJob(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		expected    int
	}{
		{
			// junior (+3) + software engineer (+1)
			name:     "Junior title",
			title:    "Junior Software Engineer",
			expected: 4,
		},
		{
			// internship (+4) also contains intern (+4), software engineer (+1):
			// substring matches accumulate, that is the contract
			name:     "Internship title accumulates",
			title:    "Software Engineer Internship",
			expected: 9,
		},
		{
			// senior (-6) + software engineer (+1)
			name:     "Senior penalty",
			title:    "Senior Software Engineer",
			expected: -5,
		},
		{
			name:        "JD signals add to title",
			title:       "Graduate Engineer", // graduate +3
			description: "join our graduate program, 0-2 years welcome",
			// graduate program +2, 0-2 years +2
			expected: 7,
		},
		{
			name:        "JD negatives subtract",
			title:       "Developer", // +1
			description: "minimum 5 years of experience and a proven track record",
			// minimum 5 years -4, 5 years of experience -4, proven track record -2
			expected: -9,
		},
		{
			// "5+ years" must NOT also match "5 years of experience":
			// containment is literal, the '+' breaks it
			name:        "Plus notation matches one keyword only",
			title:       "Developer", // +1
			description: "5+ years of experience required",
			expected:    -3,
		},
		{
			name:     "Empty inputs",
			title:    "",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := ScoreJob(tt.title, tt.description)
			assert.Equal(t, tt.expected, score)
		})
	}
}

func TestScoreJobCaseInsensitive(t *testing.T) {
	upper, _ := ScoreJob("JUNIOR SOFTWARE ENGINEER", "ENTRY LEVEL ROLE")
	lower, _ := ScoreJob("junior software engineer", "entry level role")
	assert.Equal(t, lower, upper)
}

func TestScoreJobBreakdownOrder(t *testing.T) {
	//breakdown lists title contributions before JD contributions
	_, breakdown := ScoreJob("Junior Developer", "internship")
	assert.Len(t, breakdown, 3)
	assert.Contains(t, breakdown[0], "title:")
	assert.Contains(t, breakdown[len(breakdown)-1], "jd:")
}

func TestPassesRuleFilter(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		pass        bool
	}{
		{"Accepts at threshold", "Associate Engineer", "", true},     // associate +2
		{"Rejects below threshold", "Software Engineer", "", false},  // +1
		{"Rejects senior", "Senior Backend Engineer", "fresher", false},
		{"Accepts internship regardless of short JD", "Backend Intern", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, score, breakdown := PassesRuleFilter(tt.title, tt.description)
			assert.Equal(t, tt.pass, ok, "score=%d breakdown=%v", score, breakdown)
			assert.Equal(t, ok, score >= AcceptThreshold)
		})
	}
}
