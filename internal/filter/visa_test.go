package filter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckVisaIndiaAutoPass(t *testing.T) {
	// India wins even over hard negative sponsorship language
	tests := []string{"India", "Bangalore", "Bengaluru, Karnataka", "Pune", "Remote - India"}

	for _, country := range tests {
		t.Run(country, func(t *testing.T) {
			ok, score, reason := CheckVisa(
				"Backend Engineer",
				"no sponsorship, citizens only, must have work authorization",
				country,
				false,
			)
			assert.True(t, ok)
			assert.Equal(t, IndiaAutoPassScore, score)
			assert.Contains(t, reason, "India")
		})
	}
}

func TestCheckVisaRemoteInternship(t *testing.T) {
	ok, score, reason := CheckVisa("Software Intern", "", "Remote", true)
	assert.True(t, ok)
	assert.Equal(t, RemoteInternScore, score)
	assert.Contains(t, reason, "Remote internship")

	// not remote: falls through to sponsorship scoring
	ok, _, _ = CheckVisa("Software Intern", "", "Germany", false)
	assert.False(t, ok)
}

func TestCheckVisaSponsorship(t *testing.T) {
	tests := []struct {
		name        string
		description string
		pass        bool
		wantReason  string
	}{
		{
			name:        "positive signals pass",
			description: "We offer visa sponsorship and relocation support for all hires.",
			pass:        true,
			wantReason:  "Sponsorship likely",
		},
		{
			name:        "strong negative rejects with sponsorship reason",
			description: "We cannot sponsor. US citizens only.",
			pass:        false,
			wantReason:  "No sponsorship:",
		},
		{
			name:        "silence rejects with neutral reason",
			description: "We build payments infrastructure in Berlin.",
			pass:        false,
			wantReason:  "No sponsorship info for international role",
		},
		{
			name: "neutral zone rejects with neutral reason",
			// no relocation = -2, inside the (-2..0] zone
			description: "Great team. No relocation offered.",
			pass:        false,
			wantReason:  "No sponsorship info for international role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, _, reason := CheckVisa("Backend Engineer", tt.description, "Germany", false)
			assert.Equal(t, tt.pass, ok)
			assert.True(t, strings.HasPrefix(reason, tt.wantReason), "reason=%q", reason)
		})
	}
}

func TestCheckVisaIgnoresTitle(t *testing.T) {
	// sponsorship phrases are scanned against the JD only
	ok, score, _ := CheckVisa("Engineer (visa sponsorship)", "plain description", "Germany", false)
	assert.False(t, ok)
	assert.Equal(t, 0, score)
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("Backend Engineer", "Remote"))
	assert.True(t, IsRemote("Remote Backend Engineer", "Germany"))
	assert.True(t, IsRemote("Engineer", "REMOTE - EMEA"))
	assert.False(t, IsRemote("Backend Engineer", "Berlin"))
}
