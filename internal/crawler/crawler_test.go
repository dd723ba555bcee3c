package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsJobLink(t *testing.T) {
	tests := []struct {
		link string
		text string
		want bool
	}{
		{"https://acme.io/jobs/12345", "Backend Engineer", true},
		{"https://acme.io/openings/backend", "", true},
		{"https://boards.greenhouse.io/acme/jobs/4012345", "", true},
		{"https://jobs.lever.co/acme/7f3a2b1c-aaaa-bbbb-cccc-1234567890ab", "", true},
		{"https://apply.workable.com/acme/j/ABC123/", "", true},
		{"https://acme.io/blog/how-we-hire", "Apply now", true}, // anchor text counts
		{"https://acme.io/blog/how-we-hire", "Read more", false},
		{"https://acme.io/careers#", "Apply", false}, // fragment-only anchors skipped
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isJobLink(tt.link, tt.text), tt.link)
	}
}

func TestIsCareerLink(t *testing.T) {
	assert.True(t, isCareerLink("https://acme.io/careers", ""))
	assert.True(t, isCareerLink("https://acme.io/somewhere", "Join our team"))
	assert.True(t, isCareerLink("https://acme.io/somewhere", "We're hiring"))
	assert.False(t, isCareerLink("https://acme.io/pricing", "Pricing"))
}

func TestSameOrATSHost(t *testing.T) {
	assert.True(t, sameOrATSHost("https://acme.io/careers", "acme.io"))
	assert.True(t, sameOrATSHost("https://boards.greenhouse.io/acme", "acme.io"))
	assert.False(t, sameOrATSHost("https://other.example.com/careers", "acme.io"))
}
