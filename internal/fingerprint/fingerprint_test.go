package fingerprint

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestJobHashStable(t *testing.T) {
	a := JobHash("Backend Engineer", "Build APIs in Go.")
	b := JobHash("Backend Engineer", "Build APIs in Go.")
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
}

func TestJobHashNormalization(t *testing.T) {
	base := JobHash("Backend Engineer", "Build APIs in Go.")

	assert.Equal(t, base, JobHash("BACKEND ENGINEER", "Build APIs in Go."))
	assert.Equal(t, base, JobHash("  Backend Engineer  ", "  Build APIs in Go.  "))
	// composed vs decomposed accents hash the same, accents stripped
	assert.Equal(t, JobHash("Ingénieur", "x"), JobHash("Ingénieur", "x"))
	assert.Equal(t, JobHash("Ingénieur", "x"), JobHash("Ingenieur", "x"))
}

func TestJobHashPrefixBound(t *testing.T) {
	prefix := strings.Repeat("a", 500)
	a := JobHash("Engineer", prefix+" first tail")
	b := JobHash("Engineer", prefix+" second tail entirely different")
	assert.Equal(t, a, b)

	// inside the window the tail still matters
	short := strings.Repeat("a", 100)
	assert.NotEqual(t, JobHash("Engineer", short+" one"), JobHash("Engineer", short+" two"))
}

func TestJobHashPrefixCountsRunes(t *testing.T) {
	// 500 two-byte runes: the window must cover all of them, byte
	// slicing would cut the prefix in half
	prefix := strings.Repeat("é", 500)
	assert.Equal(t, JobHash("Engineer", prefix), JobHash("Engineer", prefix+" ignored tail"))
	assert.NotEqual(t,
		JobHash("Engineer", strings.Repeat("é", 250)+" one"),
		JobHash("Engineer", strings.Repeat("é", 250)+" two"),
	)
}

func TestJobHashSeparatesTitleFromDescription(t *testing.T) {
	assert.NotEqual(t, JobHash("ab", "c"), JobHash("a", "bc"))
}

func TestIdentityHash(t *testing.T) {
	a := IdentityHash("Acme", "Backend Engineer", "Germany")
	assert.Equal(t, a, IdentityHash("ACME", "backend engineer", "GERMANY"))
	assert.NotEqual(t, a, IdentityHash("Acme", "Backend Engineer", "France"))
	assert.NotEqual(t, a, IdentityHash("Other", "Backend Engineer", "Germany"))
}

func TestJobHashProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("hash is case-insensitive", prop.ForAll(
		func(title, desc string) bool {
			return JobHash(title, desc) == JobHash(strings.ToUpper(title), desc)
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("hash ignores tails past the prefix window", prop.ForAll(
		func(tail string) bool {
			prefix := strings.Repeat("x", 500)
			return JobHash("t", prefix+tail) == JobHash("t", prefix)
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
