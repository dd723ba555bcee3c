package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go-jobhunter-agent/internal/fingerprint"
	"go-jobhunter-agent/internal/filter"
	"go-jobhunter-agent/internal/models"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"
)

// minJDLength is the description length below which we try to fetch
// the full job page before scoring.
const minJDLength = 300

// Validator is the final filter stage (AI-backed).
type Validator interface {
	Validate(ctx context.Context, title, description, jobHash string) models.AIVerdict
}

// Enricher fetches the full JD text for a URL. Best-effort: empty
// string on failure, failures never reject a posting.
type Enricher interface {
	FetchFullJD(url string) string
}

// SeenChecker answers whether a URL is already persisted.
type SeenChecker interface {
	JobExists(url string) bool
}

// Stats carries per-stage rejection counters for one run.
type Stats struct {
	Total      int
	Invalid    int
	Rule       int
	Experience int
	Visa       int
	AI         int
	Skipped    int // per-posting failures isolated by the orchestrator
	Passed     int
}

func (s Stats) String() string {
	return fmt.Sprintf("rule=%d exp=%d visa=%d ai=%d invalid=%d skipped=%d passed=%d/%d",
		s.Rule, s.Experience, s.Visa, s.AI, s.Invalid, s.Skipped, s.Passed, s.Total)
}

// Pipeline sequences the four filters over a batch of postings,
// short-circuiting on the first rejection. Single-threaded and
// sequential by contract.
type Pipeline struct {
	validator Validator
	enricher  Enricher
	seen      SeenChecker
}

func New(validator Validator, enricher Enricher, seen SeenChecker) *Pipeline {
	return &Pipeline{
		validator: validator,
		enricher:  enricher,
		seen:      seen,
	}
}

// Deduplicate removes postings sharing a URL or a (company, title,
// country) identity hash within one batch, keeping the first. A raw
// aggregation batch may carry the same opening under two different
// tracking URLs.
func Deduplicate(postings []models.Posting) []models.Posting {
	seenURLs := mapset.NewSet[string]()
	seenHashes := mapset.NewSet[string]()

	var unique []models.Posting
	for _, p := range postings {
		h := fingerprint.IdentityHash(p.Company, p.Title, p.Country)

		if (p.URL != "" && seenURLs.Contains(p.URL)) || seenHashes.Contains(h) {
			continue
		}

		seenURLs.Add(p.URL)
		seenHashes.Add(h)
		unique = append(unique, p)
	}
	return unique
}

// Run filters a batch and returns the accepted subset, each annotated
// with relevance score, visa classification, and notes.
func (pl *Pipeline) Run(ctx context.Context, postings []models.Posting) ([]models.Posting, Stats) {
	stats := Stats{Total: len(postings)}
	var passed []models.Posting

	for i, p := range postings {
		if i > 0 && i%50 == 0 {
			logrus.Infof("  📊 Progress: %d/%d | Passed so far: %d", i, stats.Total, stats.Passed)
		}

		accepted, ok := pl.runOne(ctx, p, &stats)
		if !ok {
			continue
		}

		passed = append(passed, accepted)
		stats.Passed++
		logrus.Infof("  ✅ [%d/%d] %.20s — %.35s [%.15s]", i+1, stats.Total, accepted.Company, accepted.Title, accepted.Country)
	}

	logrus.Infof("📊 Filter results: %s", stats)
	return passed, stats
}

// runOne applies the filter chain to a single posting. A panic inside
// any stage is isolated here so one bad posting cannot abort the batch.
func (pl *Pipeline) runOne(ctx context.Context, p models.Posting, stats *Stats) (result models.Posting, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("  ❌ Pipeline panic on %q: %v", p.Title, r)
			stats.Skipped++
			ok = false
		}
	}()

	if !p.Valid() {
		stats.Invalid++
		return p, false
	}

	// Enrich short descriptions with the full job page, best-effort
	if len(p.Description) < minJDLength && p.URL != "" && pl.enricher != nil {
		if fullJD := pl.enricher.FetchFullJD(p.URL); fullJD != "" {
			p.Description = fullJD
		}
	}

	ruleOK, score, _ := filter.PassesRuleFilter(p.Title, p.Description)
	if !ruleOK {
		stats.Rule++
		return p, false
	}

	expOK, _, _ := filter.PassesExperienceFilter(p.Title, p.Description)
	if !expOK {
		stats.Experience++
		return p, false
	}

	isRemote := filter.IsRemote(p.Title, p.Country)
	visaOK, visaScore, _ := filter.CheckVisa(p.Title, p.Description, p.Country, isRemote)
	if !visaOK {
		stats.Visa++
		return p, false
	}

	// Final authority. Only this stage's rejection reason is logged.
	verdict := pl.validator.Validate(ctx, p.Title, p.Description, fingerprint.JobHash(p.Title, p.Description))
	if verdict.Decision == "REJECT" {
		stats.AI++
		logrus.Debugf("  🤖 AI REJECT: %.40s — %s", p.Title, verdict.Reason)
		return p, false
	}

	p.RelevanceScore = score
	p.VisaSponsorship = classifyVisa(visaScore, p.Country)
	p.Notes = fmt.Sprintf("Score:%d | AI:%d%% | %s", score, verdict.Confidence, verdict.Reason)

	return p, true
}

// FilterUnseen drops postings whose URL is already persisted.
func (pl *Pipeline) FilterUnseen(postings []models.Posting) []models.Posting {
	if pl.seen == nil {
		return postings
	}
	var unseen []models.Posting
	for _, p := range postings {
		if p.URL != "" && pl.seen.JobExists(p.URL) {
			continue
		}
		unseen = append(unseen, p)
	}
	return unseen
}

func classifyVisa(visaScore int, country string) string {
	if visaScore > 1 {
		return models.VisaSponsored
	}
	if strings.Contains(strings.ToLower(country), "india") {
		return models.VisaNotRequired
	}
	return models.VisaUnknown
}
