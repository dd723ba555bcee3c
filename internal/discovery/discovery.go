// Global web job discovery engine.
// Generates rotating search queries, discovers company career domains
// through DuckDuckGo's HTML endpoint, and caches them in the store.

package discovery

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-jobhunter-agent/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

const (
	searchEndpoint = "https://html.duckduckgo.com/html/"
	userAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
	searchTimeout  = 15 * time.Second
	searchDelay    = 1500 * time.Millisecond // be respectful to DDG
	maxResults     = 10
)

var roleKeywords = []string{
	"software engineer",
	"software developer",
	"backend engineer",
	"backend developer",
	"frontend engineer",
	"full stack developer",
	"fullstack engineer",
	"ai engineer",
	"ml engineer",
	"machine learning engineer",
	"data engineer",
	"platform engineer",
	"devops engineer",
	"cloud engineer",
	"python developer",
	"java developer",
	"react developer",
	"node.js developer",
}

var levelKeywords = []string{
	"junior",
	"graduate",
	"entry level",
	"fresher",
	"intern",
	"internship",
	"new grad",
	"trainee",
	"early career",
	"associate",
	"0-2 years",
}

var countries = []string{
	"India", "United Kingdom", "Germany", "Netherlands",
	"Ireland", "UAE", "Sweden", "Canada", "Australia",
	"Singapore", "Japan", "Remote",
}

var searchSuffixes = []string{
	"careers",
	"apply now",
	"apply",
	"job opening",
	"hiring",
	"join us",
}

var targetedQueries = []string{
	`"software engineer" "apply now" careers`,
	`"internship" "software engineer" apply`,
	`"graduate program" software engineer`,
	`"entry level" backend developer hiring`,
	`site:*.jobs software engineer`,
	`"junior developer" "visa sponsorship"`,
	`"AI ML internship" apply 2025`,
	`"fresher" "software engineer" India careers`,
	`"new grad" engineer hiring remote`,
	`"associate engineer" careers apply`,
}

// Job boards and social sites we never crawl directly
var skipDomains = map[string]bool{
	"linkedin.com": true, "indeed.com": true, "glassdoor.com": true, "monster.com": true,
	"ziprecruiter.com": true, "dice.com": true, "angel.co": true, "wellfound.com": true,
	"naukri.com": true, "simplyhired.com": true, "careerbuilder.com": true,
	"reed.co.uk": true, "totaljobs.com": true, "jobsite.co.uk": true, "seek.com.au": true,
	"stepstone.de": true, "xing.com": true, "bayt.com": true, "wuzzuf.net": true,
	"facebook.com": true, "twitter.com": true, "reddit.com": true, "youtube.com": true,
	"wikipedia.org": true, "github.com": true, "stackoverflow.com": true,
	"medium.com": true, "quora.com": true, "pinterest.com": true,
	"duckduckgo.com": true,
}

var atsDomains = []string{
	"greenhouse.io", "lever.co", "ashbyhq.com", "workable.com",
	"bamboohr.com", "jobvite.com", "icims.com", "myworkdayjobs.com",
	"smartrecruiters.com", "recruitee.com", "breezy.hr",
	"applytojob.com", "jazz.co", "taleo.net",
}

// DomainStore persists discovered domains.
type DomainStore interface {
	DomainExists(domain string) bool
	UpsertDomain(rec models.DomainRecord) (bool, error)
}

type Engine struct {
	store      DomainStore
	httpClient *http.Client
	rng        *rand.Rand
}

func NewEngine(store DomainStore) *Engine {
	return &Engine{
		store:      store,
		httpClient: &http.Client{Timeout: searchTimeout},
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GenerateQueries builds a rotated batch of search queries combining
// role, level, country, and suffix templates.
func (e *Engine) GenerateQueries(batchSize int) []string {
	var queries []string

	for i := 0; i < batchSize/3; i++ {
		role := roleKeywords[e.rng.Intn(len(roleKeywords))]
		level := levelKeywords[e.rng.Intn(len(levelKeywords))]
		suffix := searchSuffixes[e.rng.Intn(len(searchSuffixes))]
		queries = append(queries, fmt.Sprintf("%s %s %s", level, role, suffix))
	}

	for i := 0; i < batchSize/3; i++ {
		role := roleKeywords[e.rng.Intn(len(roleKeywords))]
		level := levelKeywords[e.rng.Intn(len(levelKeywords))]
		country := countries[e.rng.Intn(len(countries))]
		queries = append(queries, fmt.Sprintf("%s %s %s", level, role, country))
	}

	targeted := append([]string(nil), targetedQueries...)
	e.rng.Shuffle(len(targeted), func(i, j int) { targeted[i], targeted[j] = targeted[j], targeted[i] })
	for _, q := range targeted {
		if len(queries) >= batchSize {
			break
		}
		queries = append(queries, q)
	}

	e.rng.Shuffle(len(queries), func(i, j int) { queries[i], queries[j] = queries[j], queries[i] })
	if len(queries) > batchSize {
		queries = queries[:batchSize]
	}
	return queries
}

type searchResult struct {
	URL   string
	Title string
}

// search runs one query against DuckDuckGo's HTML endpoint.
func (e *Engine) search(ctx context.Context, query string) ([]searchResult, error) {
	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, "POST", searchEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var results []searchResult
	doc.Find("div.result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		link := sel.Find("a.result__a").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}
		results = append(results, searchResult{
			URL:   resolveRedirect(href),
			Title: strings.TrimSpace(link.Text()),
		})
		return len(results) < maxResults
	})
	return results, nil
}

// resolveRedirect unwraps DDG's /l/?uddg=... redirect links.
func resolveRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

// Discover runs a batch of searches and records any new domains.
// Returns the domains discovered this batch.
func (e *Engine) Discover(ctx context.Context, batchSize int) []string {
	queries := e.GenerateQueries(batchSize)
	var newDomains []string

	logrus.Infof("🌍 Web Discovery: searching with %d queries...", len(queries))

	for _, query := range queries {
		if ctx.Err() != nil {
			break
		}

		results, err := e.search(ctx, query)
		if err != nil {
			logrus.Warnf("  Search failed for %.30q: %v", query, err)
			time.Sleep(2 * time.Second)
			continue
		}

		for _, result := range results {
			domain := ExtractDomain(result.URL)
			if !validDomain(domain) || e.store.DomainExists(domain) {
				continue
			}

			saved, err := e.store.UpsertDomain(models.DomainRecord{
				Domain:      domain,
				CompanyName: companyFromTitle(result.Title),
				CareerURL:   result.URL,
				SourceQuery: truncate(query, 200),
				IsATS:       IsATSDomain(domain),
			})
			if err != nil {
				logrus.Debugf("Domain save error: %v", err)
				continue
			}
			if saved {
				newDomains = append(newDomains, domain)
				logrus.Debugf("  🆕 Discovered: %s", domain)
			}
		}

		time.Sleep(searchDelay)
	}

	logrus.Infof("  🌍 Discovered %d new domains", len(newDomains))
	return newDomains
}

// ExtractDomain pulls the bare lowercase domain out of a URL.
func ExtractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	domain := u.Hostname()
	if domain == "" {
		domain = strings.SplitN(u.Path, "/", 2)[0]
	}
	return strings.ToLower(strings.TrimPrefix(domain, "www."))
}

// IsATSDomain reports whether the domain belongs to a known ATS.
func IsATSDomain(domain string) bool {
	for _, ats := range atsDomains {
		if strings.Contains(domain, ats) {
			return true
		}
	}
	return false
}

func validDomain(domain string) bool {
	if len(domain) < 4 {
		return false
	}
	for skip := range skipDomains {
		if strings.Contains(domain, skip) {
			return false
		}
	}
	return true
}

// companyFromTitle grabs the leading segment of a search result title,
// "Acme Corp - Careers" style.
func companyFromTitle(title string) string {
	for _, sep := range []string{" - ", " | "} {
		if i := strings.Index(title, sep); i >= 0 {
			title = title[:i]
		}
	}
	return truncate(title, 100)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
