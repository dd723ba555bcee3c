// Career page crawler.
// Visits discovered domains, probes common career paths, follows
// career links off the homepage, and collects job posting URLs.

package crawler

import (
	"regexp"
	"strings"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
)

const (
	userAgent    = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
	crawlTimeout = 15 * time.Second
	parallelism  = 10
	// probe only the most common paths per domain
	maxCareerPaths = 10
	maxJobsPerPage = 200
)

var careerPaths = []string{
	"/careers",
	"/jobs",
	"/join-us",
	"/join",
	"/work-with-us",
	"/work",
	"/internships",
	"/openings",
	"/opportunities",
	"/vacancies",
	"/positions",
	"/hiring",
	"/talent",
	"/team",
	"/careers/openings",
	"/careers/jobs",
	"/about/careers",
	"/company/careers",
	"/en/careers",
}

var careerLinkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bcareers?\b`),
	regexp.MustCompile(`(?i)\bjobs?\b`),
	regexp.MustCompile(`(?i)\bjoin\s*(us|our\s*team)\b`),
	regexp.MustCompile(`(?i)\bwork\s*with\s*us\b`),
	regexp.MustCompile(`(?i)\bopen\s*(positions?|roles?|ings?)\b`),
	regexp.MustCompile(`(?i)\bhiring\b`),
	regexp.MustCompile(`(?i)\binternships?\b`),
}

var jobLinkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)/jobs?/\d+`),
	regexp.MustCompile(`(?i)/openings?/`),
	regexp.MustCompile(`(?i)/positions?/`),
	regexp.MustCompile(`(?i)/apply/`),
	regexp.MustCompile(`(?i)/vacancies?/`),
	regexp.MustCompile(`(?i)greenhouse\.io/.+/jobs/\d+`),
	regexp.MustCompile(`(?i)lever\.co/.+/[a-f0-9-]+`),
	regexp.MustCompile(`(?i)ashbyhq\.com/.+/[a-f0-9-]+`),
	regexp.MustCompile(`(?i)workable\.com/.+/j/`),
}

// ATS hosts we allow crawling off-domain
var atsHosts = []string{
	"greenhouse.io", "lever.co", "ashbyhq.com",
	"workable.com", "bamboohr.com", "jobvite.com",
}

// Crawler collects job posting links from company domains.
type Crawler struct{}

func New() *Crawler {
	return &Crawler{}
}

// Crawl visits each domain and returns domain -> job posting URLs.
func (c *Crawler) Crawl(domains []string) map[string][]string {
	logrus.Infof("🕸️ Crawling %d domains for career pages...", len(domains))

	results := make(map[string][]string)
	for _, domain := range domains {
		urls := c.crawlDomain(domain)
		if len(urls) > 0 {
			results[domain] = urls
			logrus.Infof("  ✅ %s: %d job links", domain, len(urls))
		}
	}

	total := 0
	for _, v := range results {
		total += len(v)
	}
	logrus.Infof("  🕸️ Total job links found: %d across %d domains", total, len(results))
	return results
}

// crawlDomain probes career paths on one domain, follows career links
// found on the homepage, and harvests job posting URLs.
func (c *Crawler) crawlDomain(domain string) []string {
	base := "https://" + strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(domain, "https://"), "http://"), "/")

	jobURLs := mapset.NewSet[string]()
	var mu sync.Mutex

	collector := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.MaxDepth(2),
		colly.Async(true),
	)
	collector.SetRequestTimeout(crawlTimeout)
	_ = collector.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: parallelism})

	collector.OnHTML("a[href]", func(e *colly.HTMLElement) {
		link := e.Request.AbsoluteURL(e.Attr("href"))
		if link == "" {
			return
		}

		if isJobLink(link, e.Text) {
			mu.Lock()
			if jobURLs.Cardinality() < maxJobsPerPage {
				jobURLs.Add(link)
			}
			mu.Unlock()
			return
		}

		if isCareerLink(link, e.Text) && sameOrATSHost(link, domain) {
			_ = e.Request.Visit(link)
		}
	})

	for _, path := range careerPaths[:maxCareerPaths] {
		_ = collector.Visit(base + path)
	}
	_ = collector.Visit(base)

	collector.Wait()
	return jobURLs.ToSlice()
}

func isJobLink(link, text string) bool {
	for _, pattern := range jobLinkPatterns {
		if pattern.MatchString(link) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(text), "apply") && !strings.HasSuffix(link, "#")
}

func isCareerLink(link, text string) bool {
	for _, pattern := range careerLinkPatterns {
		if pattern.MatchString(text) || pattern.MatchString(link) {
			return true
		}
	}
	return false
}

// sameOrATSHost keeps the crawl on the company's own domain except
// for known ATS hosts.
func sameOrATSHost(link, domain string) bool {
	lower := strings.ToLower(link)
	if strings.Contains(lower, strings.ToLower(domain)) {
		return true
	}
	for _, host := range atsHosts {
		if strings.Contains(lower, host) {
			return true
		}
	}
	return false
}
