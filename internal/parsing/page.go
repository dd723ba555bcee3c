// Generic job page parser.
// Extracts title, company, location, and JD text from ANY career page
// with selector-cascade heuristics. No ATS-specific logic here.

package parsing

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go-jobhunter-agent/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

const (
	userAgent     = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
	fetchTimeout  = 12 * time.Second
	maxJDExtract  = 6000
	minJDValid    = 100
	minJDSelector = 200
)

// JD selectors ordered by specificity
var jdSelectors = []string{
	".job-description",
	".jobDescription",
	".job_description",
	"#job-description",
	"#jobDescription",
	".posting-description",
	`[data-qa="job-description"]`,
	`[data-testid="job-description"]`,
	`[role="article"]`,
	".job-details",
	".job-content",
	".careers-description",
	".position-description",
	".vacancy-description",
	".opening-description",
	".role-description",
	"article.job",
	"div.job",
	"article",
	"main",
}

var titleSelectors = []string{
	"h1.job-title",
	"h1.posting-headline",
	"h1.position-title",
	`[data-qa="job-title"]`,
	`[data-testid="job-title"]`,
	"h1",
}

var locationSelectors = []string{
	".job-location",
	".location",
	`[data-qa="job-location"]`,
	`[data-testid="location"]`,
	".posting-location",
	".job-meta .location",
}

var applyPattern = regexp.MustCompile(`(?i)apply\s*(now|here|today)?|submit\s*application`)

// PageParser fetches and parses arbitrary career pages.
type PageParser struct {
	httpClient *http.Client
}

func NewPageParser() *PageParser {
	return &PageParser{
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
}

// fetchPage downloads a page and strips noisy elements.
func (pp *PageParser) fetchPage(pageURL string) (*goquery.Document, error) {
	if pageURL == "" {
		return nil, fmt.Errorf("empty url")
	}

	req, err := http.NewRequest("GET", pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := pp.httpClient.Do(req)
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

	doc.Find("script, style, nav, header, footer, aside, noscript").Remove()
	return doc, nil
}

func extractTitle(doc *goquery.Document) string {
	for _, selector := range titleSelectors {
		el := doc.Find(selector).First()
		if el.Length() > 0 {
			text := strings.TrimSpace(el.Text())
			if len(text) > 5 && len(text) < 200 {
				return text
			}
		}
	}

	// Fallback: page <title>, split "Role - Company" patterns
	if t := doc.Find("title").First(); t.Length() > 0 {
		text := strings.TrimSpace(t.Text())
		parts := regexp.MustCompile(`\s*[|–—-]\s*`).Split(text, -1)
		if len(parts) > 0 {
			title := strings.TrimSpace(parts[0])
			if len(title) > 200 {
				title = title[:200]
			}
			return title
		}
	}

	return ""
}

func extractCompany(doc *goquery.Document, pageURL string) string {
	if meta := doc.Find(`meta[property="og:site_name"]`).First(); meta.Length() > 0 {
		if content, ok := meta.Attr("content"); ok && content != "" {
			if len(content) > 100 {
				content = content[:100]
			}
			return content
		}
	}

	for _, selector := range []string{".company-name", ".employer", `[data-qa="company"]`} {
		el := doc.Find(selector).First()
		if el.Length() > 0 {
			text := strings.TrimSpace(el.Text())
			if text != "" {
				if len(text) > 100 {
					text = text[:100]
				}
				return text
			}
		}
	}

	// Fallback: domain name
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	domain := strings.TrimPrefix(parsed.Hostname(), "www.")
	name := strings.SplitN(domain, ".", 2)[0]
	return titleCaser.String(strings.ReplaceAll(name, "-", " "))
}

func extractLocation(doc *goquery.Document) string {
	for _, selector := range locationSelectors {
		el := doc.Find(selector).First()
		if el.Length() > 0 {
			text := strings.TrimSpace(el.Text())
			if len(text) > 2 && len(text) < 150 {
				return text
			}
		}
	}
	return "Unknown"
}

func extractDescription(doc *goquery.Document) string {
	for _, selector := range jdSelectors {
		el := doc.Find(selector).First()
		if el.Length() > 0 {
			text := squashWhitespace(el.Text())
			if len(text) > minJDSelector {
				if len(text) > maxJDExtract {
					text = text[:maxJDExtract]
				}
				return text
			}
		}
	}

	// Fallback: full body text
	body := squashWhitespace(doc.Find("body").Text())
	if len(body) > maxJDExtract {
		body = body[:maxJDExtract]
	}
	return body
}

func hasApplyButton(doc *goquery.Document) bool {
	found := false
	doc.Find("a, button").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if applyPattern.MatchString(strings.TrimSpace(sel.Text())) {
			found = true
			return false
		}
		return true
	})
	return found
}

// ParseJobPage parses any job page into a posting, nil when the page
// does not look like a posting (no title, or JD under 100 chars).
func (pp *PageParser) ParseJobPage(pageURL string) *models.Posting {
	doc, err := pp.fetchPage(pageURL)
	if err != nil {
		logrus.Debugf("Fetch failed %.60s: %v", pageURL, err)
		return nil
	}

	title := extractTitle(doc)
	if title == "" {
		return nil
	}

	description := extractDescription(doc)
	if len(description) < minJDValid {
		return nil
	}

	return &models.Posting{
		Title:           title,
		Company:         extractCompany(doc, pageURL),
		Country:         extractLocation(doc),
		URL:             pageURL,
		Description:     description,
		Source:          "web_discovery",
		VisaSponsorship: models.VisaUnknown,
		DateFound:       time.Now().Format("2006-01-02 15:04:05"),
		Status:          models.StatusFound,
	}
}

// FetchFullJD fetches just the JD text from a URL, used to enrich
// short descriptions. Empty string on any failure.
func (pp *PageParser) FetchFullJD(pageURL string) string {
	doc, err := pp.fetchPage(pageURL)
	if err != nil {
		return ""
	}
	return extractDescription(doc)
}

func squashWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
