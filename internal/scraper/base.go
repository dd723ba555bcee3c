// Define an interface for all scrapers
// Ensure consistency

package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-jobhunter-agent/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// UserAgent shared by all ATS API calls
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

	requestTimeout = 10 * time.Second

	// PerCompanyDelay paces requests so we stay polite per vendor
	PerCompanyDelay = 500 * time.Millisecond

	// MaxJDChars caps stored JD text at collection time
	MaxJDChars = 6000
)

//Scraper defines the interface that all platform scrapers must implement
type Scraper interface {
	//Scrape jobs from the platform
	Scrape(ctx context.Context) ([]models.Posting, error)

	//Name is the platform name (Greenhouse, Lever, ...)
	Name() string
}

// NewHTTPClient builds the client every ATS scraper uses.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

// GetJSON performs a GET and decodes the JSON body into out.
func GetJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")
	return doJSON(client, req, out)
}

// PostJSON performs a POST with a JSON body and decodes the response.
func PostJSON(ctx context.Context, client *http.Client, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Content-Type", "application/json")
	return doJSON(client, req, out)
}

func doJSON(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

var slugCaser = cases.Title(language.English)

// CompanyName turns an ATS board slug ("weights-biases") into a
// display name ("Weights Biases").
func CompanyName(slug string) string {
	return slugCaser.String(strings.ReplaceAll(slug, "-", " "))
}

// NewPosting assembles a raw posting record the way every scraper
// reports one.
func NewPosting(title, company, country, url, description, source string) models.Posting {
	if len(description) > MaxJDChars {
		description = description[:MaxJDChars]
	}
	return models.Posting{
		Title:           strings.TrimSpace(title),
		Company:         strings.TrimSpace(company),
		Country:         strings.TrimSpace(country),
		URL:             strings.TrimSpace(url),
		Description:     description,
		Source:          source,
		VisaSponsorship: models.VisaUnknown,
		DateFound:       time.Now().Format("2006-01-02 15:04:05"),
		Status:          models.StatusFound,
	}
}
