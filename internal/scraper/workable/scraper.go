// Workable ATS scraper, backed by the public v3 accounts API.

package workable

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-jobhunter-agent/internal/ai"
	"go-jobhunter-agent/internal/models"
	"go-jobhunter-agent/internal/scraper"

	"github.com/sirupsen/logrus"
)

type Workable struct {
	companies  []string
	httpClient *http.Client
}

func New(companies []string) *Workable {
	return &Workable{
		companies:  companies,
		httpClient: scraper.NewHTTPClient(),
	}
}

func (w *Workable) Name() string {
	return "Workable"
}

type searchRequest struct {
	Query      string   `json:"query"`
	Location   []string `json:"location"`
	Department []string `json:"department"`
	Worktype   []string `json:"worktype"`
	Remote     []string `json:"remote"`
}

type searchResponse struct {
	Results []struct {
		Title       string `json:"title"`
		Shortcode   string `json:"shortcode"`
		Description string `json:"description"`
		Location    struct {
			Country string `json:"country"`
			City    string `json:"city"`
		} `json:"location"`
	} `json:"results"`
}

func (w *Workable) Scrape(ctx context.Context) ([]models.Posting, error) {
	logrus.Infof("🔧 Scraping Workable (%d companies)...", len(w.companies))
	var postings []models.Posting

	for _, company := range w.companies {
		if err := ctx.Err(); err != nil {
			return postings, err
		}

		url := fmt.Sprintf("https://apply.workable.com/api/v3/accounts/%s/jobs", company)
		// empty arrays, not nulls: the API rejects null facets
		payload := searchRequest{
			Location:   []string{},
			Department: []string{},
			Worktype:   []string{},
			Remote:     []string{},
		}

		var resp searchResponse
		if err := scraper.PostJSON(ctx, w.httpClient, url, payload, &resp); err != nil {
			logrus.Debugf("  Workable [%s]: %v", company, err)
			continue
		}

		for _, job := range resp.Results {
			if job.Shortcode == "" {
				continue
			}

			jobURL := fmt.Sprintf("https://apply.workable.com/%s/j/%s/", company, job.Shortcode)
			location := formatLocation(job.Location.City, job.Location.Country)

			postings = append(postings, scraper.NewPosting(
				job.Title,
				scraper.CompanyName(company),
				location,
				jobURL,
				ai.StripHTML(job.Description),
				"workable",
			))
		}

		time.Sleep(scraper.PerCompanyDelay)
	}

	logrus.Infof("  ✅ Workable: %d raw jobs", len(postings))
	return postings, nil
}

func formatLocation(city, country string) string {
	if city != "" {
		return strings.TrimSuffix(city+", "+country, ", ")
	}
	if country != "" {
		return country
	}
	return "Remote"
}
