// Lever ATS scraper, backed by the public postings API.

package lever

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

type Lever struct {
	companies  []string
	httpClient *http.Client
}

func New(companies []string) *Lever {
	return &Lever{
		companies:  companies,
		httpClient: scraper.NewHTTPClient(),
	}
}

func (l *Lever) Name() string {
	return "Lever"
}

type leverPosting struct {
	Text            string `json:"text"`
	HostedURL       string `json:"hostedUrl"`
	DescriptionBody struct {
		Body []struct {
			Text string `json:"text"`
		} `json:"body"`
	} `json:"descriptionBody"`
	DescriptionPlain string `json:"descriptionPlain"`
	Description      string `json:"description"`
	Categories       struct {
		Location string `json:"location"`
	} `json:"categories"`
}

func (l *Lever) Scrape(ctx context.Context) ([]models.Posting, error) {
	logrus.Infof("⚙️ Scraping Lever (%d companies)...", len(l.companies))
	var postings []models.Posting

	for _, company := range l.companies {
		if err := ctx.Err(); err != nil {
			return postings, err
		}

		url := fmt.Sprintf("https://api.lever.co/v0/postings/%s?mode=json", company)
		var board []leverPosting
		if err := scraper.GetJSON(ctx, l.httpClient, url, &board); err != nil {
			logrus.Debugf("  Lever [%s]: %v", company, err)
			continue
		}

		for _, job := range board {
			if job.HostedURL == "" {
				continue
			}

			// Prefer the structured description blocks, fall back to
			// the flat fields
			var parts []string
			for _, block := range job.DescriptionBody.Body {
				parts = append(parts, block.Text)
			}
			desc := strings.Join(parts, " ")
			if desc == "" {
				desc = job.DescriptionPlain
			}
			if desc == "" {
				// last resort is the HTML field
				desc = ai.StripHTML(job.Description)
			}

			location := job.Categories.Location
			if location == "" {
				location = "Remote"
			}

			postings = append(postings, scraper.NewPosting(
				job.Text,
				scraper.CompanyName(company),
				location,
				job.HostedURL,
				desc,
				"lever",
			))
		}

		time.Sleep(scraper.PerCompanyDelay)
	}

	logrus.Infof("  ✅ Lever: %d raw jobs", len(postings))
	return postings, nil
}
