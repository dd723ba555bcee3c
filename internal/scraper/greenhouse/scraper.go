// Greenhouse ATS scraper, backed by the public boards API.

package greenhouse

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go-jobhunter-agent/internal/ai"
	"go-jobhunter-agent/internal/models"
	"go-jobhunter-agent/internal/scraper"

	"github.com/sirupsen/logrus"
)

type Greenhouse struct {
	companies  []string
	httpClient *http.Client
}

func New(companies []string) *Greenhouse {
	return &Greenhouse{
		companies:  companies,
		httpClient: scraper.NewHTTPClient(),
	}
}

func (g *Greenhouse) Name() string {
	return "Greenhouse"
}

type boardResponse struct {
	Jobs []struct {
		Title       string `json:"title"`
		Content     string `json:"content"`
		AbsoluteURL string `json:"absolute_url"`
		Location    struct {
			Name string `json:"name"`
		} `json:"location"`
	} `json:"jobs"`
}

func (g *Greenhouse) Scrape(ctx context.Context) ([]models.Posting, error) {
	logrus.Infof("🌿 Scraping Greenhouse (%d companies)...", len(g.companies))
	var postings []models.Posting

	for _, company := range g.companies {
		if err := ctx.Err(); err != nil {
			return postings, err
		}

		url := fmt.Sprintf("https://boards-api.greenhouse.io/v1/boards/%s/jobs?content=true", company)
		var board boardResponse
		if err := scraper.GetJSON(ctx, g.httpClient, url, &board); err != nil {
			logrus.Debugf("  Greenhouse [%s]: %v", company, err)
			continue
		}

		for _, job := range board.Jobs {
			if job.AbsoluteURL == "" {
				continue
			}

			location := job.Location.Name
			if location == "" {
				location = "Remote"
			}

			postings = append(postings, scraper.NewPosting(
				job.Title,
				scraper.CompanyName(company),
				location,
				job.AbsoluteURL,
				ai.StripHTML(job.Content),
				"greenhouse",
			))
		}

		time.Sleep(scraper.PerCompanyDelay)
	}

	logrus.Infof("  ✅ Greenhouse: %d raw jobs", len(postings))
	return postings, nil
}
