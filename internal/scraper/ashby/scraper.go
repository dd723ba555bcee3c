// Ashby ATS scraper, backed by the public GraphQL job board API.

package ashby

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

const graphqlURL = "https://jobs.ashbyhq.com/api/non-user-graphql?op=ApiJobBoardWithTeams"

const graphqlQuery = `query ApiJobBoardWithTeams($organizationHostedJobsPageName: String!) {
    jobBoard: jobBoardWithTeams(organizationHostedJobsPageName: $organizationHostedJobsPageName) {
        jobPostings {
            id
            title
            locationName
            jobPostingState
            descriptionHtml
            externalLink
        }
    }
}`

type Ashby struct {
	companies  []string
	httpClient *http.Client
}

func New(companies []string) *Ashby {
	return &Ashby{
		companies:  companies,
		httpClient: scraper.NewHTTPClient(),
	}
}

func (a *Ashby) Name() string {
	return "Ashby"
}

type graphqlRequest struct {
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
	Query         string         `json:"query"`
}

type boardResponse struct {
	Data struct {
		JobBoard struct {
			JobPostings []struct {
				ID              string `json:"id"`
				Title           string `json:"title"`
				LocationName    string `json:"locationName"`
				JobPostingState string `json:"jobPostingState"`
				DescriptionHTML string `json:"descriptionHtml"`
				ExternalLink    string `json:"externalLink"`
			} `json:"jobPostings"`
		} `json:"jobBoard"`
	} `json:"data"`
}

func (a *Ashby) Scrape(ctx context.Context) ([]models.Posting, error) {
	logrus.Infof("🔷 Scraping Ashby (%d companies)...", len(a.companies))
	var postings []models.Posting

	for _, company := range a.companies {
		if err := ctx.Err(); err != nil {
			return postings, err
		}

		payload := graphqlRequest{
			OperationName: "ApiJobBoardWithTeams",
			Variables:     map[string]any{"organizationHostedJobsPageName": company},
			Query:         graphqlQuery,
		}

		var board boardResponse
		if err := scraper.PostJSON(ctx, a.httpClient, graphqlURL, payload, &board); err != nil {
			logrus.Debugf("  Ashby [%s]: %v", company, err)
			continue
		}

		for _, job := range board.Data.JobBoard.JobPostings {
			if job.JobPostingState != "Listed" {
				continue
			}

			url := job.ExternalLink
			if url == "" {
				url = fmt.Sprintf("https://jobs.ashbyhq.com/%s/%s", company, job.ID)
			}

			location := job.LocationName
			if location == "" {
				location = "Remote"
			}

			postings = append(postings, scraper.NewPosting(
				job.Title,
				scraper.CompanyName(company),
				location,
				url,
				ai.StripHTML(job.DescriptionHTML),
				"ashby",
			))
		}

		time.Sleep(scraper.PerCompanyDelay)
	}

	logrus.Infof("  ✅ Ashby: %d raw jobs", len(postings))
	return postings, nil
}
