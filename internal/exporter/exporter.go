// Exports today's saved jobs to a CSV snapshot.

package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"go-jobhunter-agent/internal/models"

	"github.com/sirupsen/logrus"
)

// JobSource provides the day's saved postings.
type JobSource interface {
	JobsFoundOn(date string) ([]models.Posting, error)
}

var header = []string{
	"Job Title", "Company", "Country", "Visa",
	"HR Score", "Relevance Score", "Status",
	"Date Found", "Source", "Notes", "URL",
}

// ExportToday writes the postings found today to path, overwriting any
// previous snapshot for the day.
func ExportToday(source JobSource, path string) error {
	today := time.Now().Format("2006-01-02")
	postings, err := source.JobsFoundOn(today)
	if err != nil {
		return fmt.Errorf("load today's jobs: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, p := range postings {
		record := []string{
			p.Title, p.Company, p.Country, p.VisaSponsorship,
			strconv.Itoa(p.HRScore), strconv.Itoa(p.RelevanceScore), string(p.Status),
			p.DateFound, p.Source, p.Notes, p.URL,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}

	logrus.Infof("📊 CSV exported → %s (%d jobs)", path, len(postings))
	return nil
}
