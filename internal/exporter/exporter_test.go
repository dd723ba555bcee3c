package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"go-jobhunter-agent/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct{ postings []models.Posting }

func (s staticSource) JobsFoundOn(string) ([]models.Posting, error) {
	return s.postings, nil
}

func TestExportToday(t *testing.T) {
	source := staticSource{postings: []models.Posting{
		{
			Title:           "Junior Backend Engineer",
			Company:         "Acme",
			Country:         "Germany",
			URL:             "https://acme.io/jobs/1",
			VisaSponsorship: models.VisaSponsored,
			RelevanceScore:  4,
			Status:          models.StatusSaved,
			Source:          "greenhouse",
			Notes:           "Score:4 | AI:85% | entry level, has \"quotes\" and, commas",
		},
	}}

	path := filepath.Join(t.TempDir(), "jobs_export.csv")
	require.NoError(t, ExportToday(source, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, header, rows[0])
	assert.Equal(t, "Junior Backend Engineer", rows[1][0])
	assert.Equal(t, "sponsored", rows[1][3])
	assert.Equal(t, "4", rows[1][5])
	// csv escaping round-trips quotes and commas in the notes column
	assert.Equal(t, source.postings[0].Notes, rows[1][9])
}

func TestExportTodayEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs_export.csv")
	require.NoError(t, ExportToday(staticSource{}, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}
