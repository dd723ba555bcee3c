package parsing

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, html)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func jd(sentence string) string {
	return strings.Repeat(sentence+" ", 15)
}

func TestParseJobPage(t *testing.T) {
	srv := serve(t, `<html>
		<head>
			<title>ignored</title>
			<meta property="og:site_name" content="Acme">
			<script>trackEverything();</script>
		</head>
		<body>
			<nav>Home Careers About</nav>
			<h1 class="job-title">Junior Backend Engineer</h1>
			<div class="job-location">Berlin, Germany</div>
			<div class="job-description">`+jd("Build Go services for our platform.")+`</div>
			<footer>legal stuff</footer>
		</body>
	</html>`)

	p := NewPageParser().ParseJobPage(srv.URL + "/jobs/1")
	require.NotNil(t, p)
	assert.Equal(t, "Junior Backend Engineer", p.Title)
	assert.Equal(t, "Acme", p.Company)
	assert.Equal(t, "Berlin, Germany", p.Country)
	assert.Equal(t, "web_discovery", p.Source)
	assert.Contains(t, p.Description, "Build Go services")
	// stripped elements never leak into the JD
	assert.NotContains(t, p.Description, "trackEverything")
	assert.NotContains(t, p.Description, "legal stuff")
}

func TestParseJobPageFallbacks(t *testing.T) {
	srv := serve(t, `<html>
		<head><title>Graduate Software Engineer - Acme Corp</title></head>
		<body><p>`+jd("Write software with a great team of mentors.")+`</p></body>
	</html>`)

	p := NewPageParser().ParseJobPage(srv.URL)
	require.NotNil(t, p)
	// page <title> split on the separator, body text as JD
	assert.Equal(t, "Graduate Software Engineer", p.Title)
	assert.Equal(t, "Unknown", p.Country)
	assert.Contains(t, p.Description, "Write software")
}

func TestParseJobPageRejectsNonPostings(t *testing.T) {
	srv := serve(t, `<html>
		<head><title>Our Company Blog Post</title></head>
		<body><p>Short page.</p></body>
	</html>`)

	assert.Nil(t, NewPageParser().ParseJobPage(srv.URL))

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer down.Close()
	assert.Nil(t, NewPageParser().ParseJobPage(down.URL))
}

func TestFetchFullJD(t *testing.T) {
	srv := serve(t, `<html><body>
		<div class="posting-description">`+jd("Full description with every detail spelled out.")+`</div>
	</body></html>`)

	text := NewPageParser().FetchFullJD(srv.URL)
	assert.Contains(t, text, "Full description")

	assert.Empty(t, NewPageParser().FetchFullJD(""))
}

func TestCompanyFromDomainFallback(t *testing.T) {
	srv := serve(t, `<html>
		<body>
			<h1>Platform Engineer Intern</h1>
			<div class="job-description">`+jd("Keep the platform healthy and observable.")+`</div>
		</body>
	</html>`)

	p := NewPageParser().ParseJobPage(srv.URL + "/careers/42")
	require.NotNil(t, p)
	// httptest serves from 127.0.0.1, so the fallback title-cases the host
	assert.Equal(t, "127", p.Company)
}
