package models

// Posting status lifecycle tags
type Status string

const (
	StatusFound   Status = "found"
	StatusSaved   Status = "saved"
	StatusApplied Status = "applied"
)

// Visa sponsorship classification assigned by the pipeline
const (
	VisaSponsored   = "sponsored"
	VisaNotRequired = "not_required"
	VisaUnknown     = "unknown"
)

// Posting is a raw or pipeline-enriched job record.
// URL, once non-empty, is the dedup identity: two postings with the
// same URL are the same entity.
type Posting struct {
	Title   string `json:"job_title"`
	Company string `json:"company"`
	Country string `json:"country"`
	URL     string `json:"job_url"`
	// JD text, may be empty or truncated until enrichment
	Description string `json:"jd_content"`
	Source      string `json:"source"`
	DateFound   string `json:"date_found"`
	Status      Status `json:"status"`
	HRScore     int    `json:"hr_score"`

	// Fields written by the filter pipeline. The orchestrator owns these;
	// it never mutates the identity fields above.
	RelevanceScore  int    `json:"relevance_score"`
	VisaSponsorship string `json:"visa_sponsorship"`
	Notes           string `json:"notes"`
}

// Valid reports whether the posting carries enough content to be
// worth filtering. Records with no title and a sub-100-char JD are
// discarded before the pipeline runs.
func (p Posting) Valid() bool {
	return p.Title != "" || len(p.Description) >= 100
}

// VerdictSource tags where an AIVerdict came from
const (
	VerdictFromCache    = "cache"
	VerdictFromModel    = "model"
	VerdictFromFallback = "fallback"
)

// AIVerdict is the durable decision artifact produced by the AI
// validator, keyed by the content fingerprint of (title, JD prefix).
type AIVerdict struct {
	Decision   string `json:"decision"` // ACCEPT or REJECT
	Confidence int    `json:"confidence"`
	Reason     string `json:"reason"`
	Source     string `json:"source"` // cache, model, or fallback
}

// DomainRecord is a company domain discovered by web search,
// tracked for career-page crawling.
type DomainRecord struct {
	Domain      string `json:"domain"`
	CompanyName string `json:"company_name"`
	CareerURL   string `json:"career_url"`
	SourceQuery string `json:"source_query"`
	IsATS       bool   `json:"is_ats"`
	LastCrawled string `json:"last_crawled"`
	JobCount    int    `json:"job_count"`
}
