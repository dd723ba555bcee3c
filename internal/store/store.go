package store

import (
	"database/sql"
	"fmt"
	"time"

	"go-jobhunter-agent/internal/models"

	_ "modernc.org/sqlite"
)

// Store is the persistent layer backing dedup and the AI verdict
// cache: jobs (url UNIQUE), ai_validation_cache (fingerprint keyed),
// discovered_domains, and daily_stats.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and ensures all
// tables exist. The caller should call Close when done.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single-process agent; one writer avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) init() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS jobs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			job_title TEXT,
			company TEXT,
			country TEXT,
			job_url TEXT UNIQUE,
			visa_sponsorship TEXT,
			hr_score REAL,
			relevance_score INTEGER DEFAULT 0,
			status TEXT DEFAULT 'found',
			date_found TEXT,
			date_applied TEXT,
			jd_content TEXT,
			notes TEXT,
			source TEXT DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS ai_validation_cache (
			job_hash TEXT PRIMARY KEY,
			decision TEXT NOT NULL,
			confidence INTEGER DEFAULT 0,
			reason TEXT DEFAULT '',
			validated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS discovered_domains (
			domain TEXT PRIMARY KEY,
			company_name TEXT DEFAULT '',
			career_url TEXT DEFAULT '',
			source_query TEXT DEFAULT '',
			is_ats INTEGER DEFAULT 0,
			last_crawled TEXT,
			job_count INTEGER DEFAULT 0,
			discovered_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS daily_stats (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT UNIQUE,
			total_found INTEGER DEFAULT 0,
			total_saved INTEGER DEFAULT 0,
			rule_rejected INTEGER DEFAULT 0,
			experience_rejected INTEGER DEFAULT 0,
			visa_rejected INTEGER DEFAULT 0,
			ai_rejected INTEGER DEFAULT 0
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// ---------------- Job operations ----------------

// JobExists reports whether a job URL is already recorded.
func (s *Store) JobExists(url string) bool {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM jobs WHERE job_url = ?`, url).Scan(&id)
	return err == nil
}

// SaveJob inserts a posting. Returns false when the URL is already
// present: the duplicate insert is a no-op signaled distinctly from a
// fresh insert, never an error.
func (s *Store) SaveJob(p models.Posting) (bool, error) {
	dateFound := p.DateFound
	if dateFound == "" {
		dateFound = time.Now().Format("2006-01-02 15:04:05")
	}

	res, err := s.db.Exec(`
		INSERT OR IGNORE INTO jobs (
			job_title, company, country, job_url,
			visa_sponsorship, hr_score, relevance_score, status,
			date_found, jd_content, notes, source
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Company, p.Country, p.URL,
		p.VisaSponsorship, p.HRScore, p.RelevanceScore, string(models.StatusSaved),
		dateFound, p.Description, p.Notes, p.Source,
	)
	if err != nil {
		return false, fmt.Errorf("save job: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("save job rows affected: %w", err)
	}
	return n > 0, nil
}

// UpdateJobStatus moves a job through its lifecycle by URL.
func (s *Store) UpdateJobStatus(url string, status models.Status) error {
	if status == models.StatusApplied {
		_, err := s.db.Exec(`UPDATE jobs SET status = ?, date_applied = ? WHERE job_url = ?`,
			string(status), time.Now().Format("2006-01-02 15:04:05"), url)
		return err
	}
	_, err := s.db.Exec(`UPDATE jobs SET status = ? WHERE job_url = ?`, string(status), url)
	return err
}

// JobsFoundOn returns the postings recorded on a given date
// (YYYY-MM-DD), newest first. Used by the exporter.
func (s *Store) JobsFoundOn(date string) ([]models.Posting, error) {
	rows, err := s.db.Query(`
		SELECT job_title, company, country, job_url, visa_sponsorship,
		       hr_score, relevance_score, status, date_found,
		       COALESCE(notes, ''), COALESCE(source, '')
		FROM jobs
		WHERE DATE(date_found) = ?
		ORDER BY date_found DESC`, date)
	if err != nil {
		return nil, fmt.Errorf("query jobs by date: %w", err)
	}
	defer rows.Close()

	var postings []models.Posting
	for rows.Next() {
		var p models.Posting
		var status string
		err := rows.Scan(
			&p.Title, &p.Company, &p.Country, &p.URL, &p.VisaSponsorship,
			&p.HRScore, &p.RelevanceScore, &status, &p.DateFound,
			&p.Notes, &p.Source,
		)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		p.Status = models.Status(status)
		postings = append(postings, p)
	}
	return postings, rows.Err()
}

// ---------------- AI verdict cache ----------------

// GetVerdict reads a cached verdict by fingerprint, (nil, nil) when
// there is none. Cached verdicts never expire.
func (s *Store) GetVerdict(hash string) (*models.AIVerdict, error) {
	var v models.AIVerdict
	err := s.db.QueryRow(
		`SELECT decision, confidence, reason FROM ai_validation_cache WHERE job_hash = ?`,
		hash,
	).Scan(&v.Decision, &v.Confidence, &v.Reason)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get verdict: %w", err)
	}
	return &v, nil
}

// PutVerdict upserts a verdict by fingerprint. Idempotent: a
// double-write never corrupts state.
func (s *Store) PutVerdict(hash string, v models.AIVerdict) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO ai_validation_cache (job_hash, decision, confidence, reason)
		VALUES (?, ?, ?, ?)`,
		hash, v.Decision, v.Confidence, v.Reason,
	)
	if err != nil {
		return fmt.Errorf("put verdict: %w", err)
	}
	return nil
}

// ---------------- Discovered domains ----------------

// DomainExists reports whether a domain has already been discovered.
func (s *Store) DomainExists(domain string) bool {
	var d string
	err := s.db.QueryRow(`SELECT domain FROM discovered_domains WHERE domain = ?`, domain).Scan(&d)
	return err == nil
}

// UpsertDomain records a newly discovered domain. Returns false when
// the domain was already known.
func (s *Store) UpsertDomain(rec models.DomainRecord) (bool, error) {
	res, err := s.db.Exec(`
		INSERT OR IGNORE INTO discovered_domains (domain, company_name, career_url, source_query, is_ats)
		VALUES (?, ?, ?, ?, ?)`,
		rec.Domain, rec.CompanyName, rec.CareerURL, rec.SourceQuery, boolToInt(rec.IsATS),
	)
	if err != nil {
		return false, fmt.Errorf("upsert domain: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// UncrawledDomains returns domains never crawled or crawled longest
// ago, up to limit.
func (s *Store) UncrawledDomains(limit int) ([]models.DomainRecord, error) {
	rows, err := s.db.Query(`
		SELECT domain, company_name, career_url, source_query, is_ats, COALESCE(last_crawled, ''), job_count
		FROM discovered_domains
		ORDER BY last_crawled IS NOT NULL, last_crawled ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query uncrawled domains: %w", err)
	}
	defer rows.Close()

	var recs []models.DomainRecord
	for rows.Next() {
		var rec models.DomainRecord
		var isATS int
		if err := rows.Scan(&rec.Domain, &rec.CompanyName, &rec.CareerURL, &rec.SourceQuery, &isATS, &rec.LastCrawled, &rec.JobCount); err != nil {
			return nil, fmt.Errorf("scan domain: %w", err)
		}
		rec.IsATS = isATS != 0
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// MarkCrawled stamps a domain with the crawl time and job yield.
func (s *Store) MarkCrawled(domain string, jobCount int) error {
	_, err := s.db.Exec(`
		UPDATE discovered_domains SET last_crawled = ?, job_count = ? WHERE domain = ?`,
		time.Now().Format("2006-01-02 15:04:05"), jobCount, domain,
	)
	return err
}

// ---------------- Daily stats ----------------

// BumpDailyStats accumulates cycle counters into today's row.
func (s *Store) BumpDailyStats(date string, found, saved, ruleRej, expRej, visaRej, aiRej int) error {
	_, err := s.db.Exec(`
		INSERT INTO daily_stats (date, total_found, total_saved, rule_rejected, experience_rejected, visa_rejected, ai_rejected)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (date) DO UPDATE SET
			total_found = total_found + excluded.total_found,
			total_saved = total_saved + excluded.total_saved,
			rule_rejected = rule_rejected + excluded.rule_rejected,
			experience_rejected = experience_rejected + excluded.experience_rejected,
			visa_rejected = visa_rejected + excluded.visa_rejected,
			ai_rejected = ai_rejected + excluded.ai_rejected`,
		date, found, saved, ruleRej, expRej, visaRej, aiRej,
	)
	if err != nil {
		return fmt.Errorf("bump daily stats: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
