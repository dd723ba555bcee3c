package ai

import (
	"context"
	"fmt"
	"strings"

	"go-jobhunter-agent/internal/models"

	"github.com/PuerkitoBio/goquery"
)

// maxJDChars bounds how much JD text goes into the prompt
const maxJDChars = 2000

// Client is the interface for AI backends that classify a posting.
type Client interface {
	// Classify asks the model for a strict ACCEPT/REJECT verdict on a
	// (title, description) pair. Returns an error when the backend is
	// unreachable or never produces a parseable verdict.
	Classify(ctx context.Context, title, description string) (*models.AIVerdict, error)
}

// buildPrompt creates the classification instruction for the model.
// The candidate profile is fixed: the agent hunts entry-level software
// roles for a recent CS graduate.
func buildPrompt(title, description string) string {
	if description == "" {
		description = "No description available."
	}
	return fmt.Sprintf(`You are a strict hiring classifier.

The candidate is a **2025 graduate (B.Tech CSE — AI & ML specialization)**.

Classify whether this job is suitable for:
- Internship
- Fresher
- Entry-level (0–2 years)

Return ONLY valid JSON — no explanation, no markdown, no extra text:

{"decision": "ACCEPT" or "REJECT", "confidence": 0-100, "reason": "short explanation"}

RULES:
- ACCEPT internships aligned with software engineering, backend, AI/ML, full-stack, data engineering
- ACCEPT graduate/junior/entry-level roles (0-2 years experience)
- REJECT senior/lead/staff/principal/architect/manager/director roles
- REJECT roles requiring 3+ years of experience
- REJECT managerial, architecture-heavy, or executive roles
- If unclear, lean towards ACCEPT for entry-level-sounding roles

Job Title:
%s

Job Description (first 2000 chars):
%s`, strings.TrimSpace(title), description)
}

// StripHTML flattens markup in JD text to plain words. ATS APIs return
// HTML descriptions more often than not.
func StripHTML(text string) string {
	if text == "" || !strings.Contains(text, "<") || !strings.Contains(text, ">") {
		return text
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func cleanDescription(description string) string {
	clean := StripHTML(description)
	if runes := []rune(clean); len(runes) > maxJDChars {
		clean = string(runes[:maxJDChars])
	}
	return clean
}
