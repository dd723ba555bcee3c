package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go-jobhunter-agent/internal/models"

	"github.com/sirupsen/logrus"
)

const (
	requestTimeout = 10 * time.Second
	maxRetries     = 1 // one retry after the initial attempt
)

type ollamaClient struct {
	url        string
	model      string
	httpClient *http.Client
}

// NewOllamaClient creates a client for a local Ollama generate endpoint.
func NewOllamaClient(url, model string) Client {
	return &ollamaClient{
		url:        url,
		model:      model,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// Classify sends the classification prompt to Ollama and parses the
// verdict out of its free-text reply.
func (c *ollamaClient) Classify(ctx context.Context, title, description string) (*models.AIVerdict, error) {
	prompt := buildPrompt(title, cleanDescription(description))

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		raw, err := c.generate(ctx, prompt)
		if err != nil {
			lastErr = err
			if !retryable(err) {
				logrus.Warnf("Ollama unreachable: %v", err)
				return nil, err
			}
			logrus.Warnf("Ollama error (attempt %d): %v", attempt+1, err)
			continue
		}

		verdict, ok := parseModelResponse(raw)
		if !ok {
			lastErr = fmt.Errorf("invalid JSON in model response: %.100s", raw)
			logrus.Warnf("Ollama invalid JSON (attempt %d): %.100s", attempt+1, raw)
			continue
		}

		return verdict, nil
	}

	return nil, lastErr
}

func (c *ollamaClient) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := ollamaRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: 0.1, // low temperature for consistency
			NumPredict:  200,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var ollamaResp ollamaResponse
	if err := json.Unmarshal(bodyBytes, &ollamaResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return ollamaResp.Response, nil
}

// retryable reports whether a generate failure is worth a second
// attempt. Timeouts and bad responses may be transient; a refused
// connection means the backend is down and will not recover within
// one posting.
func retryable(err error) bool {
	return !errors.Is(err, syscall.ECONNREFUSED)
}

var (
	fencedBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*\n?(.*?)\n?\\s*```")
	braceRegex       = regexp.MustCompile(`(?s)\{.*\}`)
)

type rawVerdict struct {
	Decision   string `json:"decision"`
	Confidence any    `json:"confidence"` // models emit numbers or quoted numbers
	Reason     string `json:"reason"`
}

func coerceConfidence(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return 0
}

// parseModelResponse extracts a verdict JSON object from free text.
// Three strategies in order: direct parse, fenced code block, first
// balanced-brace substring. Any decision other than ACCEPT/REJECT is
// normalized to REJECT.
func parseModelResponse(text string) (*models.AIVerdict, bool) {
	text = strings.TrimSpace(text)

	candidates := []string{text}
	if m := fencedBlockRegex.FindStringSubmatch(text); m != nil {
		candidates = append(candidates, strings.TrimSpace(m[1]))
	}
	if m := braceRegex.FindString(text); m != "" {
		candidates = append(candidates, m)
	}

	for _, candidate := range candidates {
		var raw rawVerdict
		if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
			continue
		}
		if raw.Decision == "" {
			continue
		}

		decision := strings.ToUpper(strings.TrimSpace(raw.Decision))
		if decision != "ACCEPT" && decision != "REJECT" {
			decision = "REJECT"
		}

		return &models.AIVerdict{
			Decision:   decision,
			Confidence: coerceConfidence(raw.Confidence),
			Reason:     raw.Reason,
		}, true
	}

	return nil, false
}
