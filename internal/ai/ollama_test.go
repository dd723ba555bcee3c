package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModelResponse(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantOK         bool
		wantDecision   string
		wantConfidence int
	}{
		{
			name:           "plain json",
			text:           `{"decision": "ACCEPT", "confidence": 85, "reason": "junior role"}`,
			wantOK:         true,
			wantDecision:   "ACCEPT",
			wantConfidence: 85,
		},
		{
			name:           "fenced block",
			text:           "Here is my analysis:\n```json\n{\"decision\": \"REJECT\", \"confidence\": 90, \"reason\": \"senior role\"}\n```\nHope that helps!",
			wantOK:         true,
			wantDecision:   "REJECT",
			wantConfidence: 90,
		},
		{
			name:           "fence without language tag",
			text:           "```\n{\"decision\": \"ACCEPT\", \"confidence\": 70, \"reason\": \"ok\"}\n```",
			wantOK:         true,
			wantDecision:   "ACCEPT",
			wantConfidence: 70,
		},
		{
			name:           "embedded object in prose",
			text:           `Sure! The verdict is {"decision": "accept", "confidence": 60, "reason": "fits"} based on the posting.`,
			wantOK:         true,
			wantDecision:   "ACCEPT",
			wantConfidence: 60,
		},
		{
			name:           "unknown decision normalized to reject",
			text:           `{"decision": "MAYBE", "confidence": 50, "reason": "unsure"}`,
			wantOK:         true,
			wantDecision:   "REJECT",
			wantConfidence: 50,
		},
		{
			name:           "quoted confidence coerced",
			text:           `{"decision": "ACCEPT", "confidence": "75", "reason": "ok"}`,
			wantOK:         true,
			wantDecision:   "ACCEPT",
			wantConfidence: 75,
		},
		{
			name:           "garbage confidence becomes zero",
			text:           `{"decision": "ACCEPT", "confidence": "high", "reason": "ok"}`,
			wantOK:         true,
			wantDecision:   "ACCEPT",
			wantConfidence: 0,
		},
		{
			name:   "no json at all",
			text:   "I think this job looks great for a junior engineer.",
			wantOK: false,
		},
		{
			name:   "json without decision",
			text:   `{"confidence": 80, "reason": "missing field"}`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, ok := parseModelResponse(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			require.NotNil(t, verdict)
			assert.Equal(t, tt.wantDecision, verdict.Decision)
			assert.Equal(t, tt.wantConfidence, verdict.Confidence)
		})
	}
}

func TestClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3:latest", req.Model)
		assert.False(t, req.Stream)
		assert.Contains(t, req.Prompt, "Backend Engineer")

		json.NewEncoder(w).Encode(ollamaResponse{
			Response: `{"decision": "ACCEPT", "confidence": 88, "reason": "entry level"}`,
		})
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "llama3:latest")
	verdict, err := client.Classify(context.Background(), "Backend Engineer", "Great junior role.")
	require.NoError(t, err)
	assert.Equal(t, "ACCEPT", verdict.Decision)
	assert.Equal(t, 88, verdict.Confidence)
}

func TestClassifyRetriesOnBadJSON(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			json.NewEncoder(w).Encode(ollamaResponse{Response: "not json at all"})
			return
		}
		json.NewEncoder(w).Encode(ollamaResponse{
			Response: `{"decision": "REJECT", "confidence": 95, "reason": "staff role"}`,
		})
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "llama3:latest")
	verdict, err := client.Classify(context.Background(), "Staff Engineer", "")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "REJECT", verdict.Decision)
}

func TestRetryable(t *testing.T) {
	refused := &url.Error{
		Op:  "Post",
		URL: "http://localhost:11434/api/generate",
		Err: &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)},
	}
	assert.False(t, retryable(refused), "refused connections are final")

	assert.True(t, retryable(errors.New("ollama returned status 500: model not loaded")))
	assert.True(t, retryable(errors.New("invalid JSON in model response")))
}

func TestClassifyBackendDown(t *testing.T) {
	// grab a port nothing listens on
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	client := NewOllamaClient(addr, "llama3:latest")
	verdict, err := client.Classify(context.Background(), "Engineer", "desc")
	assert.Error(t, err)
	assert.Nil(t, verdict)
	assert.True(t, errors.Is(err, syscall.ECONNREFUSED))
}

func TestClassifyExhaustedRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "llama3:latest")
	verdict, err := client.Classify(context.Background(), "Engineer", "desc")
	assert.Error(t, err)
	assert.Nil(t, verdict)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCleanDescriptionTruncatesRunes(t *testing.T) {
	clean := cleanDescription(strings.Repeat("é", maxJDChars+500))
	runes := []rune(clean)
	assert.Len(t, runes, maxJDChars)
	// truncation never leaves a split rune behind
	assert.Equal(t, 'é', runes[len(runes)-1])

	assert.Equal(t, "short", cleanDescription("short"))
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "plain text", StripHTML("plain text"))
	assert.Equal(t,
		"Build APIs. Apply now.",
		StripHTML("<div><p>Build APIs.</p> <b>Apply now.</b></div>"),
	)
}
