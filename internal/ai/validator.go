package ai

import (
	"context"

	"go-jobhunter-agent/internal/fingerprint"
	"go-jobhunter-agent/internal/models"

	"github.com/sirupsen/logrus"
)

// VerdictCache is the durable verdict store keyed by content
// fingerprint. Get returns (nil, nil) on a miss.
type VerdictCache interface {
	GetVerdict(hash string) (*models.AIVerdict, error)
	PutVerdict(hash string, v models.AIVerdict) error
}

// Validator is the final filter stage: a model-backed classifier with
// a read-through verdict cache and a permissive fallback.
type Validator struct {
	client Client
	cache  VerdictCache
}

func NewValidator(client Client, cache VerdictCache) *Validator {
	return &Validator{client: client, cache: cache}
}

// Validate classifies one posting. jobHash may be empty, in which case
// it is derived from the inputs.
//
// Cache hits never touch the model. A successful model verdict is
// persisted. When the backend is down or unparseable after retries the
// result is a fixed low-confidence ACCEPT so an AI outage degrades to
// permissive behavior instead of dropping every posting; the fallback
// is never cached, leaving the fingerprint free for a real verdict on
// a later cycle.
func (v *Validator) Validate(ctx context.Context, title, description, jobHash string) models.AIVerdict {
	if jobHash == "" {
		jobHash = fingerprint.JobHash(title, description)
	}

	cached, err := v.cache.GetVerdict(jobHash)
	if err != nil {
		logrus.Warnf("Verdict cache read failed: %v", err)
	}
	if cached != nil {
		cached.Source = models.VerdictFromCache
		return *cached
	}

	verdict, err := v.client.Classify(ctx, title, description)
	if err == nil && verdict != nil {
		verdict.Source = models.VerdictFromModel
		if err := v.cache.PutVerdict(jobHash, *verdict); err != nil {
			logrus.Warnf("Verdict cache write failed: %v", err)
		}
		return *verdict
	}

	logrus.Warn("⚠️ Ollama unavailable — using fallback (ACCEPT with low confidence)")
	return models.AIVerdict{
		Decision:   "ACCEPT",
		Confidence: 30,
		Reason:     "Ollama offline — fallback accept",
		Source:     models.VerdictFromFallback,
	}
}
