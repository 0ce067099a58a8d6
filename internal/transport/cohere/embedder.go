// Package cohere implements the embedding provider adapter: a remote
// embeddings API with retry/backoff and a deterministic local fallback.
//
// The adapter never propagates a transport error to the caller. When the
// remote provider is unreachable, rate limited past the retry budget, or not
// configured at all, Embed degrades silently to the local hash embedding.
package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cinedex/cinedex/internal/domain"
	"github.com/cinedex/cinedex/internal/metrics"
)

// Config holds the embedding provider settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Dimensions  int
	InputType   string // "search_query" or "search_document"
	MaxAttempts int
	Logger      *zap.Logger
}

// Embedder calls the remote embeddings API, falling back to LocalEmbedding.
type Embedder struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	dimensions  int
	inputType   string
	maxAttempts int
	logger      *zap.Logger

	// sleep is swappable in tests to avoid real backoff delays.
	sleep func(ctx context.Context, d time.Duration) error
}

var _ domain.Embedder = (*Embedder)(nil)

// NewEmbedder creates the embedding adapter.
func NewEmbedder(cfg *Config) *Embedder {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Embedder{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		dimensions:  cfg.Dimensions,
		inputType:   cfg.InputType,
		maxAttempts: maxAttempts,
		logger:      logger,
		sleep:       sleepCtx,
	}
}

// embedRequest is the provider wire format.
type embedRequest struct {
	Texts          []string `json:"texts"`
	Model          string   `json:"model"`
	InputType      string   `json:"input_type"`
	EmbeddingTypes []string `json:"embedding_types"`
}

// embedResponse is the provider wire format.
type embedResponse struct {
	Embeddings struct {
		Float [][]float32 `json:"float"`
	} `json:"embeddings"`
}

// Embed returns a vector of the configured dimensionality. The remote provider
// is attempted first; any failure degrades to the deterministic local
// embedding. The error return is always nil.
func (e *Embedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if e.apiKey == "" {
		metrics.EmbeddingFallbackTotal.WithLabelValues("no_credentials").Inc()
		return domain.EmbeddingResult{Embedding: LocalEmbedding(text, e.dimensions)}, nil
	}

	vec, err := e.embedRemote(ctx, text)
	if err != nil {
		e.logger.Warn("Remote embedding failed, using local fallback",
			zap.String("model", e.model), zap.Error(err))
		metrics.EmbeddingFallbackTotal.WithLabelValues(fallbackReason(err)).Inc()
		return domain.EmbeddingResult{Embedding: LocalEmbedding(text, e.dimensions)}, nil
	}

	return domain.EmbeddingResult{Embedding: vec}, nil
}

// embedRemote runs the retry loop around one remote embedding call.
func (e *Embedder) embedRemote(ctx context.Context, text string) ([]float32, error) {
	var lastErr error
	rateLimitDelay := rateLimitBaseDelay

	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		vec, err := e.doRequest(ctx, text)
		if err == nil {
			metrics.EmbeddingRequestsTotal.WithLabelValues(e.model, "success").Inc()
			return vec, nil
		}

		metrics.EmbeddingRequestsTotal.WithLabelValues(e.model, "error").Inc()
		lastErr = err

		var delay time.Duration
		switch classify(err) {
		case retryRateLimited:
			delay = rateLimitDelay
			rateLimitDelay *= 2
		case retryServerError:
			delay = serverErrorDelay
		default:
			// 4xx other than 429: not worth retrying.
			return nil, err
		}

		if attempt == e.maxAttempts {
			break
		}

		e.logger.Debug("Retrying embedding request",
			zap.Int("attempt", attempt), zap.Duration("delay", delay), zap.Error(err))
		if err := e.sleep(ctx, delay); err != nil {
			return nil, fmt.Errorf("retry aborted: %w", err)
		}
	}

	return nil, fmt.Errorf("retries exhausted after %d attempts: %w", e.maxAttempts, lastErr)
}

// doRequest performs a single embeddings API round trip.
func (e *Embedder) doRequest(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embedRequest{
		Texts:          []string{text},
		Model:          e.model,
		InputType:      e.inputType,
		EmbeddingTypes: []string{"float"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/embed", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, &transportError{err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.EmbeddingRequestDuration.WithLabelValues(e.model).Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &statusError{code: resp.StatusCode, detail: string(detail)}
	}

	var parsed embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", domain.ErrEmbeddingProviderError)
	}
	if len(parsed.Embeddings.Float) == 0 || len(parsed.Embeddings.Float[0]) == 0 {
		return nil, fmt.Errorf("empty embedding response: %w", domain.ErrEmbeddingProviderError)
	}
	if got := len(parsed.Embeddings.Float[0]); got != e.dimensions {
		return nil, fmt.Errorf("embedding has %d dimensions, want %d: %w",
			got, e.dimensions, domain.ErrEmbeddingProviderError)
	}

	return parsed.Embeddings.Float[0], nil
}

// sleepCtx waits for d or until ctx is canceled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
