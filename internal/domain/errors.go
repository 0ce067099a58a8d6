package domain

import "errors"

var (
	// ErrNotReady signals that the backing collection is unavailable.
	// This is the only search-path error surfaced to callers.
	ErrNotReady = errors.New("search backend not ready")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest signals a malformed search request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	// Absorbed by the local fallback embedding; never reaches the search caller.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrIntentProviderError signals an LLM classifier failure.
	// Absorbed by the rule-based fallback.
	ErrIntentProviderError = errors.New("intent provider error")
)
