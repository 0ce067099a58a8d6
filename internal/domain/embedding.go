package domain

import "context"

// EmbeddingResult holds one embedding vector.
type EmbeddingResult struct {
	Embedding []float32
}

// Embedder vectorizes text into a fixed-dimensionality embedding.
//
// Implementations backed by a remote provider must degrade to a local
// deterministic fallback rather than returning an error; the error return
// exists for decorators (cache, instrumentation) that wrap a provider.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}
