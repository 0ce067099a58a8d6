package search

import (
	"context"

	"github.com/cinedex/cinedex/internal/domain"
)

// Repository defines the storage contract for search operations.
type Repository interface {
	VectorSearch(ctx context.Context, vector []float32, req domain.SearchRequest) ([]domain.Movie, error)
	TextSearch(ctx context.Context, req domain.SearchRequest, tokens []string) ([]domain.Movie, error)
	Browse(ctx context.Context, req domain.SearchRequest) ([]domain.Movie, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Readiness reports whether the collection is provisioned and reachable.
type Readiness interface {
	Ready() bool
}
