// Package movie is the repository over the movies collection in Qdrant. It
// owns the payload schema and the translation of structured search filters
// into store-level conditions.
package movie

import (
	"context"
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"github.com/cinedex/cinedex/internal/domain"
)

// vectorStore is the slice of the Qdrant store this repository consumes.
type vectorStore interface {
	Search(ctx context.Context, collection string, vector []float32, filter *qdrant.Filter, limit uint64, scoreThreshold float32) ([]*qdrant.ScoredPoint, error)
	Scroll(ctx context.Context, collection string, filter *qdrant.Filter, limit uint32) ([]*qdrant.RetrievedPoint, error)
	Count(ctx context.Context, collection string, filter *qdrant.Filter) (uint64, error)
	Upsert(ctx context.Context, collection string, points []*qdrant.PointStruct) error
}

// Repository reads and writes movie records.
type Repository struct {
	store          vectorStore
	collection     string
	scoreThreshold float32
	logger         *zap.Logger
}

// NewRepository creates a movie repository bound to one collection.
func NewRepository(store vectorStore, collection string, scoreThreshold float32, logger *zap.Logger) *Repository {
	return &Repository{
		store:          store,
		collection:     collection,
		scoreThreshold: scoreThreshold,
		logger:         logger,
	}
}

// VectorSearch runs a similarity query under the request's structured filters.
// Results below the configured score threshold are discarded by the store, and
// each returned movie carries its cosine score.
func (r *Repository) VectorSearch(ctx context.Context, vector []float32, req domain.SearchRequest) ([]domain.Movie, error) {
	points, err := r.store.Search(ctx, r.collection, vector, buildFilter(req), uint64(req.Limit), r.scoreThreshold)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	movies := make([]domain.Movie, 0, len(points))
	for _, p := range points {
		movies = append(movies, movieFromScored(p))
	}
	return movies, nil
}

// TextSearch matches query tokens against title and description full-text
// indexes, still honoring the structured filters. No scores are produced.
func (r *Repository) TextSearch(ctx context.Context, req domain.SearchRequest, tokens []string) ([]domain.Movie, error) {
	points, err := r.store.Scroll(ctx, r.collection, buildTextFilter(req, tokens), uint32(req.Limit))
	if err != nil {
		return nil, fmt.Errorf("text search: %w", err)
	}
	return moviesFromRetrieved(points), nil
}

// Browse returns movies matching only the structured filters, in store-native
// order.
func (r *Repository) Browse(ctx context.Context, req domain.SearchRequest) ([]domain.Movie, error) {
	points, err := r.store.Scroll(ctx, r.collection, buildFilter(req), uint32(req.Limit))
	if err != nil {
		return nil, fmt.Errorf("browse: %w", err)
	}
	return moviesFromRetrieved(points), nil
}

// FindAll lists up to limit movies with no filter at all.
func (r *Repository) FindAll(ctx context.Context, limit int) ([]domain.Movie, error) {
	points, err := r.store.Scroll(ctx, r.collection, nil, uint32(limit))
	if err != nil {
		return nil, fmt.Errorf("find all: %w", err)
	}
	return moviesFromRetrieved(points), nil
}

// Count returns the total number of stored movies.
func (r *Repository) Count(ctx context.Context) (uint64, error) {
	count, err := r.store.Count(ctx, r.collection, nil)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return count, nil
}

// Upsert writes movies with their embeddings. Every movie must carry an ID
// and a vector of the collection's dimensionality.
func (r *Repository) Upsert(ctx context.Context, movies []domain.Movie) error {
	points := make([]*qdrant.PointStruct, 0, len(movies))
	for _, m := range movies {
		if m.ID == "" {
			return fmt.Errorf("upsert: movie %q has no id: %w", m.Title, domain.ErrInvalidRequest)
		}
		if len(m.Embedding) == 0 {
			return fmt.Errorf("upsert: movie %q has no embedding: %w", m.Title, domain.ErrInvalidRequest)
		}
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(m.ID),
			Vectors: qdrant.NewVectors(m.Embedding...),
			Payload: qdrant.NewValueMap(payloadFromMovie(m)),
		})
	}

	if err := r.store.Upsert(ctx, r.collection, points); err != nil {
		return fmt.Errorf("upsert: %w", err)
	}

	r.logger.Info("Upserted movies", zap.Int("count", len(points)))
	return nil
}

func moviesFromRetrieved(points []*qdrant.RetrievedPoint) []domain.Movie {
	movies := make([]domain.Movie, 0, len(points))
	for _, p := range points {
		movies = append(movies, movieFromRetrieved(p))
	}
	return movies
}
