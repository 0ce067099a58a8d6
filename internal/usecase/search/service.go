// Package search orchestrates movie resolution: vector similarity when a
// query is present, filter-only browsing when it is not, and a full-text
// fallback when the vector path fails or comes back empty.
package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cinedex/cinedex/internal/domain"
	"github.com/cinedex/cinedex/internal/logger"
	"github.com/cinedex/cinedex/internal/metrics"
)

// Resolution modes, used as metric labels.
const (
	modeVector       = "vector"
	modeTextFallback = "text_fallback"
	modeBrowse       = "browse"
)

// Service handles movie search across vector, text-fallback, and browse modes.
type Service struct {
	repo  Repository
	embed Embedder
	ready Readiness
}

// New creates a search service.
func New(repo Repository, embed Embedder, ready Readiness) *Service {
	return &Service{repo: repo, embed: embed, ready: ready}
}

// Search resolves a request to a list of movies. The caller has already
// normalized the limit; a limit of zero short-circuits to an empty result.
// Movies carry a score only when the vector path produced them.
func (s *Service) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Movie, error) {
	if !s.ready.Ready() {
		return nil, domain.ErrNotReady
	}

	if req.Limit == 0 {
		return []domain.Movie{}, nil
	}

	cleaned, tokens := Preprocess(req.Query)
	if cleaned == "" {
		return s.browse(ctx, req)
	}

	movies, err := s.searchVector(ctx, req, cleaned)
	if err != nil {
		logger.FromContext(ctx).Warn("Vector search failed, falling back to text",
			zap.Error(err))
		return s.searchText(ctx, req, tokens)
	}
	if len(movies) == 0 {
		return s.searchText(ctx, req, tokens)
	}

	record(modeVector, len(movies))
	return movies, nil
}

// searchVector embeds the cleaned query and runs similarity search.
func (s *Service) searchVector(ctx context.Context, req domain.SearchRequest, cleaned string) ([]domain.Movie, error) {
	embResult, err := s.embed.Embed(ctx, cleaned)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	movies, err := s.repo.VectorSearch(ctx, embResult.Embedding, req)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	return movies, nil
}

// searchText matches query tokens against the full-text indexes. This is the
// last resort; its errors surface to the caller.
func (s *Service) searchText(ctx context.Context, req domain.SearchRequest, tokens []string) ([]domain.Movie, error) {
	if len(tokens) == 0 {
		// Nothing to match on; degrade to a filtered browse.
		return s.browse(ctx, req)
	}

	movies, err := s.repo.TextSearch(ctx, req, tokens)
	if err != nil {
		return nil, fmt.Errorf("text search: %w", err)
	}

	record(modeTextFallback, len(movies))
	return movies, nil
}

// browse returns movies matching the structured filters only.
func (s *Service) browse(ctx context.Context, req domain.SearchRequest) ([]domain.Movie, error) {
	movies, err := s.repo.Browse(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("browse: %w", err)
	}

	record(modeBrowse, len(movies))
	return movies, nil
}

func record(mode string, count int) {
	metrics.SearchRequestsTotal.WithLabelValues(mode).Inc()
	metrics.SearchResultCount.WithLabelValues(mode).Observe(float64(count))
}
