// Package catalog serves whole-collection reads: listing, the distinct genre
// set, and summary statistics.
package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/cinedex/cinedex/internal/domain"
)

// sampleSize bounds the scroll used for genre and statistics aggregation so
// these endpoints stay cheap on large catalogs.
const sampleSize = 1000

// Service handles catalog-wide reads.
type Service struct {
	repo  Repository
	ready Readiness
}

// New creates a catalog service.
func New(repo Repository, ready Readiness) *Service {
	return &Service{repo: repo, ready: ready}
}

// FindAll lists up to limit movies in store-native order, together with the
// total catalog size.
func (s *Service) FindAll(ctx context.Context, limit int) ([]domain.Movie, uint64, error) {
	if !s.ready.Ready() {
		return nil, 0, domain.ErrNotReady
	}

	movies, err := s.repo.FindAll(ctx, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("find all: %w", err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	return movies, total, nil
}

// Genres returns the distinct genre tags present in the catalog, sorted.
func (s *Service) Genres(ctx context.Context) ([]string, error) {
	if !s.ready.Ready() {
		return nil, domain.ErrNotReady
	}

	movies, err := s.repo.FindAll(ctx, sampleSize)
	if err != nil {
		return nil, fmt.Errorf("scan genres: %w", err)
	}

	seen := map[string]struct{}{}
	for _, m := range movies {
		for _, g := range m.Genres {
			seen[g] = struct{}{}
		}
	}

	genres := make([]string, 0, len(seen))
	for g := range seen {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres, nil
}

// Statistics aggregates catalog summary numbers.
func (s *Service) Statistics(ctx context.Context) (domain.CatalogStatistics, error) {
	if !s.ready.Ready() {
		return domain.CatalogStatistics{}, domain.ErrNotReady
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return domain.CatalogStatistics{}, fmt.Errorf("count: %w", err)
	}

	movies, err := s.repo.FindAll(ctx, sampleSize)
	if err != nil {
		return domain.CatalogStatistics{}, fmt.Errorf("scan statistics: %w", err)
	}

	stats := domain.CatalogStatistics{TotalMovies: total}

	genres := map[string]struct{}{}
	var ratingSum float64
	var rated int
	for _, m := range movies {
		for _, g := range m.Genres {
			genres[g] = struct{}{}
		}
		if m.Rating > 0 {
			ratingSum += m.Rating
			rated++
		}
		if m.ReleaseYear > 0 {
			if stats.EarliestYear == 0 || m.ReleaseYear < stats.EarliestYear {
				stats.EarliestYear = m.ReleaseYear
			}
			if m.ReleaseYear > stats.LatestYear {
				stats.LatestYear = m.ReleaseYear
			}
		}
	}

	stats.DistinctGenres = len(genres)
	if rated > 0 {
		stats.AverageRating = ratingSum / float64(rated)
	}
	return stats, nil
}
