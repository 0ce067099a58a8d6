// Package seeder bulk-imports movie records from a JSON export into the
// vector store, embedding each record on the way in.
package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cinedex/cinedex/internal/domain"
)

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Writer persists movies with their embeddings.
type Writer interface {
	Upsert(ctx context.Context, movies []domain.Movie) error
}

const defaultBatchSize = 50

// Seeder imports movie records.
type Seeder struct {
	embed     Embedder
	writer    Writer
	batchSize int
	logger    *zap.Logger
}

// New creates a seeder.
func New(embed Embedder, writer Writer, logger *zap.Logger) *Seeder {
	return &Seeder{
		embed:     embed,
		writer:    writer,
		batchSize: defaultBatchSize,
		logger:    logger,
	}
}

// SeedFile loads a JSON array of movies from path and imports it. Returns the
// number of records written.
func (s *Seeder) SeedFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var movies []domain.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return 0, fmt.Errorf("parse seed file: %w", err)
	}

	return s.Seed(ctx, movies)
}

// Seed embeds and writes movies in batches. Records without a title are
// skipped; records without an ID get a fresh UUID.
func (s *Seeder) Seed(ctx context.Context, movies []domain.Movie) (int, error) {
	batch := make([]domain.Movie, 0, s.batchSize)
	written := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.writer.Upsert(ctx, batch); err != nil {
			return fmt.Errorf("write batch: %w", err)
		}
		written += len(batch)
		batch = batch[:0]
		return nil
	}

	for _, m := range movies {
		if strings.TrimSpace(m.Title) == "" {
			s.logger.Warn("Skipping record without title", zap.String("id", m.ID))
			continue
		}
		if m.ID == "" {
			m.ID = uuid.NewString()
		}

		result, err := s.embed.Embed(ctx, EmbeddingText(m))
		if err != nil {
			return written, fmt.Errorf("embed %q: %w", m.Title, err)
		}
		m.Embedding = result.Embedding

		batch = append(batch, m)
		if len(batch) >= s.batchSize {
			if err := flush(); err != nil {
				return written, err
			}
		}
	}

	if err := flush(); err != nil {
		return written, err
	}

	s.logger.Info("Seed complete", zap.Int("written", written), zap.Int("input", len(movies)))
	return written, nil
}

// EmbeddingText builds the text a movie is embedded from: title, description,
// and genre tags.
func EmbeddingText(m domain.Movie) string {
	parts := []string{m.Title}
	if m.Description != "" {
		parts = append(parts, m.Description)
	}
	if len(m.Genres) > 0 {
		parts = append(parts, strings.Join(m.Genres, " "))
	}
	return strings.Join(parts, ". ")
}
