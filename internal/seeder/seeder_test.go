package seeder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/cinedex/cinedex/internal/domain"
)

type mockEmbedder struct {
	vec   []float32
	err   error
	texts []string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.texts = append(m.texts, text)
	return domain.EmbeddingResult{Embedding: m.vec}, m.err
}

type mockWriter struct {
	batches [][]domain.Movie
	err     error
}

func (m *mockWriter) Upsert(_ context.Context, movies []domain.Movie) error {
	batch := make([]domain.Movie, len(movies))
	copy(batch, movies)
	m.batches = append(m.batches, batch)
	return m.err
}

func TestSeed_EmbedsAndWrites(t *testing.T) {
	embed := &mockEmbedder{vec: []float32{0.1, 0.2}}
	writer := &mockWriter{}
	s := New(embed, writer, zap.NewNop())

	written, err := s.Seed(context.Background(), []domain.Movie{
		{Title: "Alien", Description: "A crew meets a hostile organism", Genres: []string{"Horror", "Sci-Fi"}},
		{ID: "fixed-id", Title: "Heat"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != 2 {
		t.Fatalf("expected 2 written, got %d", written)
	}
	if len(writer.batches) != 1 || len(writer.batches[0]) != 2 {
		t.Fatalf("unexpected batching: %v", writer.batches)
	}

	first := writer.batches[0][0]
	if first.ID == "" {
		t.Fatal("expected generated id")
	}
	if len(first.Embedding) != 2 {
		t.Fatalf("expected embedding attached, got %v", first.Embedding)
	}
	if writer.batches[0][1].ID != "fixed-id" {
		t.Fatal("existing id must be preserved")
	}

	if !strings.Contains(embed.texts[0], "Alien") || !strings.Contains(embed.texts[0], "Horror Sci-Fi") {
		t.Fatalf("unexpected embedding text: %q", embed.texts[0])
	}
}

func TestSeed_SkipsUntitled(t *testing.T) {
	writer := &mockWriter{}
	s := New(&mockEmbedder{vec: []float32{0.1}}, writer, zap.NewNop())

	written, err := s.Seed(context.Background(), []domain.Movie{
		{Title: "  "},
		{Title: "Up"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != 1 {
		t.Fatalf("expected 1 written, got %d", written)
	}
}

func TestSeed_BatchesLargeInputs(t *testing.T) {
	writer := &mockWriter{}
	s := New(&mockEmbedder{vec: []float32{0.1}}, writer, zap.NewNop())
	s.batchSize = 2

	movies := []domain.Movie{{Title: "A"}, {Title: "B"}, {Title: "C"}}
	written, err := s.Seed(context.Background(), movies)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != 3 {
		t.Fatalf("expected 3 written, got %d", written)
	}
	if len(writer.batches) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(writer.batches))
	}
}

func TestSeed_WriterErrorStops(t *testing.T) {
	writer := &mockWriter{err: errors.New("upsert failed")}
	s := New(&mockEmbedder{vec: []float32{0.1}}, writer, zap.NewNop())

	written, err := s.Seed(context.Background(), []domain.Movie{{Title: "A"}})
	if err == nil {
		t.Fatal("expected error")
	}
	if written != 0 {
		t.Fatalf("expected 0 written, got %d", written)
	}
}

func TestSeedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movies.json")
	payload := `[{"title": "Arrival", "releaseYear": 2016, "genres": ["Sci-Fi", "Drama"]}]`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	writer := &mockWriter{}
	s := New(&mockEmbedder{vec: []float32{0.1}}, writer, zap.NewNop())

	written, err := s.SeedFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != 1 {
		t.Fatalf("expected 1 written, got %d", written)
	}
	if writer.batches[0][0].ReleaseYear != 2016 {
		t.Fatalf("unexpected parsed movie: %+v", writer.batches[0][0])
	}
}

func TestSeedFile_MissingFile(t *testing.T) {
	s := New(&mockEmbedder{}, &mockWriter{}, zap.NewNop())

	if _, err := s.SeedFile(context.Background(), "/nonexistent/movies.json"); err == nil {
		t.Fatal("expected error")
	}
}
