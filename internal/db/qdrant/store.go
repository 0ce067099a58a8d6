// Package qdrant wraps the official Qdrant Go client with the collection and
// point operations the catalog needs: ensure-collection, field indexes,
// similarity search, scroll, count, and batch upsert.
package qdrant

import (
	"context"
	"fmt"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

// Config holds connection settings for the Qdrant store.
type Config struct {
	Host   string
	Port   int // gRPC port, default 6334
	APIKey string
	UseTLS bool
}

// Store is a thin wrapper around the Qdrant gRPC client.
type Store struct {
	api    *qdrant.Client
	logger *zap.Logger
}

const defaultUpsertBatchSize = 200

// NewStore connects to Qdrant. The SDK opens lightweight gRPC connections, so
// no immediate round-trip happens here; call HealthCheck to verify liveness.
func NewStore(cfg Config, logger *zap.Logger) (*Store, error) {
	port := cfg.Port
	if port == 0 {
		port = 6334
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("create qdrant client: %w", err)
	}

	return &Store{api: client, logger: logger}, nil
}

// HealthCheck verifies the availability of the Qdrant service.
func (s *Store) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := s.api.HealthCheck(ctx); err != nil {
		return fmt.Errorf("qdrant health check: %w", err)
	}
	return nil
}

// CollectionExists reports whether the named collection exists.
func (s *Store) CollectionExists(ctx context.Context, name string) (bool, error) {
	exists, err := s.api.CollectionExists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("collection exists %s: %w", name, err)
	}
	return exists, nil
}

// EnsureCollection creates the collection if missing. Safe to call repeatedly.
func (s *Store) EnsureCollection(ctx context.Context, name string, vectorSize uint64) error {
	exists, err := s.CollectionExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = s.api.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("create collection %s: %w", name, err)
	}

	s.logger.Info("Created collection", zap.String("collection", name), zap.Uint64("vector_size", vectorSize))
	return nil
}

// EnsureFieldIndex creates a payload field index. Qdrant treats repeated
// creation of the same index as a no-op.
func (s *Store) EnsureFieldIndex(ctx context.Context, collection, field string, fieldType qdrant.FieldType) error {
	wait := true
	_, err := s.api.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: collection,
		FieldName:      field,
		FieldType:      &fieldType,
		Wait:           &wait,
	})
	if err != nil {
		return fmt.Errorf("create field index %s.%s: %w", collection, field, err)
	}
	return nil
}

// Search runs a nearest-neighbor query under an optional filter. Results below
// scoreThreshold are discarded server-side; a zero threshold disables it.
func (s *Store) Search(
	ctx context.Context, collection string,
	vector []float32, filter *qdrant.Filter, limit uint64, scoreThreshold float32,
) ([]*qdrant.ScoredPoint, error) {
	req := &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		Filter:         filter,
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if scoreThreshold > 0 {
		req.ScoreThreshold = &scoreThreshold
	}

	points, err := s.api.Query(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	return points, nil
}

// Scroll retrieves up to limit points matching the filter in store-native
// order. No similarity ranking is applied.
func (s *Store) Scroll(
	ctx context.Context, collection string,
	filter *qdrant.Filter, limit uint32,
) ([]*qdrant.RetrievedPoint, error) {
	points, err := s.api.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: collection,
		Filter:         filter,
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("scroll %s: %w", collection, err)
	}
	return points, nil
}

// Count returns the number of points matching the filter.
func (s *Store) Count(ctx context.Context, collection string, filter *qdrant.Filter) (uint64, error) {
	exact := true
	count, err := s.api.Count(ctx, &qdrant.CountPoints{
		CollectionName: collection,
		Filter:         filter,
		Exact:          &exact,
	})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return count, nil
}

// Upsert writes points in chunks, waiting for each chunk to persist.
func (s *Store) Upsert(ctx context.Context, collection string, points []*qdrant.PointStruct) error {
	for start := 0; start < len(points); start += defaultUpsertBatchSize {
		end := min(start+defaultUpsertBatchSize, len(points))

		wait := true
		_, err := s.api.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: collection,
			Points:         points[start:end],
			Wait:           &wait,
		})
		if err != nil {
			return fmt.Errorf("upsert %s [%d:%d]: %w", collection, start, end, err)
		}
		s.logger.Debug("Upserted batch",
			zap.String("collection", collection), zap.Int("from", start), zap.Int("to", end))
	}
	return nil
}

// Close shuts down the underlying gRPC connection.
func (s *Store) Close() error {
	if err := s.api.Close(); err != nil {
		return fmt.Errorf("close qdrant client: %w", err)
	}
	return nil
}
