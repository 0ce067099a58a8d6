// Package collection owns the movies collection schema: the collection itself
// and the payload field indexes the filter builder depends on.
package collection

import (
	"context"
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"github.com/cinedex/cinedex/internal/domain"
)

// schemaStore is the slice of the Qdrant store this repository consumes.
type schemaStore interface {
	HealthCheck(ctx context.Context) error
	EnsureCollection(ctx context.Context, name string, vectorSize uint64) error
	EnsureFieldIndex(ctx context.Context, collection, field string, fieldType qdrant.FieldType) error
}

// fieldIndexes are the payload indexes every deployment must carry. Title and
// description back the text fallback, the rest back structured filters.
var fieldIndexes = []struct {
	field     string
	fieldType qdrant.FieldType
}{
	{"title", qdrant.FieldType_FieldTypeText},
	{"description", qdrant.FieldType_FieldTypeText},
	{"genres", qdrant.FieldType_FieldTypeKeyword},
	{"releaseYear", qdrant.FieldType_FieldTypeInteger},
	{"imdbRating", qdrant.FieldType_FieldTypeFloat},
	{"language", qdrant.FieldType_FieldTypeKeyword},
}

// Repository provisions the movies collection.
type Repository struct {
	store      schemaStore
	collection string
	vectorSize uint64
	logger     *zap.Logger
}

// NewRepository creates the schema repository.
func NewRepository(store schemaStore, collection string, vectorSize uint64, logger *zap.Logger) *Repository {
	return &Repository{
		store:      store,
		collection: collection,
		vectorSize: vectorSize,
		logger:     logger,
	}
}

// Ping verifies the store is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.store.HealthCheck(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotReady, err)
	}
	return nil
}

// Ensure creates the collection and its field indexes if they do not exist.
// Every step is idempotent, so concurrent or repeated calls converge on the
// same schema.
func (r *Repository) Ensure(ctx context.Context) error {
	if err := r.store.EnsureCollection(ctx, r.collection, r.vectorSize); err != nil {
		return fmt.Errorf("ensure collection: %w", err)
	}

	for _, idx := range fieldIndexes {
		if err := r.store.EnsureFieldIndex(ctx, r.collection, idx.field, idx.fieldType); err != nil {
			return fmt.Errorf("ensure index %s: %w", idx.field, err)
		}
	}

	r.logger.Info("Collection schema ensured",
		zap.String("collection", r.collection),
		zap.Uint64("vector_size", r.vectorSize),
		zap.Int("indexes", len(fieldIndexes)))
	return nil
}
