package catalog

import (
	"context"

	"github.com/cinedex/cinedex/internal/domain"
)

// Repository defines the storage contract for catalog reads.
type Repository interface {
	FindAll(ctx context.Context, limit int) ([]domain.Movie, error)
	Count(ctx context.Context) (uint64, error)
}

// Readiness reports whether the collection is provisioned and reachable.
type Readiness interface {
	Ready() bool
}
