package ports

import (
	"context"

	"github.com/ersonp/microscope-solo/internal/domain/entities"
)

// VectorDB stores embedded passages for semantic recall.
type VectorDB interface {
	// SaveBatch upserts passages. Passages are keyed by element id.
	SaveBatch(ctx context.Context, passages []entities.Passage) error

	// Search returns the passages closest to embedding.
	Search(ctx context.Context, embedding []float32, limit int) ([]entities.Passage, error)

	// SearchByKind performs a semantic search restricted to one passage kind.
	SearchByKind(ctx context.Context, embedding []float32, kind entities.PassageKind, limit int) ([]entities.Passage, error)

	// DeleteAll removes every passage.
	DeleteAll(ctx context.Context) error

	// Count returns the number of stored passages.
	Count(ctx context.Context) (uint64, error)
}
