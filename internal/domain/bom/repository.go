package bom

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the read-only BOM data source. Inactive alternatives and
// soft-deleted rows are never returned.
type Repository interface {
	// GetBOM finds a BOM header by ID
	GetBOM(ctx context.Context, id uuid.UUID) (*BOM, error)

	// GetLines returns the lines of a BOM ordered by sequence
	GetLines(ctx context.Context, bomID uuid.UUID) ([]Line, error)

	// GetLine finds a single BOM line
	GetLine(ctx context.Context, lineID uuid.UUID) (*Line, error)

	// GetAlternatives returns active alternatives of a line by ascending priority
	GetAlternatives(ctx context.Context, lineID uuid.UUID) ([]Alternative, error)

	// Save creates or replaces a BOM together with its lines and their alternatives
	Save(ctx context.Context, b *BOM, alternatives map[uuid.UUID][]Alternative) error
}
