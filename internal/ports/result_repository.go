package ports

import (
	"context"

	"github.com/sanitaravel/starship-analyzer-sub000/internal/domain"
)

// ResultRepository persists the final record set of a run, keyed by an
// externally supplied run identifier (the launch number).
type ResultRepository interface {
	// Save writes the records and returns the path they were written to.
	Save(ctx context.Context, runID string, records []domain.FrameRecord) (string, error)
}
