package driven

import (
	"context"

	"github.com/custodia-labs/sitesage/internal/core/domain"
)

// JobStore tracks long-running asynchronous operations. It is owned by
// the service process and shared by whatever spawns or polls background
// work; there is no ambient global job table.
type JobStore interface {
	// Create allocates a new job in the pending state and returns its ID.
	Create(ctx context.Context, kind string, meta map[string]string) (string, error)

	// Update atomically merges the given fields into the job record and
	// refreshes UpdatedAt. Unknown IDs are a no-op: callers are expected
	// to hold an ID obtained from Create.
	Update(ctx context.Context, id string, update domain.JobUpdate) error

	// Get returns a snapshot of the job, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Job, error)

	// List returns snapshots of all jobs, for diagnostics.
	List(ctx context.Context) ([]domain.Job, error)
}
