package driving

import (
	"context"

	"github.com/custodia-labs/sitesage/internal/core/domain"
)

// JobService exposes background-job polling. There is no mechanism to
// await or cancel a job; callers poll until a terminal status.
type JobService interface {
	// GetJob returns the full job record, or domain.ErrNotFound.
	GetJob(ctx context.Context, id string) (*domain.Job, error)

	// ListJobs returns all jobs, for diagnostics.
	ListJobs(ctx context.Context) ([]domain.Job, error)
}
