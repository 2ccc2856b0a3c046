package services

import (
	"context"

	"github.com/custodia-labs/sitesage/internal/core/domain"
	"github.com/custodia-labs/sitesage/internal/core/ports/driven"
	"github.com/custodia-labs/sitesage/internal/core/ports/driving"
)

var _ driving.JobService = (*JobPoller)(nil)

// JobPoller exposes job state to callers.
type JobPoller struct {
	jobs driven.JobStore
}

// NewJobPoller creates a JobPoller.
func NewJobPoller(jobs driven.JobStore) *JobPoller {
	return &JobPoller{jobs: jobs}
}

// GetJob returns a job by ID, or domain.ErrNotFound.
func (p *JobPoller) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	return p.jobs.Get(ctx, id)
}

// ListJobs returns all known jobs ordered by creation time.
func (p *JobPoller) ListJobs(ctx context.Context) ([]domain.Job, error) {
	return p.jobs.List(ctx)
}
