// Package memory provides in-memory store implementations. The job store
// is the canonical job table for the process; the chunk store backs tests
// and ephemeral runs.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sitesage/internal/core/domain"
	"github.com/custodia-labs/sitesage/internal/core/ports/driven"
)

// Ensure JobStore implements the interface.
var _ driven.JobStore = (*JobStore)(nil)

// JobStore tracks background jobs in a mutex-guarded table. Jobs are
// kept for the process lifetime: the table only grows, which is
// acceptable for a short-lived service but means long-running processes
// accumulate finished job records.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*domain.Job
}

// NewJobStore creates an empty job store.
func NewJobStore() *JobStore {
	return &JobStore{
		jobs: make(map[string]*domain.Job),
	}
}

// Create allocates a new pending job and returns its ID.
func (s *JobStore) Create(_ context.Context, kind string, meta map[string]string) (string, error) {
	id := uuid.New().String()
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs[id] = &domain.Job{
		ID:        id,
		Kind:      kind,
		Status:    domain.JobPending,
		Progress:  0,
		Meta:      copyMap(meta),
		CreatedAt: now,
		UpdatedAt: now,
	}

	return id, nil
}

// Update merges the given fields into the job record under the table
// lock and refreshes UpdatedAt. Unknown IDs are a no-op. A job already
// in a terminal state is never transitioned out of it: the whole update
// is ignored.
func (s *JobStore) Update(_ context.Context, id string, update domain.JobUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil
	}
	if job.Status.Terminal() {
		return nil
	}

	if update.Status != "" {
		job.Status = update.Status
	}
	if update.Progress != nil {
		job.Progress = *update.Progress
	}
	if update.Result != nil {
		job.Result = copyMap(update.Result)
	}
	if update.Error != "" {
		job.Error = update.Error
	}
	job.UpdatedAt = time.Now()

	return nil
}

// Get returns a snapshot of the job, or domain.ErrNotFound.
func (s *JobStore) Get(_ context.Context, id string) (*domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	snapshot := snapshotJob(job)
	return &snapshot, nil
}

// List returns snapshots of all jobs ordered by creation time.
func (s *JobStore) List(_ context.Context) ([]domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make([]domain.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, snapshotJob(job))
	}

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.Before(jobs[j].CreatedAt)
	})

	return jobs, nil
}

// snapshotJob copies a job so callers never share the table's record.
func snapshotJob(job *domain.Job) domain.Job {
	snapshot := *job
	snapshot.Meta = copyMap(job.Meta)
	snapshot.Result = copyMap(job.Result)
	return snapshot
}

// copyMap creates a shallow copy of a string map.
func copyMap(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
