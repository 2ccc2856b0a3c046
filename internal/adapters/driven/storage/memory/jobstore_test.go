package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesage/internal/core/domain"
)

func intPtr(v int) *int { return &v }

func TestJobStore_CreateStartsPending(t *testing.T) {
	store := NewJobStore()
	ctx := context.Background()

	id, err := store.Create(ctx, "transcription", map[string]string{"video_url": "u"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	job, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.JobPending, job.Status)
	assert.Equal(t, 0, job.Progress)
	assert.Equal(t, "transcription", job.Kind)
	assert.Equal(t, "u", job.Meta["video_url"])
}

func TestJobStore_UpdateMergesFields(t *testing.T) {
	store := NewJobStore()
	ctx := context.Background()
	id, _ := store.Create(ctx, "transcription", nil)

	err := store.Update(ctx, id, domain.JobUpdate{Status: domain.JobDownloading, Progress: intPtr(5)})
	require.NoError(t, err)

	job, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.JobDownloading, job.Status)
	assert.Equal(t, 5, job.Progress)

	// A progress-only update leaves the status alone.
	require.NoError(t, store.Update(ctx, id, domain.JobUpdate{Progress: intPtr(50)}))
	job, _ = store.Get(ctx, id)
	assert.Equal(t, domain.JobDownloading, job.Status)
	assert.Equal(t, 50, job.Progress)
}

func TestJobStore_TerminalStateIsImmutable(t *testing.T) {
	store := NewJobStore()
	ctx := context.Background()
	id, _ := store.Create(ctx, "transcription", nil)

	require.NoError(t, store.Update(ctx, id, domain.JobUpdate{
		Status:   domain.JobFailed,
		Progress: intPtr(100),
		Error:    "download failed",
	}))

	// A late completion update must not resurrect the job.
	require.NoError(t, store.Update(ctx, id, domain.JobUpdate{
		Status:   domain.JobCompleted,
		Progress: intPtr(100),
		Result:   map[string]string{"site_id": "x"},
	}))

	job, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.JobFailed, job.Status)
	assert.Equal(t, "download failed", job.Error)
	assert.Nil(t, job.Result)
}

func TestJobStore_UpdateUnknownIDIsNoOp(t *testing.T) {
	store := NewJobStore()
	err := store.Update(context.Background(), "no-such-job", domain.JobUpdate{Status: domain.JobRunning})
	assert.NoError(t, err)
}

func TestJobStore_GetUnknownID(t *testing.T) {
	store := NewJobStore()
	_, err := store.Get(context.Background(), "no-such-job")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJobStore_GetReturnsSnapshot(t *testing.T) {
	store := NewJobStore()
	ctx := context.Background()
	id, _ := store.Create(ctx, "transcription", map[string]string{"k": "v"})

	job, err := store.Get(ctx, id)
	require.NoError(t, err)
	job.Meta["k"] = "mutated"

	fresh, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "v", fresh.Meta["k"])
}

func TestJobStore_ListOrdersByCreation(t *testing.T) {
	store := NewJobStore()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := store.Create(ctx, fmt.Sprintf("kind-%d", i), nil)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	jobs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	for i, job := range jobs {
		assert.Equal(t, fmt.Sprintf("kind-%d", i), job.Kind, "job %s out of order", ids[i])
	}
}

func TestJobStore_ConcurrentUpdates(t *testing.T) {
	store := NewJobStore()
	ctx := context.Background()
	id, _ := store.Create(ctx, "transcription", nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			_ = store.Update(ctx, id, domain.JobUpdate{Progress: intPtr(p)})
		}(i)
	}
	wg.Wait()

	job, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, job.Progress, 0)
	assert.Less(t, job.Progress, 50)
}
