package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesage/internal/core/domain"
)

func TestJobsGetCmd_ShowsJob(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	jobService.(*mockJobService).jobs = map[string]*domain.Job{
		"job-1": sampleJob("job-1"),
	}

	out, err := executeCommand(t, "jobs", "get", "job-1")

	require.NoError(t, err)
	assert.Contains(t, out, "job-1")
	assert.Contains(t, out, string(domain.JobTranscribing))
	assert.Contains(t, out, "30%")
}

func TestJobsGetCmd_UnknownJob(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand(t, "jobs", "get", "missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestJobsListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand(t, "jobs", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No jobs.")
}

func TestJobsListCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	jobService.(*mockJobService).jobs = map[string]*domain.Job{
		"job-1": sampleJob("job-1"),
	}

	out, err := executeCommand(t, "jobs", "list", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"id": "job-1"`)
	assert.Contains(t, out, `"kind": "transcription"`)
}

func TestJobsGetCmd_JSONUsesSnakeCaseKeys(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	jobService.(*mockJobService).jobs = map[string]*domain.Job{
		"job-1": sampleJob("job-1"),
	}

	out, err := executeCommand(t, "jobs", "get", "job-1", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"id": "job-1"`)
	assert.Contains(t, out, `"status": "transcribing"`)
	assert.Contains(t, out, `"created_at"`)
	assert.Contains(t, out, `"video_url"`)
	assert.NotContains(t, out, `"ID"`)
	assert.NotContains(t, out, `"CreatedAt"`)
}
