package domain

import "time"

// JobStatus describes where a background job is in its lifecycle.
// Interim phase labels vary by job kind, so the set is open: the named
// constants cover the common lifecycle, and job runners may report
// kind-specific phases (downloading, transcribing, saving) between
// running and a terminal state.
type JobStatus string

const (
	// JobPending is the initial state after Create.
	JobPending JobStatus = "pending"

	// JobRunning means the background task has started.
	JobRunning JobStatus = "running"

	// JobDownloading is the audio-download phase of transcription jobs.
	JobDownloading JobStatus = "downloading"

	// JobTranscribing is the speech-to-text phase of transcription jobs.
	JobTranscribing JobStatus = "transcribing"

	// JobSaving is the chunk/embedding persistence phase.
	JobSaving JobStatus = "saving"

	// JobCompleted is the successful terminal state.
	JobCompleted JobStatus = "completed"

	// JobFailed is the unsuccessful terminal state.
	JobFailed JobStatus = "failed"
)

// Terminal reports whether the status is final. Terminal states are never
// transitioned out of.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

// Job is a handle to an asynchronous, long-running ingestion operation.
// Jobs live for the process lifetime; they are never deleted.
type Job struct {
	// ID is an opaque unique token.
	ID string

	// Kind identifies the operation, e.g. "transcription".
	Kind string

	// Status is the current lifecycle phase.
	Status JobStatus

	// Progress is advisory, 0-100. Monotonic by convention, not enforced.
	Progress int

	// Meta holds caller-supplied context recorded at creation.
	Meta map[string]string

	// Result holds the terminal output of a completed job.
	Result map[string]string

	// Error holds the failure message of a failed job.
	Error string

	// CreatedAt is when the job was created.
	CreatedAt time.Time

	// UpdatedAt is refreshed on every update.
	UpdatedAt time.Time
}

// JobUpdate is a partial update merged atomically into a job record.
// Nil or zero fields are left unchanged.
type JobUpdate struct {
	// Status replaces the job status when non-empty. Updates against a
	// job already in a terminal state keep the terminal status.
	Status JobStatus

	// Progress replaces the progress value when non-nil.
	Progress *int

	// Result replaces the result map when non-nil.
	Result map[string]string

	// Error replaces the error message when non-empty.
	Error string
}
