package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/sitesage/internal/core/domain"
	"github.com/custodia-labs/sitesage/internal/core/ports/driving"
	"github.com/custodia-labs/sitesage/internal/extractors/youtube"
	"github.com/custodia-labs/sitesage/internal/logger"
)

// IngestVideo indexes a YouTube video's transcript. When captions are
// available it completes synchronously. When they are missing or
// disabled, a background transcription job is queued and the returned
// result carries Accepted=true with the job ID.
func (o *IngestOrchestrator) IngestVideo(ctx context.Context, videoURL, siteID string) (*driving.VideoResult, error) {
	videoID, err := youtube.ExtractVideoID(videoURL)
	if err != nil {
		return nil, err
	}
	finalSiteID := siteID
	if finalSiteID == "" {
		finalSiteID = "youtube-" + videoID
	}

	segments, err := o.transcripts.FetchTranscript(ctx, videoID)
	if err != nil {
		if errors.Is(err, domain.ErrNoTranscript) || errors.Is(err, domain.ErrTranscriptsDisabled) {
			return o.queueTranscription(ctx, videoURL, videoID, finalSiteID)
		}
		return nil, fmt.Errorf("fetch transcript: %w", err)
	}

	processed := youtube.ProcessSegments(segments)
	if len(processed) == 0 {
		return o.queueTranscription(ctx, videoURL, videoID, finalSiteID)
	}

	chunksIndexed, err := o.indexSegments(ctx, processed, videoURL, finalSiteID)
	if err != nil {
		return nil, err
	}

	return &driving.VideoResult{
		SiteID:            finalSiteID,
		VideoID:           videoID,
		ChunksIndexed:     chunksIndexed,
		SegmentsProcessed: len(processed),
	}, nil
}

// indexSegments chunks the combined transcript, maps each chunk back to
// a segment timestamp, embeds and stores the lot.
func (o *IngestOrchestrator) indexSegments(ctx context.Context, segments []youtube.Segment, videoURL, siteID string) (int, error) {
	text := youtube.CombineText(segments)
	texts := o.splitter.Split(text)
	if len(texts) == 0 {
		return 0, nil
	}

	timestamps := youtube.ChunkTimestamps(segments, len(texts))
	chunks, err := o.embedChunks(ctx, texts, func(i int) domain.Chunk {
		return domain.Chunk{
			SourceURL:  videoURL,
			SiteID:     siteID,
			Provenance: domain.VideoProvenance(timestamps[i]),
		}
	})
	if err != nil {
		return 0, err
	}

	if err := o.store.SaveChunks(ctx, chunks); err != nil {
		return 0, fmt.Errorf("store transcript chunks: %w", err)
	}
	return len(chunks), nil
}

// queueTranscription creates a transcription job and dispatches the
// audio download/whisper pipeline in the background.
func (o *IngestOrchestrator) queueTranscription(ctx context.Context, videoURL, videoID, siteID string) (*driving.VideoResult, error) {
	if o.audio == nil || o.stt == nil {
		return nil, fmt.Errorf("%w: no captions and speech-to-text is not configured", domain.ErrNoTranscript)
	}

	jobID, err := o.jobs.Create(ctx, "transcription", map[string]string{
		"video_url": videoURL,
		"site_id":   siteID,
	})
	if err != nil {
		return nil, fmt.Errorf("create transcription job: %w", err)
	}

	logger.Info("No captions for %s, queued transcription job %s", videoID, jobID)
	o.tasks.Go("transcription "+jobID, func() {
		// The caller's context ends with the request; the job outlives it.
		o.runTranscriptionJob(context.Background(), jobID, videoURL, siteID)
	})

	return &driving.VideoResult{
		Accepted: true,
		JobID:    jobID,
		SiteID:   siteID,
		VideoID:  videoID,
	}, nil
}

func (o *IngestOrchestrator) runTranscriptionJob(ctx context.Context, jobID, videoURL, siteID string) {
	fail := func(err error) {
		logger.Warn("Transcription job %s failed: %v", jobID, err)
		if uerr := o.jobs.Update(ctx, jobID, domain.JobUpdate{
			Status:   domain.JobFailed,
			Progress: intPtr(100),
			Error:    err.Error(),
		}); uerr != nil {
			logger.Warn("Failed to mark job %s failed: %v", jobID, uerr)
		}
	}
	progress := func(status domain.JobStatus, pct int) {
		if err := o.jobs.Update(ctx, jobID, domain.JobUpdate{Status: status, Progress: intPtr(pct)}); err != nil {
			logger.Warn("Failed to update job %s: %v", jobID, err)
		}
	}

	progress(domain.JobRunning, 5)

	tmpDir, err := os.MkdirTemp("", "sitesage_audio_")
	if err != nil {
		fail(fmt.Errorf("create temp dir: %w", err))
		return
	}
	defer os.RemoveAll(tmpDir)

	progress(domain.JobDownloading, 5)
	audioPath, err := o.audio.DownloadAudio(ctx, videoURL, tmpDir)
	if err != nil {
		fail(fmt.Errorf("download audio: %w", err))
		return
	}

	progress(domain.JobTranscribing, 30)
	segments, err := o.stt.Transcribe(ctx, audioPath)
	if err != nil {
		fail(fmt.Errorf("transcribe audio: %w", err))
		return
	}

	processed := youtube.ProcessSegments(segments)
	if len(processed) == 0 {
		fail(fmt.Errorf("transcription produced no usable segments"))
		return
	}

	progress(domain.JobTranscribing, 50)
	chunksIndexed, err := o.indexSegments(ctx, processed, videoURL, siteID)
	if err != nil {
		fail(err)
		return
	}

	progress(domain.JobSaving, 90)
	cacheFile := o.cacheTranscript(jobID, segments)

	result := map[string]string{
		"site_id":        siteID,
		"chunks_indexed": fmt.Sprintf("%d", chunksIndexed),
	}
	if cacheFile != "" {
		result["cache_file"] = cacheFile
	}
	if err := o.jobs.Update(ctx, jobID, domain.JobUpdate{
		Status:   domain.JobCompleted,
		Progress: intPtr(100),
		Result:   result,
	}); err != nil {
		logger.Warn("Failed to complete job %s: %v", jobID, err)
	}
	logger.Info("Transcription job %s completed (%d chunks)", jobID, chunksIndexed)
}

// cacheTranscript writes the raw whisper segments to the data directory
// so a re-run can skip the expensive transcription. Failures are logged
// and ignored, the index is already written.
func (o *IngestOrchestrator) cacheTranscript(jobID string, segments []domain.TranscriptSegment) string {
	if o.dataDir == "" {
		return ""
	}
	dir := filepath.Join(o.dataDir, "transcripts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Debug("Cannot create transcript cache dir: %v", err)
		return ""
	}
	path := filepath.Join(dir, jobID+".json")
	data, err := json.MarshalIndent(segments, "", "  ")
	if err != nil {
		logger.Debug("Cannot encode transcript cache: %v", err)
		return ""
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.Debug("Cannot write transcript cache: %v", err)
		return ""
	}
	return path
}

func intPtr(v int) *int { return &v }
