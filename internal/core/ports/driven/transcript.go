package driven

import (
	"context"

	"github.com/custodia-labs/sitesage/internal/core/domain"
)

// TranscriptService fetches published captions for a video.
//
// Returns domain.ErrNoTranscript or domain.ErrTranscriptsDisabled (wrapped)
// when captions are unavailable; ingestion falls back to speech-to-text.
type TranscriptService interface {
	// FetchTranscript returns the caption segments for a video ID,
	// ordered by start time.
	FetchTranscript(ctx context.Context, videoID string) ([]domain.TranscriptSegment, error)
}

// SpeechToText transcribes a local audio file into timed segments.
// Used as the fallback path when no published transcript exists.
type SpeechToText interface {
	// Transcribe converts the audio file at path into ordered segments.
	Transcribe(ctx context.Context, path string) ([]domain.TranscriptSegment, error)
}

// AudioDownloader extracts the audio track of a video into destDir and
// returns the path of the downloaded file.
type AudioDownloader interface {
	DownloadAudio(ctx context.Context, videoURL, destDir string) (string, error)
}
