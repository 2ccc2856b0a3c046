package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
//
// Errors wrapping ErrInvalidInput mean the caller supplied unusable input
// and can recover by retrying with different input. Everything else is an
// internal dependency failure.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or unusable input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoTranscript indicates a video has no captions available.
	// Ingestion falls back to audio transcription when it sees this.
	ErrNoTranscript = errors.New("no transcript available")

	// ErrTranscriptsDisabled indicates captions are disabled for a video.
	ErrTranscriptsDisabled = errors.New("transcripts are disabled")

	// ErrNoExtractableText indicates no page of a PDF yielded any text.
	ErrNoExtractableText = errors.New("no extractable text found in PDF")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Both ingestion and retrieval require it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
