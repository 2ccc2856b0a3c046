package youtube

import (
	"strings"

	"github.com/custodia-labs/sitesage/internal/core/domain"
)

// Segment is a processed transcript segment: trimmed text paired with
// its formatted start timestamp.
type Segment struct {
	Text      string
	Timestamp string
}

// ProcessSegments trims raw transcript segments, drops empty ones and
// formats each start offset as an mm:ss timestamp.
func ProcessSegments(raw []domain.TranscriptSegment) []Segment {
	segments := make([]Segment, 0, len(raw))
	for _, seg := range raw {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		segments = append(segments, Segment{
			Text:      text,
			Timestamp: FormatTimestamp(seg.Start),
		})
	}
	return segments
}

// CombineText joins segment texts into the single document that gets
// re-chunked for embedding.
func CombineText(segments []Segment) string {
	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = seg.Text
	}
	return strings.Join(texts, " ")
}

// SegmentIndex maps a chunk index in the re-chunked transcript back to a
// segment index by proportional position, clamped to the last segment.
//
// This is a heuristic, not an exact alignment: when chunk boundaries do
// not line up with segment boundaries the attributed timestamp can be
// off by a segment or two.
func SegmentIndex(chunkIdx, chunkCount, segmentCount int) int {
	if chunkCount <= 0 || segmentCount <= 0 {
		return 0
	}
	idx := chunkIdx * segmentCount / chunkCount
	if idx >= segmentCount {
		idx = segmentCount - 1
	}
	return idx
}

// ChunkTimestamps returns one timestamp per chunk using the proportional
// segment mapping, aligned by index for a single batch insert.
func ChunkTimestamps(segments []Segment, chunkCount int) []string {
	timestamps := make([]string, chunkCount)
	for i := range timestamps {
		timestamps[i] = segments[SegmentIndex(i, chunkCount, len(segments))].Timestamp
	}
	return timestamps
}
