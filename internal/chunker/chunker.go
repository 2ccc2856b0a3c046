// Package chunker splits normalized text into overlapping token-bounded
// segments.
package chunker

import (
	"fmt"

	"github.com/custodia-labs/sitesage/internal/core/domain"
	"github.com/custodia-labs/sitesage/internal/core/ports/driven"
)

// DefaultMaxTokens is the default window size in tokens.
const DefaultMaxTokens = 800

// DefaultOverlap is the default number of tokens shared by consecutive
// windows, preserving context continuity across chunk boundaries.
const DefaultOverlap = 20

// Splitter windows a token stream into overlapping chunks. Split is a
// pure function of its input; a Splitter is safe for reuse.
type Splitter struct {
	tok       driven.Tokenizer
	maxTokens int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithMaxTokens sets the window size in tokens.
func WithMaxTokens(n int) Option {
	return func(s *Splitter) {
		if n > 0 {
			s.maxTokens = n
		}
	}
}

// WithOverlap sets the overlap between windows in tokens.
func WithOverlap(n int) Option {
	return func(s *Splitter) {
		if n >= 0 {
			s.overlap = n
		}
	}
}

// New creates a splitter over the given tokenizer. The configuration must
// satisfy overlap < maxTokens; anything else would make the window
// advance by zero or backwards and never terminate.
func New(tok driven.Tokenizer, opts ...Option) (*Splitter, error) {
	s := &Splitter{
		tok:       tok,
		maxTokens: DefaultMaxTokens,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.overlap >= s.maxTokens {
		return nil, fmt.Errorf("%w: overlap %d must be less than max tokens %d",
			domain.ErrInvalidInput, s.overlap, s.maxTokens)
	}

	return s, nil
}

// Split tokenizes text and decodes successive windows of maxTokens
// tokens, each starting (maxTokens - overlap) tokens after the previous
// one. The final partial window is included.
func (s *Splitter) Split(text string) []string {
	tokens := s.tok.Encode(text)
	if len(tokens) == 0 {
		return nil
	}

	step := s.maxTokens - s.overlap
	chunks := make([]string, 0, len(tokens)/step+1)

	for start := 0; start < len(tokens); start += step {
		end := start + s.maxTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, s.tok.Decode(tokens[start:end]))
	}

	return chunks
}
