// Package chunker provides a sentence-boundary text splitter with overlap.
package chunker

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize is the default soft bound in characters per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of trailing characters carried
// from one chunk into the next.
const DefaultOverlap = 200

// sentence-terminal runes: Latin and Japanese full stops, plus newlines.
const terminators = ".!?。！？\n"

// Splitter splits text into overlapping, size-bounded chunks along
// sentence boundaries. Splitting is deterministic: the same input always
// yields the same chunk sequence, which is what makes ingestion
// idempotent.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the soft chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between consecutive chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Ensure overlap doesn't exceed chunk size
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// ChunkSize returns the configured soft size bound.
func (s *Splitter) ChunkSize() int { return s.chunkSize }

// Overlap returns the configured overlap width.
func (s *Splitter) Overlap() int { return s.overlap }

// Split breaks text into ordered chunks. Sentences are accumulated
// greedily; when appending the next sentence would push the buffer past
// the chunk size, the buffer is closed and the next one is seeded with
// the trailing overlap characters of the closed chunk. The size bound is
// soft: a single sentence longer than the chunk size is kept whole,
// never truncated mid-sentence.
func (s *Splitter) Split(text string) []string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	var buf strings.Builder

	for _, sentence := range sentences {
		// Sentences lose their terminator during splitting; re-terminate
		// with a period so chunk text stays readable.
		sentence += "."

		if buf.Len() > 0 && utf8.RuneCountInString(buf.String())+1+utf8.RuneCountInString(sentence) > s.chunkSize {
			closed := buf.String()
			chunks = append(chunks, closed)

			buf.Reset()
			buf.WriteString(tail(closed, s.overlap))
			buf.WriteString(" ")
			buf.WriteString(sentence)
			continue
		}

		if buf.Len() > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(sentence)
	}

	if buf.Len() > 0 {
		chunks = append(chunks, buf.String())
	}

	return chunks
}

// splitSentences cuts text at sentence-terminal punctuation and newlines
// into trimmed, non-empty sentence candidates.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		trimmed := strings.TrimSpace(current.String())
		if trimmed != "" {
			sentences = append(sentences, trimmed)
		}
		current.Reset()
	}

	for _, r := range text {
		if strings.ContainsRune(terminators, r) {
			flush()
			continue
		}
		current.WriteRune(r)
	}
	flush()

	return sentences
}

// tail returns the last n characters of text, or the whole text when it
// is shorter than n. Counted in runes so multi-byte text is never cut
// mid-character.
func tail(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}
