package domain

import (
	"fmt"
	"time"
)

// Document represents a source file read from the document directory.
// It is read once per ingestion pass and never mutated; re-ingestion
// re-reads the file from disk.
type Document struct {
	// ID is the unique identifier for the document record.
	ID string

	// Path is the filesystem path the document was read from.
	Path string

	// Name is the display name: the filename with its known
	// extension stripped. It is the basis for chunk identity.
	Name string

	// Content is the full UTF-8 text content.
	Content string

	// IngestedAt is when the document was last processed.
	IngestedAt time.Time
}

// Chunk is the unit of embedding and retrieval: a bounded contiguous
// slice of a document's text produced by the splitter.
type Chunk struct {
	// ID is the deterministic chunk identity, derived from the document
	// name and the 1-based chunk ordinal. It is the deduplication key:
	// re-ingesting a document with unchanged chunk boundaries yields the
	// same IDs and therefore no new rows.
	ID string

	// Source is the display name of the originating document.
	Source string

	// Index is the 0-based position of the chunk within its document.
	Index int

	// FilePath is the path of the originating file.
	FilePath string

	// Content is the chunk text.
	Content string

	// Embedding is the vector representation used for similarity search.
	Embedding []float32
}

// ChunkID derives the deterministic chunk identity for a document name
// and a 0-based chunk index. The ordinal in the identity is 1-based.
func ChunkID(documentName string, index int) string {
	return fmt.Sprintf("%s#chunk-%d", documentName, index+1)
}
