package driven

import (
	"context"

	"github.com/kotae-labs/kotae-cli/internal/core/domain"
)

// ChunkStore is a content-addressed, deduplicating persistent collection
// of chunks and their embeddings, keyed by chunk ID.
//
// The store is shared mutable state across all calls in a process.
// Queries are read-only and safe to run concurrently; ingestion runs are
// serialised by the ingest service.
type ChunkStore interface {
	// UpsertIfAbsent inserts the chunk only if its ID is not already
	// present, and reports whether a row was inserted. The check-and-insert
	// is atomic per chunk ID: concurrent calls for the same ID insert at
	// most once.
	UpsertIfAbsent(ctx context.Context, chunk domain.Chunk) (bool, error)

	// Query returns the chunks nearest to the query vector, ordered
	// ascending by distance (most similar first) with ties broken by
	// chunk ID. The result length is min(k, Count). An empty collection
	// yields an empty slice, not an error.
	Query(ctx context.Context, vector []float32, k int) ([]domain.SearchResult, error)

	// Count returns the number of chunks in the collection.
	Count(ctx context.Context) (int, error)

	// Reset deletes the entire collection and recreates it empty.
	// This is the only supported "clear" operation; there is no
	// per-document delete.
	Reset(ctx context.Context) error

	// RecordDocument stores or refreshes the document record for a
	// successfully processed file.
	RecordDocument(ctx context.Context, doc domain.Document) error

	// ListDocuments returns all recorded documents, ordered by name.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// Close releases the underlying storage.
	Close() error
}
