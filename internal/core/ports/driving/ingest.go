package driving

import (
	"context"

	"github.com/kotae-labs/kotae-cli/internal/core/domain"
)

// IngestSummary reports the outcome of one ingestion run.
type IngestSummary struct {
	// DocumentsProcessed is the number of documents read and chunked.
	DocumentsProcessed int

	// ChunksAdded counts chunks actually inserted. Duplicates skipped by
	// the store's upsert-if-absent do not count.
	ChunksAdded int

	// DocumentsSkipped counts documents skipped because they were empty
	// or unreadable.
	DocumentsSkipped int

	// Errors holds per-document failure descriptions. A failed document
	// never aborts the batch.
	Errors []string
}

// IngestService orchestrates file discovery, chunking, embedding and
// store upserts. Runs are idempotent: re-ingesting unchanged documents
// inserts nothing.
type IngestService interface {
	// Discover returns the document paths under root matching the
	// configured patterns, in stable sorted order. A missing root is a
	// "nothing to ingest" condition, not an error.
	Discover(root string) ([]string, error)

	// Ingest processes the given paths in order. It returns
	// domain.ErrIngestInProgress if another run is active.
	Ingest(ctx context.Context, paths []string) (IngestSummary, error)

	// AutoLoad ingests the documents under root only when the collection
	// is empty. A non-empty collection is treated as authoritative and
	// left untouched; rebuilding requires an explicit Reset.
	AutoLoad(ctx context.Context, root string) (IngestSummary, bool, error)

	// Reset clears the collection entirely.
	Reset(ctx context.Context) error

	// Documents lists the recorded documents in the collection.
	Documents(ctx context.Context) ([]domain.Document, error)
}
