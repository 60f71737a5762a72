package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable indicates the chunk store backend failed to open.
	// This is fatal for the session; callers must not proceed to
	// ingestion or query.
	ErrStoreUnavailable = errors.New("chunk store unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or not reachable. Ingestion and retrieval are disabled
	// without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrGenerationUnavailable indicates the generation endpoint could not
	// be reached. Queries recover from this locally via the fallback
	// answer path; it is never surfaced as a query failure.
	ErrGenerationUnavailable = errors.New("generation service unavailable")

	// ErrIngestInProgress indicates an ingestion run is already active.
	// Ingestion runs are serialised to preserve the deduplication
	// invariant; concurrent queries remain safe.
	ErrIngestInProgress = errors.New("ingestion in progress")
)
