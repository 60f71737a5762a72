package driving

import (
	"context"

	"github.com/kotae-labs/kotae-cli/internal/core/domain"
)

// Assistant is the one operation the core exposes to any front end:
// given a question, return an answer string together with the ranked
// chunks that informed it.
type Assistant interface {
	// Query retrieves the chunks most relevant to the question and
	// composes an answer, delegating to the generation service when it is
	// reachable and falling back to a deterministic templated answer
	// otherwise. It returns an error only for infrastructure failures
	// (embedding or store); generation failures never propagate.
	Query(ctx context.Context, question string) (string, []domain.SearchResult, error)

	// Search performs retrieval only: embed the query, rank by ascending
	// distance, clamp k to the collection size. An empty collection yields
	// an empty slice, not an error.
	Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error)
}
