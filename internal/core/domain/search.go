package domain

// SearchResult represents a single retrieval hit. It is a transient,
// derived record: produced by a query, never persisted.
type SearchResult struct {
	// Content is the matched chunk text.
	Content string

	// Source is the display name of the originating document.
	Source string

	// ChunkID is the deterministic identity of the matched chunk.
	ChunkID string

	// ChunkIndex is the 0-based position of the chunk in its document.
	ChunkIndex int

	// FilePath is the path of the originating file.
	FilePath string

	// Distance is the dissimilarity score in [0, 1]; lower is more
	// similar. Results are ordered ascending by distance.
	Distance float64
}

// Similarity reports the similarity score as 1 - distance.
// This assumes the store uses a distance metric bounded in [0, 1],
// e.g. cosine distance over normalised vectors.
func (r SearchResult) Similarity() float64 {
	return 1 - r.Distance
}
