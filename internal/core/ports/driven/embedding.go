package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Note: This is separate from ChunkStore which stores and searches
// vectors. EmbeddingService generates vectors; ChunkStore stores them.
// Embeddings from different models or dimensions are not interchangeable:
// the corpus and queries must use the same service configuration.
//
// Implementations may include:
//   - OpenAI-compatible servers (LM Studio, OpenAI, Azure OpenAI)
//   - Ollama (nomic-embed-text, all-minilm)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// This is more efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768, 1536).
	// This is fixed for one collection.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test
	// request. Used at startup before committing to ingestion.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
