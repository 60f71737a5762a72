// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ChunkStore: Persistent chunk + embedding collection with
//     nearest-neighbour query. Open failure is fatal for the session.
//   - EmbeddingService: Generates vector embeddings. The same model and
//     dimension must be used for the corpus and for queries.
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - GenerationService: Language model answer generation. Without it
//     (or when it is unreachable), queries fall back to a deterministic
//     templated answer built from the retrieved chunks.
//   - Reporter: Progress/status callback surface. A nil reporter is
//     replaced by a no-op implementation.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
