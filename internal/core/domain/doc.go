// Package domain defines the core business entities for Kotae.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A source file loaded from the document directory
//   - Chunk: The unit of embedding and retrieval within a document
//   - SearchResult: A ranked retrieval hit with its distance score
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
