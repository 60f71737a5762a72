// Package sqlite provides the SQLite-backed implementation of the
// ChunkStore port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. One database file
// holds one knowledge collection: a chunks table keyed by the
// deterministic chunk ID (the deduplication key) and a documents table
// recording the files the chunks came from.
//
// # Similarity search
//
// Embeddings are stored as little-endian float32 BLOBs. Queries run a
// brute-force cosine-distance scan over the collection, ordered ascending
// by distance with ties broken by chunk ID. Collections in this system
// are small (one local corpus), so an exact scan beats the operational
// cost of an ANN index.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.kotae/data/<collection>.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode; UpsertIfAbsent is atomic per chunk ID.
package sqlite
