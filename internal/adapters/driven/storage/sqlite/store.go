package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/kotae-labs/kotae-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/kotae-labs/kotae-cli/internal/core/domain"
	"github.com/kotae-labs/kotae-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ChunkStore = (*Store)(nil)

// DefaultCollection is the collection name used when none is configured.
const DefaultCollection = "sales_knowledge"

// Store is a SQLite-backed knowledge collection. One database file holds
// one collection of chunks and their embeddings.
type Store struct {
	db         *sql.DB
	path       string
	collection string
}

// NewStore opens (or creates) the collection database under dataDir.
// If dataDir is empty, defaults to ~/.kotae/data. If collection is empty,
// DefaultCollection is used. An open failure is fatal for the session:
// callers must not proceed to ingestion or query.
func NewStore(dataDir, collection string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("%w: getting home directory: %w", domain.ErrStoreUnavailable, err)
		}
		dataDir = filepath.Join(home, ".kotae", "data")
	}
	if collection == "" {
		collection = DefaultCollection
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %w", domain.ErrStoreUnavailable, err)
	}

	dbPath := filepath.Join(dataDir, collection+".db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", domain.ErrStoreUnavailable, err)
	}

	s := &Store{
		db:         db,
		path:       dbPath,
		collection: collection,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: running migrations: %w", domain.ErrStoreUnavailable, err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Collection returns the collection name.
func (s *Store) Collection() string {
	return s.collection
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// UpsertIfAbsent inserts the chunk only if its ID is not already present.
// The single INSERT with ON CONFLICT DO NOTHING makes the check-and-insert
// atomic per chunk ID.
func (s *Store) UpsertIfAbsent(ctx context.Context, chunk domain.Chunk) (bool, error) {
	if chunk.ID == "" {
		return false, fmt.Errorf("%w: chunk id is empty", domain.ErrInvalidInput)
	}
	if len(chunk.Embedding) == 0 {
		return false, fmt.Errorf("%w: chunk %s has no embedding", domain.ErrInvalidInput, chunk.ID)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO chunks (chunk_id, source, chunk_index, file_path, content, embedding, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(chunk_id) DO NOTHING
	`, chunk.ID, chunk.Source, chunk.Index, chunk.FilePath, chunk.Content,
		float32SliceToBytes(chunk.Embedding), time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("upserting chunk: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}
	return affected > 0, nil
}

// Query scans the collection for the k chunks nearest to the query
// vector. Results are ordered ascending by cosine distance, ties broken
// by chunk ID so ranking is stable across runs.
func (s *Store) Query(ctx context.Context, vector []float32, k int) ([]domain.SearchResult, error) {
	if k <= 0 {
		return []domain.SearchResult{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT chunk_id, source, chunk_index, file_path, content, embedding
		FROM chunks
	`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var results []domain.SearchResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		var r domain.SearchResult
		var embeddingBlob []byte
		if err := rows.Scan(&r.ChunkID, &r.Source, &r.ChunkIndex, &r.FilePath,
			&r.Content, &embeddingBlob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		r.Distance = cosineDistance(vector, bytesToFloat32Slice(embeddingBlob))
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].ChunkID < results[j].ChunkID
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Count returns the number of chunks in the collection.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

// Reset deletes the entire collection and recreates it empty.
func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return fmt.Errorf("clearing documents: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reset: %w", err)
	}
	return nil
}

// RecordDocument stores or refreshes the record of a processed file.
func (s *Store) RecordDocument(ctx context.Context, doc domain.Document) error {
	if doc.IngestedAt.IsZero() {
		doc.IngestedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, path, name, ingested_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			name = excluded.name,
			ingested_at = excluded.ingested_at
	`, doc.ID, doc.Path, doc.Name, doc.IngestedAt)

	if err != nil {
		return fmt.Errorf("recording document: %w", err)
	}
	return nil
}

// ListDocuments returns all recorded documents, ordered by name.
func (s *Store) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path, name, ingested_at
		FROM documents ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.Document
		var ingestedAt sql.NullTime
		if err := rows.Scan(&doc.ID, &doc.Path, &doc.Name, &ingestedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		if ingestedAt.Valid {
			doc.IngestedAt = ingestedAt.Time
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// cosineDistance returns 1 - cosine similarity, clamped to [0, 1].
// Mismatched or zero-norm vectors are maximally distant.
func cosineDistance(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 1
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}

	distance := 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
	if distance < 0 {
		return 0
	}
	if distance > 1 {
		return 1
	}
	return distance
}
