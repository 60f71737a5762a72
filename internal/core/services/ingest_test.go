package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotae-labs/kotae-cli/internal/adapters/driven/storage/sqlite"
	"github.com/kotae-labs/kotae-cli/internal/chunker"
	"github.com/kotae-labs/kotae-cli/internal/core/domain"
)

// writeDoc creates a document file under dir.
func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// twoChunkText builds a document that splits into exactly two chunks at
// the default 1000/200 settings: nine 119-character sentences, of which
// the first eight fill the first chunk.
func twoChunkText(word string) string {
	reps := 120 / (len(word) + 1)
	sentence := strings.TrimSpace(strings.Repeat(word+" ", reps))
	for len(sentence) < 119 {
		sentence += "x"
	}
	parts := make([]string, 9)
	for i := range parts {
		parts[i] = sentence
	}
	return strings.Join(parts, ". ") + "."
}

func newTestIngest(t *testing.T) (*IngestService, *sqlite.Store) {
	t.Helper()
	store := newTestStore(t)
	return NewIngestService(store, &hashEmbedder{}, chunker.New()), store
}

func chunkCount(t *testing.T, store *sqlite.Store) int {
	t.Helper()
	n, err := store.Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestIngestService_Ingest_Idempotent(t *testing.T) {
	svc, store := newTestIngest(t)
	dir := t.TempDir()
	path := writeDoc(t, dir, "doc1.txt", twoChunkText("alpha"))

	first, err := svc.Ingest(context.Background(), []string{path})
	require.NoError(t, err)
	assert.Equal(t, 1, first.DocumentsProcessed)
	assert.Equal(t, 2, first.ChunksAdded)
	assert.Equal(t, 2, chunkCount(t, store))

	// Re-ingesting the same document inserts nothing.
	second, err := svc.Ingest(context.Background(), []string{path})
	require.NoError(t, err)
	assert.Equal(t, 1, second.DocumentsProcessed)
	assert.Zero(t, second.ChunksAdded)
	assert.Equal(t, 2, chunkCount(t, store))
}

func TestIngestService_Ingest_SkipsBadAndEmptyDocuments(t *testing.T) {
	svc, store := newTestIngest(t)
	dir := t.TempDir()

	good := writeDoc(t, dir, "good.md", "A perfectly ordinary sentence about pricing.")
	empty := writeDoc(t, dir, "empty.txt", "   \n\n  ")
	missing := filepath.Join(dir, "missing.txt")

	summary, err := svc.Ingest(context.Background(), []string{missing, empty, good})
	require.NoError(t, err)

	// One bad file never aborts the batch.
	assert.Equal(t, 1, summary.DocumentsProcessed)
	assert.Equal(t, 2, summary.DocumentsSkipped)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "missing.txt")
	assert.Equal(t, 1, chunkCount(t, store))
}

func TestIngestService_Ingest_Serialised(t *testing.T) {
	svc, _ := newTestIngest(t)

	svc.mu.Lock()
	defer svc.mu.Unlock()

	_, err := svc.Ingest(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrIngestInProgress)
}

func TestIngestService_Discover(t *testing.T) {
	svc, _ := newTestIngest(t)

	t.Run("missing directory is not an error", func(t *testing.T) {
		paths, err := svc.Discover(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, paths)
	})

	t.Run("matches patterns, sorted and deduplicated", func(t *testing.T) {
		dir := t.TempDir()
		writeDoc(t, dir, "b.txt", "b")
		writeDoc(t, dir, "a.md", "a")
		writeDoc(t, dir, "c.docx.md", "c")
		writeDoc(t, dir, "ignored.pdf", "x")
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0700))
		writeDoc(t, filepath.Join(dir, "sub"), "d.txt", "d")

		paths, err := svc.Discover(dir)
		require.NoError(t, err)

		names := make([]string, len(paths))
		for i, p := range paths {
			rel, relErr := filepath.Rel(dir, p)
			require.NoError(t, relErr)
			names[i] = filepath.ToSlash(rel)
		}
		assert.Equal(t, []string{"a.md", "b.txt", "c.docx.md", "sub/d.txt"}, names)
	})
}

func TestIngestService_AutoLoad(t *testing.T) {
	svc, store := newTestIngest(t)
	dir := t.TempDir()
	writeDoc(t, dir, "doc1.txt", "One plain sentence about onboarding new clients.")

	// Empty collection: documents are loaded.
	summary, loaded, err := svc.AutoLoad(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, 1, summary.DocumentsProcessed)
	require.Positive(t, chunkCount(t, store))

	// A non-empty collection is authoritative: nothing is merged in.
	writeDoc(t, dir, "doc2.txt", "Another sentence that must not be auto-loaded.")
	before := chunkCount(t, store)
	_, loaded, err = svc.AutoLoad(context.Background(), dir)
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.Equal(t, before, chunkCount(t, store))
}

func TestIngestService_Reset(t *testing.T) {
	svc, store := newTestIngest(t)
	dir := t.TempDir()
	path := writeDoc(t, dir, "doc1.txt", "Content that will be cleared by the reset.")

	_, err := svc.Ingest(context.Background(), []string{path})
	require.NoError(t, err)
	require.Positive(t, chunkCount(t, store))

	require.NoError(t, svc.Reset(context.Background()))
	assert.Zero(t, chunkCount(t, store))

	docs, err := svc.Documents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestIngestService_Documents(t *testing.T) {
	svc, _ := newTestIngest(t)
	dir := t.TempDir()
	writeDoc(t, dir, "guide.md", "How to run a discovery call with a new prospect.")
	writeDoc(t, dir, "notes.txt", "Follow-up cadence for enterprise deals.")

	paths, err := svc.Discover(dir)
	require.NoError(t, err)
	_, err = svc.Ingest(context.Background(), paths)
	require.NoError(t, err)

	docs, err := svc.Documents(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	names := []string{docs[0].Name, docs[1].Name}
	assert.Contains(t, names, "guide")
	assert.Contains(t, names, "notes")
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/docs/guide.md", "guide"},
		{"/docs/notes.txt", "notes"},
		{"/docs/spec.docx.md", "spec.docx"},
		{"/docs/readme", "readme"},
		{"relative/plan.md", "plan"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, displayName(tt.path), "path %s", tt.path)
	}
}
