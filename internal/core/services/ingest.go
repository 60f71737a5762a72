package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/kotae-labs/kotae-cli/internal/chunker"
	"github.com/kotae-labs/kotae-cli/internal/core/domain"
	"github.com/kotae-labs/kotae-cli/internal/core/ports/driven"
	"github.com/kotae-labs/kotae-cli/internal/core/ports/driving"
	"github.com/kotae-labs/kotae-cli/internal/logger"
	"github.com/kotae-labs/kotae-cli/internal/reporter"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// FilePatterns are the document filename patterns picked up from the
// document directory, at any depth.
var FilePatterns = []string{"**/*.md", "**/*.txt", "**/*.docx.md"}

// IngestService orchestrates file discovery, chunking, embedding and
// store upserts. Runs are serialised by an internal lock so the store's
// deduplication invariant holds under concurrent callers; queries are
// unaffected.
type IngestService struct {
	store    driven.ChunkStore
	embedder driven.EmbeddingService
	splitter *chunker.Splitter
	reporter driven.Reporter
	limiter  *rate.Limiter

	mu sync.Mutex
}

// IngestOption configures the ingest service.
type IngestOption func(*IngestService)

// WithReporter sets the progress reporter. Defaults to the headless one.
func WithReporter(r driven.Reporter) IngestOption {
	return func(s *IngestService) {
		if r != nil {
			s.reporter = r
		}
	}
}

// WithEmbedRateLimit throttles embedding requests to at most rps per
// second. Useful against shared or rate-limited embedding endpoints.
func WithEmbedRateLimit(rps float64) IngestOption {
	return func(s *IngestService) {
		if rps > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	store driven.ChunkStore,
	embedder driven.EmbeddingService,
	splitter *chunker.Splitter,
	opts ...IngestOption,
) *IngestService {
	s := &IngestService{
		store:    store,
		embedder: embedder,
		splitter: splitter,
		reporter: reporter.Nop{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Discover returns the document paths under root matching FilePatterns,
// deduplicated and in stable sorted order. Sorting is what keeps
// re-ingestion order, and therefore duplicate detection, deterministic.
// A missing root directory means there is nothing to ingest.
func (s *IngestService) Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		logger.Debug("Document directory %s does not exist", root)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat document directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, root)
	}

	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range FilePatterns {
		matches, err := doublestar.Glob(os.DirFS(root), pattern)
		if err != nil {
			return nil, fmt.Errorf("matching pattern %s: %w", pattern, err)
		}
		for _, match := range matches {
			full := filepath.Join(root, filepath.FromSlash(match))
			if !seen[full] {
				seen[full] = true
				paths = append(paths, full)
			}
		}
	}

	sort.Strings(paths)
	logger.Debug("Discovered %d documents under %s", len(paths), root)
	return paths, nil
}

// Ingest processes the given document paths in stable sorted order.
// A failed document is reported and skipped; the batch always continues.
func (s *IngestService) Ingest(ctx context.Context, paths []string) (driving.IngestSummary, error) {
	var summary driving.IngestSummary

	if !s.mu.TryLock() {
		return summary, domain.ErrIngestInProgress
	}
	defer s.mu.Unlock()

	logger.Section("Ingestion")

	ordered := make([]string, len(paths))
	copy(ordered, paths)
	sort.Strings(ordered)

	for _, path := range ordered {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		added, err := s.ingestDocument(ctx, path)
		if err != nil {
			// Chunks inserted before the failure stay in the store and
			// still count; the next run will fill in the rest.
			if added > 0 {
				summary.ChunksAdded += added
			}
			summary.DocumentsSkipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", path, err))
			s.reporter.Errorf("skipping %s: %v", path, err)
			continue
		}
		if added < 0 {
			// Blank document: a legitimate empty condition, not an error.
			summary.DocumentsSkipped++
			s.reporter.Warnf("skipping empty document %s", path)
			continue
		}

		summary.DocumentsProcessed++
		summary.ChunksAdded += added
	}

	logger.Info("Ingestion complete: %d documents, %d chunks added, %d skipped",
		summary.DocumentsProcessed, summary.ChunksAdded, summary.DocumentsSkipped)
	s.reporter.Infof("ingested %d documents (%d new chunks)",
		summary.DocumentsProcessed, summary.ChunksAdded)

	return summary, nil
}

// ingestDocument reads, chunks, embeds and upserts one file. It returns
// the number of chunks actually inserted, or -1 for a blank document.
func (s *IngestService) ingestDocument(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read document: %w", err)
	}

	content := string(raw)
	if strings.TrimSpace(content) == "" {
		return -1, nil
	}

	name := displayName(path)
	chunks := s.splitter.Split(content)
	logger.Debug("Document %s: %d chunks", name, len(chunks))

	added := 0
	for i, text := range chunks {
		if strings.TrimSpace(text) == "" {
			continue
		}

		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return added, err
			}
		}

		embedding, err := s.embedder.Embed(ctx, text)
		if err != nil {
			return added, fmt.Errorf("embed chunk %d: %w", i, err)
		}

		inserted, err := s.store.UpsertIfAbsent(ctx, domain.Chunk{
			ID:        domain.ChunkID(name, i),
			Source:    name,
			Index:     i,
			FilePath:  path,
			Content:   text,
			Embedding: embedding,
		})
		if err != nil {
			return added, fmt.Errorf("store chunk %d: %w", i, err)
		}
		if inserted {
			added++
		}
	}

	if err := s.store.RecordDocument(ctx, domain.Document{
		ID:         uuid.New().String(),
		Path:       path,
		Name:       name,
		IngestedAt: time.Now().UTC(),
	}); err != nil {
		return added, fmt.Errorf("record document: %w", err)
	}

	return added, nil
}

// AutoLoad ingests the documents under root only when the collection is
// empty. An existing non-empty collection is authoritative: it is never
// auto-merged, and rebuilding requires an explicit Reset first.
func (s *IngestService) AutoLoad(ctx context.Context, root string) (driving.IngestSummary, bool, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return driving.IngestSummary{}, false, fmt.Errorf("count chunks: %w", err)
	}
	if count > 0 {
		logger.Debug("Collection already holds %d chunks; skipping auto-load", count)
		return driving.IngestSummary{}, false, nil
	}

	paths, err := s.Discover(root)
	if err != nil {
		return driving.IngestSummary{}, false, err
	}
	if len(paths) == 0 {
		s.reporter.Warnf("no documents found under %s", root)
		return driving.IngestSummary{}, false, nil
	}

	summary, err := s.Ingest(ctx, paths)
	if err != nil {
		return summary, false, err
	}
	return summary, true, nil
}

// Reset clears the collection entirely.
func (s *IngestService) Reset(ctx context.Context) error {
	if !s.mu.TryLock() {
		return domain.ErrIngestInProgress
	}
	defer s.mu.Unlock()

	if err := s.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset collection: %w", err)
	}
	s.reporter.Infof("collection reset")
	return nil
}

// Documents lists the recorded documents in the collection.
func (s *IngestService) Documents(ctx context.Context) ([]domain.Document, error) {
	return s.store.ListDocuments(ctx)
}

// displayName strips the directory and one known extension from a
// document path. "guide.md" becomes "guide"; "spec.docx.md" keeps its
// inner extension and becomes "spec.docx".
func displayName(path string) string {
	name := filepath.Base(path)
	if strings.HasSuffix(name, ".md") {
		return strings.TrimSuffix(name, ".md")
	}
	if strings.HasSuffix(name, ".txt") {
		return strings.TrimSuffix(name, ".txt")
	}
	return name
}
