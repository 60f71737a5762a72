package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kotae-labs/kotae-cli/internal/core/domain"
	"github.com/kotae-labs/kotae-cli/internal/core/ports/driven"
	"github.com/kotae-labs/kotae-cli/internal/core/ports/driving"
	"github.com/kotae-labs/kotae-cli/internal/logger"
	"github.com/kotae-labs/kotae-cli/internal/reporter"
)

// Ensure AssistantService implements the interface.
var _ driving.Assistant = (*AssistantService)(nil)

const (
	// DefaultTopK is the number of chunks retrieved per question.
	DefaultTopK = 5

	// contextChunks bounds how many retrieved chunks feed the
	// generation prompt.
	contextChunks = 3

	// contextExcerptLen bounds each chunk excerpt in the prompt.
	contextExcerptLen = 200

	// fallbackExcerptLen bounds each chunk excerpt in the fallback answer.
	fallbackExcerptLen = 360

	// minGeneratedLen is the minimum useful completion length. Shorter
	// responses are treated as a malformed generation and replaced by
	// the fallback answer.
	minGeneratedLen = 5
)

// noResultsAnswer is returned when retrieval finds nothing.
const noResultsAnswer = "No relevant information was found in the knowledge base."

// fallbackNote closes every fallback answer.
const fallbackNote = "Note: the generation service is not reachable, so this answer lists the " +
	"retrieved material directly. Start a local server such as LM Studio to get synthesised answers."

// answerPromptTemplate is the fixed prompt for the generation service.
const answerPromptTemplate = `Answer the question using only the reference material below.

Question: %s

References:
%s

Structure the answer as:
1. Conclusion
2. Evidence and detail drawn from the references
3. Citations naming the reference sources used`

// AssistantService answers questions over the knowledge collection.
// Retrieval always runs; answer generation is delegated to the
// generation service when a reachability probe succeeds and otherwise
// falls back to a deterministic summary of the retrieved chunks. The
// two-path policy keeps the system useful with the generation backend
// fully down.
type AssistantService struct {
	store     driven.ChunkStore
	embedder  driven.EmbeddingService
	generator driven.GenerationService
	reporter  driven.Reporter
	topK      int
	maxTokens int
}

// AssistantOption configures the assistant service.
type AssistantOption func(*AssistantService)

// WithTopK sets how many chunks are retrieved per question.
func WithTopK(k int) AssistantOption {
	return func(s *AssistantService) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithMaxTokens caps the generation completion length.
func WithMaxTokens(n int) AssistantOption {
	return func(s *AssistantService) {
		if n > 0 {
			s.maxTokens = n
		}
	}
}

// WithAssistantReporter sets the progress reporter. Defaults to the
// headless one.
func WithAssistantReporter(r driven.Reporter) AssistantOption {
	return func(s *AssistantService) {
		if r != nil {
			s.reporter = r
		}
	}
}

// NewAssistantService creates a new assistant service.
// The generator is optional: when nil, every answer takes the fallback path.
func NewAssistantService(
	store driven.ChunkStore,
	embedder driven.EmbeddingService,
	generator driven.GenerationService,
	opts ...AssistantOption,
) *AssistantService {
	s := &AssistantService{
		store:     store,
		embedder:  embedder,
		generator: generator,
		reporter:  reporter.Nop{},
		topK:      DefaultTopK,
		maxTokens: 400,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Search performs retrieval only: embed the query with the corpus
// embedder, clamp k to the collection size, rank ascending by distance.
func (s *AssistantService) Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error) {
	logger.Section("Search")

	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchResult{}, nil
	}
	if k <= 0 {
		k = s.topK
	}

	count, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count chunks: %w", err)
	}
	if count == 0 {
		logger.Debug("Collection is empty, returning no results")
		return []domain.SearchResult{}, nil
	}
	if k > count {
		k = count
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := s.store.Query(ctx, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("query store: %w", err)
	}

	logger.Debug("Query %q: %d results", query, len(results))
	return results, nil
}

// Query retrieves the chunks most relevant to the question and composes
// an answer. Generation failures of any kind - unreachable endpoint,
// non-200 status, malformed body, near-empty completion - switch to the
// fallback path and are never surfaced as errors.
func (s *AssistantService) Query(ctx context.Context, question string) (string, []domain.SearchResult, error) {
	results, err := s.Search(ctx, question, s.topK)
	if err != nil {
		return "", nil, err
	}
	if len(results) == 0 {
		return noResultsAnswer, []domain.SearchResult{}, nil
	}

	answer, ok := s.generate(ctx, question, results)
	if !ok {
		answer = s.fallbackAnswer(question, results)
	}

	return answer, results, nil
}

// generate attempts the generation path. The boolean reports whether a
// usable answer was produced.
func (s *AssistantService) generate(ctx context.Context, question string, results []domain.SearchResult) (string, bool) {
	if s.generator == nil {
		return "", false
	}

	if err := s.generator.Ping(ctx); err != nil {
		logger.Debug("Generation probe failed: %v", err)
		s.reporter.Warnf("generation service unreachable, using fallback answer")
		return "", false
	}

	prompt := fmt.Sprintf(answerPromptTemplate, question, s.contextBlock(results))

	answer, err := s.generator.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   s.maxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		logger.Warn("Generation failed: %v", err)
		s.reporter.Warnf("generation failed, using fallback answer")
		return "", false
	}
	if len(strings.TrimSpace(answer)) < minGeneratedLen {
		logger.Warn("Generation returned a near-empty completion")
		return "", false
	}

	return answer, true
}

// contextBlock formats the top retrieved chunks as "source: excerpt"
// lines for the generation prompt, most similar first.
func (s *AssistantService) contextBlock(results []domain.SearchResult) string {
	n := len(results)
	if n > contextChunks {
		n = contextChunks
	}

	lines := make([]string, 0, n)
	for _, r := range results[:n] {
		lines = append(lines, fmt.Sprintf("%s: %s", r.Source, excerpt(r.Content, contextExcerptLen)))
	}
	return strings.Join(lines, "\n")
}

// fallbackAnswer builds the deterministic answer used when generation is
// unavailable: ranked excerpts with similarity scores, a citation list,
// and a fixed note about enabling the generation service.
func (s *AssistantService) fallbackAnswer(question string, results []domain.SearchResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Question: %s\n\nRelevant material:\n\n", question)

	for i, r := range results {
		fmt.Fprintf(&b, "[%d] %s (similarity %.3f)\n%s\n\n",
			i+1, r.Source, r.Similarity(), excerpt(r.Content, fallbackExcerptLen))
	}

	b.WriteString("Sources:\n")
	for _, r := range results {
		fmt.Fprintf(&b, "  - %s\n", r.ChunkID)
	}

	b.WriteString("\n")
	b.WriteString(fallbackNote)

	return b.String()
}

// excerpt truncates text to limit characters, marking the cut. Counted
// in runes so multi-byte text is never cut mid-character.
func excerpt(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
