package cli

import (
	"context"
	"errors"

	"github.com/kotae-labs/kotae-cli/internal/core/domain"
	"github.com/kotae-labs/kotae-cli/internal/core/ports/driven"
	"github.com/kotae-labs/kotae-cli/internal/core/ports/driving"
)

// mockIngestService is a scriptable driving.IngestService.
type mockIngestService struct {
	discoverPaths []string
	discoverErr   error

	summary   driving.IngestSummary
	ingestErr error

	autoLoadSummary driving.IngestSummary
	autoLoaded      bool
	autoLoadErr     error
	autoLoadCalls   int

	resetCalled bool
	resetErr    error

	docs []domain.Document
}

var _ driving.IngestService = (*mockIngestService)(nil)

func (m *mockIngestService) Discover(string) ([]string, error) {
	return m.discoverPaths, m.discoverErr
}

func (m *mockIngestService) Ingest(context.Context, []string) (driving.IngestSummary, error) {
	return m.summary, m.ingestErr
}

func (m *mockIngestService) AutoLoad(context.Context, string) (driving.IngestSummary, bool, error) {
	m.autoLoadCalls++
	return m.autoLoadSummary, m.autoLoaded, m.autoLoadErr
}

func (m *mockIngestService) Reset(context.Context) error {
	m.resetCalled = true
	return m.resetErr
}

func (m *mockIngestService) Documents(context.Context) ([]domain.Document, error) {
	return m.docs, nil
}

// mockAssistant is a scriptable driving.Assistant.
type mockAssistant struct {
	answer   string
	results  []domain.SearchResult
	queryErr error

	searchResults []domain.SearchResult
	searchErr     error
	lastK         int
}

var _ driving.Assistant = (*mockAssistant)(nil)

func (m *mockAssistant) Query(context.Context, string) (string, []domain.SearchResult, error) {
	return m.answer, m.results, m.queryErr
}

func (m *mockAssistant) Search(_ context.Context, _ string, k int) ([]domain.SearchResult, error) {
	m.lastK = k
	return m.searchResults, m.searchErr
}

// mockEmbedder satisfies just enough of the embedding port for status.
type mockEmbedder struct{}

var _ driven.EmbeddingService = mockEmbedder{}

func (mockEmbedder) Embed(context.Context, string) ([]float32, error) { return nil, nil }
func (mockEmbedder) EmbedBatch(context.Context, []string) ([][]float32, error) {
	return nil, nil
}
func (mockEmbedder) Dimensions() int            { return 384 }
func (mockEmbedder) ModelName() string          { return "mock-embedding" }
func (mockEmbedder) Ping(context.Context) error { return nil }
func (mockEmbedder) Close() error               { return nil }

// mockGenerator satisfies the generation port for status.
type mockGenerator struct {
	models    []string
	modelsErr error
}

var _ driven.GenerationService = mockGenerator{}

func (mockGenerator) Generate(context.Context, string, driven.GenerateOptions) (string, error) {
	return "", errors.New("not implemented")
}

func (m mockGenerator) Ping(context.Context) error { return m.modelsErr }

func (m mockGenerator) Models(context.Context) ([]string, error) {
	return m.models, m.modelsErr
}

func (mockGenerator) ModelName() string { return "gpt-oss-20b" }
func (mockGenerator) Close() error      { return nil }

// testResults returns a small ranked result set for output tests.
func testResults() []domain.SearchResult {
	return []domain.SearchResult{
		{
			Content:    "Discounts above twenty percent require approval.",
			Source:     "pricing",
			ChunkID:    "pricing#chunk-1",
			ChunkIndex: 0,
			FilePath:   "/docs/pricing.txt",
			Distance:   0.12,
		},
		{
			Content:    "Kickoff calls happen within five business days.",
			Source:     "onboarding",
			ChunkID:    "onboarding#chunk-1",
			ChunkIndex: 0,
			FilePath:   "/docs/onboarding.txt",
			Distance:   0.48,
		},
	}
}

// setupTestServices wires mock services into the package vars and
// returns a cleanup restoring the previous state.
func setupTestServices() func() {
	oldIngest := ingestService
	oldAssistant := assistantService
	oldEmbedding := embeddingService
	oldGeneration := generationService
	oldDocsDir := docsDir
	oldStorePath := storePath
	oldCollection := collectionName
	oldGenerationURL := generationURL

	ingestService = &mockIngestService{
		summary:       driving.IngestSummary{DocumentsProcessed: 2, ChunksAdded: 6},
		discoverPaths: []string{"/docs/a.md", "/docs/b.txt"},
		docs: []domain.Document{
			{ID: "doc-1", Path: "/docs/pricing.txt", Name: "pricing"},
		},
	}
	assistantService = &mockAssistant{
		answer:        "Approval is required above twenty percent.",
		results:       testResults(),
		searchResults: testResults(),
	}
	embeddingService = mockEmbedder{}
	generationService = mockGenerator{models: []string{"gpt-oss-20b", "qwen3-4b"}}
	docsDir = "/docs"
	storePath = "/tmp/kotae/sales_knowledge.db"
	collectionName = "sales_knowledge"
	generationURL = "http://localhost:1234/v1"

	return func() {
		ingestService = oldIngest
		assistantService = oldAssistant
		embeddingService = oldEmbedding
		generationService = oldGeneration
		docsDir = oldDocsDir
		storePath = oldStorePath
		collectionName = oldCollection
		generationURL = oldGenerationURL
	}
}
