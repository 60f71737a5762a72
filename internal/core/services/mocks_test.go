package services

import (
	"context"
	"errors"
	"hash/fnv"
	"math"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotae-labs/kotae-cli/internal/adapters/driven/storage/sqlite"
	"github.com/kotae-labs/kotae-cli/internal/core/ports/driven"
)

// newTestStore opens a throwaway SQLite collection.
func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.NewStore(t.TempDir(), "test_knowledge")
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

// hashEmbedder is a deterministic bag-of-words embedder: each word is
// hashed into one of a fixed number of buckets. Good enough to make
// lexically similar texts geometrically similar, with no network.
type hashEmbedder struct {
	failing bool
}

var _ driven.EmbeddingService = (*hashEmbedder)(nil)

const hashDims = 64

func (e *hashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if e.failing {
		return nil, errors.New("embedder down")
	}

	v := make([]float32, hashDims)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		h := fnv.New32a()
		h.Write([]byte(w))
		v[h.Sum32()%hashDims]++
	}

	var norm float32
	for _, x := range v {
		norm += x * x
	}
	if norm > 0 {
		n := float32(math.Sqrt(float64(norm)))
		for i := range v {
			v[i] /= n
		}
	}
	return v, nil
}

func (e *hashEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e *hashEmbedder) Dimensions() int            { return hashDims }
func (e *hashEmbedder) ModelName() string          { return "hash-embedder" }
func (e *hashEmbedder) Ping(context.Context) error { return nil }
func (e *hashEmbedder) Close() error               { return nil }

// stubGenerator scripts the generation service for tests.
type stubGenerator struct {
	pingErr  error
	genErr   error
	response string
	prompts  []string
}

var _ driven.GenerationService = (*stubGenerator)(nil)

func (g *stubGenerator) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.genErr != nil {
		return "", g.genErr
	}
	return g.response, nil
}

func (g *stubGenerator) Ping(context.Context) error               { return g.pingErr }
func (g *stubGenerator) Models(context.Context) ([]string, error) { return nil, g.pingErr }
func (g *stubGenerator) ModelName() string                        { return "stub-model" }
func (g *stubGenerator) Close() error                             { return nil }
