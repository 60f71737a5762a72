package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotae-labs/kotae-cli/internal/core/ports/driven"
)

func TestGenerationService_Defaults(t *testing.T) {
	svc := NewGenerationService(Config{})

	assert.Equal(t, DefaultModel, svc.ModelName())
}

func TestGenerationService_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-oss-20b", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, 400, req.MaxTokens)
		assert.InDelta(t, 0.3, req.Temperature, 1e-9)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "the prompt", req.Messages[0].Content)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"the answer"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	svc := NewGenerationService(Config{BaseURL: srv.URL})

	answer, err := svc.Generate(context.Background(), "the prompt", driven.GenerateOptions{
		MaxTokens:   400,
		Temperature: 0.3,
	})
	require.NoError(t, err)
	assert.Equal(t, "the answer", answer)
}

func TestGenerationService_Generate_Errors(t *testing.T) {
	t.Run("api error body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"model not loaded","type":"invalid_request"}}`))
		}))
		defer srv.Close()

		svc := NewGenerationService(Config{BaseURL: srv.URL})
		_, err := svc.Generate(context.Background(), "p", driven.GenerateOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "model not loaded")
	})

	t.Run("no choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer srv.Close()

		svc := NewGenerationService(Config{BaseURL: srv.URL})
		_, err := svc.Generate(context.Background(), "p", driven.GenerateOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no response choices")
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		svc := NewGenerationService(Config{BaseURL: srv.URL})
		_, err := svc.Generate(context.Background(), "p", driven.GenerateOptions{})
		assert.Error(t, err)
	})

	t.Run("server down", func(t *testing.T) {
		svc := NewGenerationService(Config{BaseURL: "http://127.0.0.1:1"})
		_, err := svc.Generate(context.Background(), "p", driven.GenerateOptions{})
		assert.Error(t, err)
	})
}

func TestGenerationService_Ping(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/models", r.URL.Path)
			_, _ = w.Write([]byte(`{"data":[]}`))
		}))
		defer srv.Close()

		svc := NewGenerationService(Config{BaseURL: srv.URL})
		assert.NoError(t, svc.Ping(context.Background()))
	})

	t.Run("unreachable", func(t *testing.T) {
		svc := NewGenerationService(Config{BaseURL: "http://127.0.0.1:1"})
		assert.Error(t, svc.Ping(context.Background()))
	})

	t.Run("probe timeout is short", func(t *testing.T) {
		block := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			<-block
		}))
		defer srv.Close()
		defer close(block)

		svc := NewGenerationService(Config{BaseURL: srv.URL, ProbeTimeout: 50 * time.Millisecond})

		start := time.Now()
		err := svc.Ping(context.Background())
		assert.Error(t, err)
		assert.Less(t, time.Since(start), 5*time.Second)
	})
}

func TestGenerationService_Models(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"id":"gpt-oss-20b"},{"id":"qwen3-4b"}]}`))
	}))
	defer srv.Close()

	svc := NewGenerationService(Config{BaseURL: srv.URL})

	models, err := svc.Models(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-oss-20b", "qwen3-4b"}, models)
}
