// Package openai provides a generation service adapter for
// OpenAI-compatible chat-completion APIs, including local inference
// servers such as LM Studio.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kotae-labs/kotae-cli/internal/core/ports/driven"
)

// Ensure GenerationService implements the interface.
var _ driven.GenerationService = (*GenerationService)(nil)

// Default configuration values. The defaults target a local LM Studio
// server; point BaseURL at api.openai.com for the hosted API.
const (
	DefaultBaseURL = "http://localhost:1234/v1"
	DefaultModel   = "gpt-oss-20b"

	// DefaultTimeout bounds the single synchronous completion request.
	// No retry is performed: one failure switches the caller to the
	// fallback answer path.
	DefaultTimeout = 30 * time.Second

	// DefaultProbeTimeout bounds the reachability probe.
	DefaultProbeTimeout = 3 * time.Second
)

// Config holds configuration for the generation service.
type Config struct {
	// BaseURL is the API base URL (default: http://localhost:1234/v1).
	BaseURL string

	// APIKey authenticates requests. Optional: local servers ignore it.
	APIKey string

	// Model is the chat model completions are sent to.
	Model string

	// Timeout is the completion request timeout (default: 30s).
	Timeout time.Duration

	// ProbeTimeout is the reachability probe timeout (default: 3s).
	ProbeTimeout time.Duration
}

// GenerationService produces answers via the /chat/completions endpoint
// of an OpenAI-compatible API.
type GenerationService struct {
	client      *http.Client
	probeClient *http.Client
	baseURL     string
	apiKey      string
	model       string
}

// chatCompletionRequest is the /chat/completions request format.
type chatCompletionRequest struct {
	Model       string              `json:"model"`
	Messages    []chatCompletionMsg `json:"messages"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature float64             `json:"temperature,omitempty"`
	Stream      bool                `json:"stream"`
}

// chatCompletionMsg is the chat message format.
type chatCompletionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse is the /chat/completions response format.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// modelsResponse is the /models response format.
type modelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// NewGenerationService creates a new generation service.
func NewGenerationService(cfg Config) *GenerationService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.ProbeTimeout == 0 {
		cfg.ProbeTimeout = DefaultProbeTimeout
	}

	return &GenerationService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		probeClient: &http.Client{
			Timeout: cfg.ProbeTimeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}
}

// Generate issues a single synchronous chat-completion request and
// returns the raw generated text.
func (s *GenerationService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	reqBody := chatCompletionRequest{
		Model: s.model,
		Messages: []chatCompletionMsg{
			{Role: "user", Content: prompt},
		},
		Stream: false,
	}
	if opts.MaxTokens > 0 {
		reqBody.MaxTokens = opts.MaxTokens
	}
	if opts.Temperature > 0 {
		reqBody.Temperature = opts.Temperature
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/chat/completions",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("generation error: %s", chatResp.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation error (status %d): %s", resp.StatusCode, string(body))
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("generation: no response choices returned")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// Ping probes the /models endpoint with the short probe timeout.
func (s *GenerationService) Ping(ctx context.Context) error {
	resp, err := s.modelsRequest(ctx)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("generation: API returned status %d", resp.StatusCode)
	}
	return nil
}

// Models returns the model identifiers advertised by the endpoint.
func (s *GenerationService) Models(ctx context.Context) ([]string, error) {
	resp, err := s.modelsRequest(ctx)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generation: API returned status %d", resp.StatusCode)
	}

	var models modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&models); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	ids := make([]string, 0, len(models.Data))
	for _, m := range models.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// modelsRequest issues a GET /models using the probe client.
func (s *GenerationService) modelsRequest(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/models", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("generation: failed to create probe request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.probeClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generation: probe failed: %w", err)
	}
	return resp, nil
}

// ModelName returns the model the service sends completions to.
func (s *GenerationService) ModelName() string {
	return s.model
}

// Close releases resources.
func (s *GenerationService) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
