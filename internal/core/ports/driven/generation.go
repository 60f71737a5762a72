package driven

import "context"

// GenerateOptions controls a single generation request.
type GenerateOptions struct {
	// MaxTokens limits the completion length (0 = server default).
	MaxTokens int

	// Temperature controls sampling randomness (0 = server default).
	Temperature float64
}

// GenerationService produces natural-language answers via an external
// chat-completion endpoint. The core treats it as an availability-gated
// collaborator: a failed probe or a failed request switches the caller to
// the deterministic fallback path, never to an error.
type GenerationService interface {
	// Generate issues a single synchronous chat-completion request with
	// the given user prompt and returns the raw generated text.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Ping probes the endpoint's model-listing route with a short timeout.
	// A nil return means the endpoint is considered reachable.
	Ping(ctx context.Context) error

	// Models returns the identifiers advertised by the endpoint.
	Models(ctx context.Context) ([]string, error)

	// ModelName returns the model the service sends completions to.
	ModelName() string

	// Close releases resources.
	Close() error
}

// Reporter receives progress and status notifications from core services.
// It replaces any runtime "is a UI present" check: callers inject either an
// interactive implementation or a headless no-op one.
type Reporter interface {
	// Infof reports normal progress.
	Infof(format string, args ...any)

	// Warnf reports recoverable conditions, such as a skipped document.
	Warnf(format string, args ...any)

	// Errorf reports failures that were handled locally.
	Errorf(format string, args ...any)
}
