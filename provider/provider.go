package provider

import (
	"context"
	"errors"

	"github.com/mohammad-safakhou/notescan/config"
	openai_provider "github.com/mohammad-safakhou/notescan/provider/openai"
)

// Client represents different LLM providers
type Client string

const (
	OpenAI    Client = "openai"
	Anthropic Client = "anthropic"
)

// ErrTimeout is returned when a collaborator call exceeds its deadline.
// Callers translate it into their own timeout error rather than hanging.
var ErrTimeout = openai_provider.ErrTimeout

// Provider is the generation collaborator: prompt in, untrusted text out.
// Every response must be re-validated by the caller before it becomes a
// domain object.
type Provider interface {
	// CompleteJSON sends a system+user prompt pair and returns the raw model
	// output, expected (but not guaranteed) to contain a JSON payload.
	CompleteJSON(ctx context.Context, system, user string) (string, error)
	// CreateEmbedding returns one embedding vector per input text.
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

// NewProvider creates a new LLM client based on the provided configuration
func NewProvider(client Client, cfg config.OpenAIConfig) (Provider, error) {
	switch client {
	case OpenAI:
		if cfg.APIKey == "" {
			return nil, errors.New("providers.openai.api_key not set")
		}
		return openai_provider.NewOpenAIClient(
			cfg.APIKey,
			cfg.BaseURL,
			cfg.CompletionModel,
			cfg.EmbeddingModel,
			cfg.Temperature,
			cfg.MaxTokens,
			cfg.Timeout,
		), nil
	case Anthropic:
		return nil, errors.New("anthropic client not implemented yet")
	default:
		return nil, errors.New("unsupported LLM provider")
	}
}
