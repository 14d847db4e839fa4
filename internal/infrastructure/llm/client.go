package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"referhub/internal/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

var ErrUnavailable = errors.New("llm unavailable")

type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Client struct {
	model  llms.Model
	logger *log.Logger
}

// New builds a Gemini-backed client. Without an API key it returns a
// Disabled completer so the rest of the app still starts.
func New(ctx context.Context, cfg config.LLMConfig, logger *log.Logger) (Completer, error) {
	if !cfg.Enabled() {
		if logger != nil {
			logger.Printf("[LLM] GEMINI_API_KEY not set, AI features disabled")
		}
		return Disabled{}, nil
	}

	model, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return NewWithModel(model, logger), nil
}

func NewWithModel(model llms.Model, logger *log.Logger) *Client {
	return &Client{model: model, logger: logger}
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.model == nil {
		return "", ErrUnavailable
	}
	out, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt, llms.WithTemperature(0.2))
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("[LLM] completion failed: %v", err)
		}
		return "", err
	}
	return out, nil
}

type Disabled struct{}

func (Disabled) Complete(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

// StripCodeFence removes a surrounding ```json fence models like to add
// even when told not to.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
