package ai

import (
	"context"
	"fmt"

	"tripdraft/internal/config"
)

// NewProvider builds the configured provider. It returns a nil provider and
// no error when generation is disabled for lack of a credential.
func NewProvider(ctx context.Context, cfg config.AIConfig) (LLMProvider, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	switch cfg.Provider {
	case config.ProviderGemini:
		p, err := NewGeminiProvider(ctx, cfg.GeminiKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg.OpenAIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}
