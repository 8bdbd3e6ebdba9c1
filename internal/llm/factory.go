package llm

import (
	"fmt"
	"os"

	"github.com/termchat/termchat/internal/config"
)

// NewProvider creates an LLM provider based on the config.
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.Provider {
	case "anthropic":
		if cfg.Anthropic.APIKey == "" {
			return nil, fmt.Errorf("anthropic API key not configured. Set ANTHROPIC_API_KEY or add to config")
		}
		return NewAnthropicProvider(cfg.Anthropic.APIKey, cfg.Anthropic.Model), nil
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("openai API key not configured. Set OPENAI_API_KEY or add to config")
		}
		return NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.Model), nil
	case "replay":
		text := ""
		if cfg.Replay.File != "" {
			data, err := os.ReadFile(cfg.Replay.File)
			if err != nil {
				return nil, fmt.Errorf("failed to read replay file: %w", err)
			}
			text = string(data)
		}
		return NewScriptProvider(text, cfg.Replay.Variant), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
