package config

import "testing"

func TestExpandEnv(t *testing.T) {
	t.Setenv("TEST_API_KEY", "sk-test-123")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"dollar prefix", "$TEST_API_KEY", "sk-test-123"},
		{"braced", "${TEST_API_KEY}", "sk-test-123"},
		{"literal", "sk-literal-456", "sk-literal-456"},
		{"empty", "", ""},
		{"unset var", "$NO_SUCH_TERMCHAT_VAR", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandEnv(tt.input); got != tt.want {
				t.Errorf("expandEnv(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := &Config{Provider: "anthropic"}
	cfg.Anthropic.Model = "claude-sonnet-4-5"
	cfg.OpenAI.Model = "gpt-5.2"

	cfg.ApplyOverrides("openai", "gpt-5.2-mini")
	if cfg.Provider != "openai" {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.OpenAI.Model != "gpt-5.2-mini" {
		t.Errorf("openai model = %q", cfg.OpenAI.Model)
	}
	if cfg.Anthropic.Model != "claude-sonnet-4-5" {
		t.Errorf("anthropic model changed: %q", cfg.Anthropic.Model)
	}

	// Model override alone applies to the active provider.
	cfg.ApplyOverrides("", "gpt-next")
	if cfg.OpenAI.Model != "gpt-next" {
		t.Errorf("openai model = %q", cfg.OpenAI.Model)
	}
}

func TestResolveCredentialsEnvFallback(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-env-key")

	cfg := AnthropicConfig{}
	resolveAnthropicCredentials(&cfg)
	if cfg.APIKey != "sk-env-key" {
		t.Errorf("api key = %q", cfg.APIKey)
	}

	cfg = AnthropicConfig{APIKey: "sk-explicit"}
	resolveAnthropicCredentials(&cfg)
	if cfg.APIKey != "sk-explicit" {
		t.Errorf("explicit key overridden: %q", cfg.APIKey)
	}
}
