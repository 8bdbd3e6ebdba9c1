package llm

import (
	"context"
	"time"
)

// scriptPreset controls replay pacing.
type scriptPreset struct {
	ChunkSize int
	Delay     time.Duration
}

var scriptPresets = map[string]scriptPreset{
	"normal": {ChunkSize: 12, Delay: 30 * time.Millisecond},
	"fast":   {ChunkSize: 64, Delay: 5 * time.Millisecond},
	"slow":   {ChunkSize: 4, Delay: 120 * time.Millisecond},
	"char":   {ChunkSize: 1, Delay: 15 * time.Millisecond},
}

// sampleMarkdown exercises every block type the renderer knows about.
const sampleMarkdown = "# Replay\n\nThis is **scripted** output with *styles*, `code`, and a [link](https://example.com).\n\n## Lists\n\n- first item\n- second item\n\n1. ordered one\n2. ordered two\n\n```go\nfunc main() {\n\tfmt.Println(\"hello\")\n}\n```\n\n| name | value |\n|------|-------|\n| a    | 1     |\n| b    | 2     |\n\n> Streaming replay complete.\n"

// ScriptProvider replays fixed text as a simulated token stream. It needs
// no credentials, so the chat UI and its streaming behavior can be
// exercised offline and deterministically.
type ScriptProvider struct {
	text    string
	variant string
	preset  scriptPreset
}

// NewScriptProvider creates a replay provider. An empty text falls back
// to a built-in markdown sample; an unknown variant falls back to
// "normal" pacing.
func NewScriptProvider(text, variant string) *ScriptProvider {
	if text == "" {
		text = sampleMarkdown
	}
	if variant == "" {
		variant = "normal"
	}
	preset, ok := scriptPresets[variant]
	if !ok {
		preset = scriptPresets["normal"]
	}
	return &ScriptProvider{text: text, variant: variant, preset: preset}
}

func (p *ScriptProvider) Name() string {
	if p.variant == "normal" {
		return "replay"
	}
	return "replay:" + p.variant
}

func (p *ScriptProvider) Stream(ctx context.Context, req Request) (Stream, error) {
	return newEventStream(ctx, func(ctx context.Context, events chan<- Event) error {
		text := p.text
		for len(text) > 0 {
			end := p.preset.ChunkSize
			if end > len(text) {
				end = len(text)
			}
			chunk := text[:end]
			text = text[end:]

			select {
			case <-ctx.Done():
				return ctx.Err()
			case events <- Event{Type: EventTextDelta, Text: chunk}:
			}

			if p.preset.Delay > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(p.preset.Delay):
				}
			}
		}

		events <- Event{Type: EventUsage, Use: &Usage{
			InputTokens:  len(req.Messages),
			OutputTokens: len(p.text) / 4,
		}}
		events <- Event{Type: EventDone}
		return nil
	}), nil
}
