package llm

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

// drainText collects streamed text until EOF, returning the concatenated
// deltas and the terminal event types seen.
func drainText(t *testing.T, s Stream) (string, []EventType) {
	t.Helper()
	var sb strings.Builder
	var tail []EventType
	for {
		ev, err := s.Recv()
		if err == io.EOF {
			return sb.String(), tail
		}
		if err != nil {
			t.Fatalf("Recv: %v", err)
		}
		switch ev.Type {
		case EventTextDelta:
			sb.WriteString(ev.Text)
		default:
			tail = append(tail, ev.Type)
		}
	}
}

func TestScriptProviderReplaysText(t *testing.T) {
	p := NewScriptProvider("hello world", "fast")
	stream, err := p.Stream(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	defer stream.Close()

	text, tail := drainText(t, stream)
	if text != "hello world" {
		t.Errorf("replayed text = %q", text)
	}
	if len(tail) != 2 || tail[0] != EventUsage || tail[1] != EventDone {
		t.Errorf("terminal events = %v, want [usage done]", tail)
	}
}

func TestScriptProviderDefaultSample(t *testing.T) {
	p := NewScriptProvider("", "fast")
	stream, err := p.Stream(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	defer stream.Close()

	text, _ := drainText(t, stream)
	if !strings.Contains(text, "```go") {
		t.Errorf("sample should contain a code fence, got %q", text)
	}
}

func TestScriptProviderName(t *testing.T) {
	if got := NewScriptProvider("", "").Name(); got != "replay" {
		t.Errorf("Name() = %q", got)
	}
	if got := NewScriptProvider("", "slow").Name(); got != "replay:slow" {
		t.Errorf("Name() = %q", got)
	}
}

func TestScriptProviderCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewScriptProvider(strings.Repeat("x", 1<<16), "slow")
	stream, err := p.Stream(ctx, Request{})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	cancel()

	// The producer must terminate; eventually Recv reaches EOF or an
	// error event carrying context.Canceled.
	for {
		ev, err := stream.Recv()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("Recv: %v", err)
		}
		if ev.Type == EventError {
			if !errors.Is(ev.Err, context.Canceled) {
				t.Errorf("error = %v, want context.Canceled", ev.Err)
			}
		}
	}
}

func TestEventStreamSurfacesProducerError(t *testing.T) {
	boom := errors.New("boom")
	s := newEventStream(context.Background(), func(ctx context.Context, events chan<- Event) error {
		events <- Event{Type: EventTextDelta, Text: "partial"}
		return boom
	})

	ev, err := s.Recv()
	if err != nil || ev.Type != EventTextDelta {
		t.Fatalf("first event = %v, %v", ev, err)
	}
	ev, err = s.Recv()
	if err != nil || ev.Type != EventError || !errors.Is(ev.Err, boom) {
		t.Fatalf("second event = %v, %v, want error event", ev, err)
	}
	if _, err := s.Recv(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}
