package chat

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/termchat/termchat/internal/debuglog"
	"github.com/termchat/termchat/internal/llm"
	"github.com/termchat/termchat/internal/markdown"
	"github.com/termchat/termchat/internal/session"
)

func (m *Model) sendMessage(content string) (tea.Model, tea.Cmd) {
	userMsg := session.NewMessage(m.sess.ID, llm.UserText(content), -1)
	m.messages = append(m.messages, *userMsg)
	_ = m.store.AddMessage(context.Background(), m.sess.ID, userMsg)

	// First user message doubles as the session summary
	if m.sess.Summary == "" {
		m.sess.Summary = session.TruncateSummary(content)
		_ = m.store.Update(context.Background(), m.sess)
	}

	m.textarea.Reset()
	m.streaming = true
	m.streamStart = time.Now()
	m.streamErr = nil
	m.err = nil
	m.current.Reset()
	m.liveView = ""
	m.renderDirty = false
	m.tickPending = false

	return m, tea.Batch(
		tea.Println(m.userLine(content)),
		m.startStream(),
		m.spinner.Tick,
		m.renderTick(),
	)
}

// buildMessages assembles the provider request from the system prompt and
// the persisted conversation history.
func (m *Model) buildMessages() []llm.Message {
	var out []llm.Message
	if m.cfg.Chat.System != "" {
		out = append(out, llm.SystemText(m.cfg.Chat.System))
	}
	for _, msg := range m.messages {
		out = append(out, msg.ToLLMMessage())
	}
	return out
}

// startStream opens the provider stream and pumps its events into a
// channel the update loop drains one event per tea message.
func (m *Model) startStream() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		m.streamCancel = cancel

		req := llm.Request{
			Messages:        m.buildMessages(),
			MaxOutputTokens: m.cfg.Chat.MaxOutputTokens,
			Temperature:     m.cfg.Chat.Temperature,
		}

		m.dbg.Log(debuglog.Entry{
			Kind:      "request",
			SessionID: m.sess.ID,
			Provider:  m.provider.Name(),
			Detail:    req.Messages,
		})

		stream, err := m.provider.Stream(ctx, req)
		if err != nil {
			cancel()
			return streamEventMsg{event: llm.Event{Type: llm.EventError, Err: err}}
		}

		events := make(chan llm.Event, 16)
		m.events = events
		go func() {
			defer close(events)
			defer stream.Close()
			for {
				ev, err := stream.Recv()
				if err == io.EOF {
					return
				}
				if err != nil {
					events <- llm.Event{Type: llm.EventError, Err: err}
					return
				}
				events <- ev
			}
		}()
		return m.waitForEvent()()
	}
}

// waitForEvent blocks on the next stream event.
func (m *Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return streamClosedMsg{}
		}
		return streamEventMsg{event: ev}
	}
}

func (m *Model) handleStreamEvent(ev llm.Event) []tea.Cmd {
	switch ev.Type {
	case llm.EventTextDelta:
		m.current.WriteString(ev.Text)
		m.renderDirty = true
		m.dbg.Log(debuglog.Entry{Kind: "delta", Text: ev.Text})
	case llm.EventUsage:
		m.dbg.Log(debuglog.Entry{Kind: "usage", Detail: ev.Use})
		if ev.Use != nil {
			m.sess.InputTokens += ev.Use.InputTokens
			m.sess.OutputTokens += ev.Use.OutputTokens
			_ = m.store.AddTokens(context.Background(), m.sess.ID, ev.Use.InputTokens, ev.Use.OutputTokens)
		}
	case llm.EventError:
		// Partial text already received stays on the message; the error
		// is attached to the same turn when the stream settles.
		m.streamErr = ev.Err
		m.dbg.Log(debuglog.Entry{Kind: "error", Text: ev.Err.Error()})
	}
	if m.events == nil {
		// The stream failed to open; there is no channel to drain.
		return []tea.Cmd{func() tea.Msg { return streamClosedMsg{} }}
	}
	return []tea.Cmd{m.waitForEvent()}
}

// finishStream settles the in-flight response: persist it (with any
// stream error), print the final render to scrollback, reset live state.
func (m *Model) finishStream() (tea.Model, tea.Cmd) {
	m.streaming = false
	m.events = nil
	if m.streamCancel != nil {
		m.streamCancel()
		m.streamCancel = nil
	}

	content := m.current.String()
	status := session.StatusComplete

	assistant := session.NewMessage(m.sess.ID, llm.AssistantText(content), -1)
	assistant.DurationMs = time.Since(m.streamStart).Milliseconds()
	if m.streamErr != nil {
		assistant.StreamError = m.streamErr.Error()
		status = session.StatusError
		if errors.Is(m.streamErr, context.Canceled) {
			status = session.StatusInterrupted
		}
	}

	if content != "" || assistant.StreamError != "" {
		m.messages = append(m.messages, *assistant)
		_ = m.store.AddMessage(context.Background(), m.sess.ID, assistant)
	}
	_ = m.store.UpdateStatus(context.Background(), m.sess.ID, status)
	m.dbg.Log(debuglog.Entry{Kind: "done", SessionID: m.sess.ID, Detail: status})

	out := m.renderer.Render(markdown.Parse(content))
	if assistant.StreamError != "" {
		if out != "" {
			out += "\n"
		}
		out += m.styles.Error.Render("✗ " + assistant.StreamError)
	}

	m.current.Reset()
	m.liveView = ""
	m.renderDirty = false
	m.textarea.Focus()

	if out == "" {
		return m, textarea.Blink
	}
	return m, tea.Batch(tea.Println(out), textarea.Blink)
}

// renderTick schedules the next debounced live re-render.
func (m *Model) renderTick() tea.Cmd {
	if m.tickPending {
		return nil
	}
	m.tickPending = true
	interval := time.Duration(m.cfg.Chat.DebounceMS) * time.Millisecond
	if interval <= 0 {
		interval = 33 * time.Millisecond
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return renderTickMsg(t)
	})
}
