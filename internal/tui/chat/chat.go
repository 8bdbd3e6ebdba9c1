// Package chat is the interactive chat TUI. History lives in terminal
// scrollback: user input and settled assistant turns are printed with
// tea.Println, and only the in-flight response is rendered in the live
// view, re-parsed from its full accumulated text on a debounced tick.
package chat

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/termchat/termchat/internal/config"
	"github.com/termchat/termchat/internal/debuglog"
	"github.com/termchat/termchat/internal/llm"
	"github.com/termchat/termchat/internal/markdown"
	"github.com/termchat/termchat/internal/render"
	"github.com/termchat/termchat/internal/session"
	"github.com/termchat/termchat/internal/ui"
)

// Model is the main chat TUI model.
type Model struct {
	width  int
	height int

	textarea textarea.Model
	spinner  spinner.Model
	styles   *ui.Styles
	keyMap   KeyMap
	renderer *render.Renderer

	cfg      *config.Config
	provider llm.Provider
	store    session.Store
	sess     *session.Session
	messages []session.Message
	dbg      *debuglog.Logger

	// Streaming state
	streaming    bool
	current      strings.Builder
	streamErr    error
	streamStart  time.Time
	streamCancel func()
	events       chan llm.Event

	// Debounced re-render of the in-flight response
	liveView    string
	renderDirty bool
	tickPending bool

	quitting bool
	err      error
}

type (
	streamEventMsg  struct{ event llm.Event }
	streamClosedMsg struct{}
	renderTickMsg   time.Time
)

// New creates a new chat model. A nil session starts a fresh one; a
// nil debug logger disables stream logging.
func New(cfg *config.Config, provider llm.Provider, store session.Store, sess *session.Session, dbg *debuglog.Logger) *Model {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	styles := ui.NewStyles(os.Stdout)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	ta := textarea.New()
	ta.Placeholder = "Type a message..."
	ta.Prompt = "❯ "
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(width)
	ta.SetHeight(1)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle()
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(ui.GetTheme().Muted)
	ta.FocusedStyle.Prompt = lipgloss.NewStyle().Foreground(ui.GetTheme().Primary).Bold(true)
	ta.BlurredStyle = ta.FocusedStyle
	ta.Focus()

	if sess == nil {
		sess = &session.Session{
			ID:        session.NewID(),
			Provider:  provider.Name(),
			Model:     modelFor(cfg),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		_ = store.Create(context.Background(), sess)
	}

	var messages []session.Message
	if loaded, err := store.GetMessages(context.Background(), sess.ID, 0, 0); err == nil {
		messages = loaded
	}

	return &Model{
		width:    width,
		height:   height,
		textarea: ta,
		spinner:  s,
		styles:   styles,
		keyMap:   DefaultKeyMap(),
		renderer: render.New(render.Options{Width: width, Hyperlinks: true}),
		cfg:      cfg,
		provider: provider,
		store:    store,
		sess:     sess,
		messages: messages,
		dbg:      dbg,
	}
}

func modelFor(cfg *config.Config) string {
	switch cfg.Provider {
	case "openai":
		return cfg.OpenAI.Model
	case "anthropic":
		return cfg.Anthropic.Model
	default:
		return cfg.Provider
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if history := m.renderHistory(); history != "" {
		cmds = append(cmds, tea.Println(history))
	}
	return tea.Batch(cmds...)
}

// renderHistory renders previously persisted turns for session resume.
func (m *Model) renderHistory() string {
	var parts []string
	for _, msg := range m.messages {
		switch msg.Role {
		case llm.RoleUser:
			parts = append(parts, m.userLine(msg.Content))
		case llm.RoleAssistant:
			out := m.renderer.Render(markdown.Parse(msg.Content))
			if msg.StreamError != "" {
				out += "\n" + m.styles.Error.Render("✗ "+msg.StreamError)
			}
			parts = append(parts, out)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textarea.SetWidth(m.width)
		m.renderer = render.New(render.Options{Width: m.width, Hyperlinks: true})
		m.renderDirty = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.streaming {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case streamEventMsg:
		cmds = append(cmds, m.handleStreamEvent(msg.event)...)

	case streamClosedMsg:
		return m.finishStream()

	case renderTickMsg:
		m.tickPending = false
		if m.streaming && m.renderDirty {
			m.liveView = m.renderer.Render(markdown.Parse(m.current.String()))
			m.renderDirty = false
		}
		if m.streaming {
			cmds = append(cmds, m.renderTick())
		}
	}

	if !m.streaming {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		if m.streamCancel != nil {
			m.streamCancel()
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Cancel):
		if m.streaming && m.streamCancel != nil {
			m.streamCancel()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Send):
		if m.streaming {
			return m, nil
		}
		content := strings.TrimSpace(m.textarea.Value())
		if content == "" {
			return m, nil
		}
		return m.sendMessage(content)
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View renders the live portion of the UI: the in-flight response, a
// status line while streaming, and the input box.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	if m.streaming {
		if m.liveView != "" {
			b.WriteString(m.liveView)
			b.WriteString("\n")
		}
		elapsed := time.Since(m.streamStart).Round(time.Second)
		b.WriteString(m.spinner.View())
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf(" %s · %s · esc to cancel", m.provider.Name(), elapsed)))
		b.WriteString("\n")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("✗ " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.textarea.View())
	return b.String()
}

func (m *Model) userLine(content string) string {
	prompt := lipgloss.NewStyle().Foreground(ui.GetTheme().Primary).Bold(true).Render("❯ ")
	return prompt + content
}

// Run starts the chat TUI and blocks until it exits or ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, provider llm.Provider, store session.Store, sess *session.Session, dbg *debuglog.Logger) error {
	p := tea.NewProgram(New(cfg, provider, store, sess, dbg), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
