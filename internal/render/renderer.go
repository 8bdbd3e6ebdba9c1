// Package render maps parsed markdown blocks to styled terminal output.
// It is deliberately separate from parsing: the parser produces structure,
// this package decides what that structure looks like at a given width.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"github.com/termchat/termchat/internal/markdown"
	"github.com/termchat/termchat/internal/ui"
)

// Options configures a Renderer.
type Options struct {
	Width      int       // Target width in cells (0 = no wrapping)
	Theme      *ui.Theme // nil = current global theme
	Hyperlinks bool      // Emit OSC 8 hyperlinks for links
}

// Renderer converts markdown blocks to ANSI text.
type Renderer struct {
	width int
	theme *ui.Theme
	links bool

	heading1 lipgloss.Style
	heading2 lipgloss.Style
	heading3 lipgloss.Style
	bold     lipgloss.Style
	italic   lipgloss.Style
	code     lipgloss.Style
	link     lipgloss.Style
	quote    lipgloss.Style
	bullet   lipgloss.Style
	lang     lipgloss.Style
}

func New(opts Options) *Renderer {
	theme := opts.Theme
	if theme == nil {
		theme = ui.GetTheme()
	}
	return &Renderer{
		width:    opts.Width,
		theme:    theme,
		links:    opts.Hyperlinks,
		heading1: lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		heading2: lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		heading3: lipgloss.NewStyle().Bold(true).Foreground(theme.Text),
		bold:     lipgloss.NewStyle().Bold(true),
		italic:   lipgloss.NewStyle().Italic(true),
		code:     lipgloss.NewStyle().Foreground(theme.Warning),
		link:     lipgloss.NewStyle().Underline(true).Foreground(theme.Secondary),
		quote:    lipgloss.NewStyle().Foreground(theme.Muted),
		bullet:   lipgloss.NewStyle().Foreground(theme.Primary),
		lang:     lipgloss.NewStyle().Foreground(theme.Muted),
	}
}

// Render converts blocks to terminal output, one block per line group.
func (r *Renderer) Render(blocks []markdown.Block) string {
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, r.renderBlock(b))
	}
	return strings.Join(out, "\n")
}

func (r *Renderer) renderBlock(b markdown.Block) string {
	switch b.Kind {
	case markdown.BlockHeading:
		return r.renderHeading(b)
	case markdown.BlockList:
		return r.renderList(b)
	case markdown.BlockTable:
		return r.renderTable(b)
	case markdown.BlockCode:
		return r.renderCode(b)
	case markdown.BlockQuote:
		return r.renderQuote(b)
	case markdown.BlockSpacer:
		return ""
	default:
		return r.wrap(r.renderSpans(b.Spans))
	}
}

func (r *Renderer) renderHeading(b markdown.Block) string {
	text := r.renderSpans(b.Spans)
	switch b.Level {
	case 1:
		return r.heading1.Render(text)
	case 2:
		return r.heading2.Render(text)
	default:
		return r.heading3.Render(text)
	}
}

func (r *Renderer) renderList(b markdown.Block) string {
	lines := make([]string, 0, len(b.Items))
	for i, item := range b.Items {
		marker := "• "
		if b.Ordered {
			marker = fmt.Sprintf("%d. ", i+1)
		}
		text := r.renderSpans(item)
		lines = append(lines, r.hangingIndent(r.bullet.Render(marker), len(marker), text))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderQuote(b markdown.Block) string {
	prefix := r.quote.Render("│ ")
	return r.hangingIndent(prefix, 2, r.quote.Render(r.renderSpans(b.Spans)))
}

func (r *Renderer) renderCode(b markdown.Block) string {
	h := NewHighlighter(b.Lang)
	lines := make([]string, 0, len(b.Lines)+1)
	if b.Lang != "" {
		lines = append(lines, r.lang.Render("  "+b.Lang))
	}
	for _, l := range b.Lines {
		lines = append(lines, "  "+h.HighlightLine(l))
	}
	return strings.Join(lines, "\n")
}

// renderSpans converts inline spans to a single styled string.
func (r *Renderer) renderSpans(spans []markdown.Span) string {
	var sb strings.Builder
	for _, s := range spans {
		switch s.Kind {
		case markdown.SpanBold:
			sb.WriteString(r.bold.Render(s.Text))
		case markdown.SpanItalic:
			sb.WriteString(r.italic.Render(s.Text))
		case markdown.SpanCode:
			sb.WriteString(r.code.Render(s.Text))
		case markdown.SpanLink:
			sb.WriteString(r.renderLink(s))
		default:
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}

func (r *Renderer) renderLink(s markdown.Span) string {
	if r.links && s.URL != "" {
		return termenv.Hyperlink(s.URL, r.link.Render(s.Text))
	}
	if s.URL == "" {
		return r.link.Render(s.Text)
	}
	return r.link.Render(s.Text) + r.quote.Render(" ("+s.URL+")")
}

// wrap word-wraps styled text to the renderer width.
func (r *Renderer) wrap(s string) string {
	if r.width <= 0 {
		return s
	}
	return wordwrap.String(s, r.width)
}

// hangingIndent renders "prefix text" with continuation lines indented
// past the prefix, so wrapped list items and quotes stay aligned.
func (r *Renderer) hangingIndent(prefix string, prefixWidth int, text string) string {
	wrapped := text
	if r.width > prefixWidth {
		wrapped = wordwrap.String(text, r.width-prefixWidth)
	}
	lines := strings.Split(wrapped, "\n")
	pad := strings.Repeat(" ", prefixWidth)
	for i, l := range lines {
		if i == 0 {
			lines[i] = prefix + l
		} else {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}
