package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/termchat/termchat/internal/markdown"
	"github.com/termchat/termchat/internal/ui"
)

// renderTable lays out a table with per-column widths measured on the
// already-styled cell text, so ANSI codes do not skew alignment. Ragged
// rows are tolerated; short rows render with trailing empty cells.
func (r *Renderer) renderTable(b markdown.Block) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(r.theme.Secondary)

	var header []string
	for _, c := range b.Header {
		header = append(header, headerStyle.Render(markdown.PlainText(c)))
	}
	rows := make([][]string, len(b.Rows))
	for i, row := range b.Rows {
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = r.renderSpans(c)
		}
		rows[i] = cells
	}

	widths := columnWidths(header, rows)

	var lines []string
	if len(header) > 0 {
		lines = append(lines, joinCells(header, widths))
		lines = append(lines, r.quote.Render(separatorLine(widths)))
	}
	for _, row := range rows {
		lines = append(lines, joinCells(row, widths))
	}
	return strings.Join(lines, "\n")
}

// columnWidths returns the display width of the widest cell per column.
func columnWidths(header []string, rows [][]string) []int {
	cols := len(header)
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	widths := make([]int, cols)
	measure := func(row []string) {
		for i, c := range row {
			if w := ui.ANSILen(c); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}
	return widths
}

func joinCells(cells []string, widths []int) string {
	padded := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = cell + strings.Repeat(" ", w-ui.ANSILen(cell))
	}
	return strings.TrimRight(strings.Join(padded, "  "), " ")
}

func separatorLine(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w)
	}
	return strings.Join(parts, "  ")
}
