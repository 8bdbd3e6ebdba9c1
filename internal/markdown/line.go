package markdown

import "strings"

// lineKind is the lexical category of a single input line.
type lineKind int

const (
	linePlain lineKind = iota
	lineFence
	lineTableRow
	lineTableSep
	lineListItem
	lineHeading
	lineQuote
	lineSpacer
)

// line is the classified form of one newline-stripped input line.
type line struct {
	kind    lineKind
	raw     string   // original content, unmodified
	text    string   // marker-stripped remainder for list/heading/quote
	level   int      // heading level (1..3)
	ordered bool     // list marker kind
	cells   []string // table row cells
	info    string   // fence info string (language tag)
}

const fenceMarker = "```"

// classifyLine categorizes one line. Classification is independent of
// accumulator state; the parser decides how fence interiors and table
// header roles are treated.
func classifyLine(s string) line {
	if strings.HasPrefix(s, fenceMarker) {
		return line{kind: lineFence, raw: s, info: strings.TrimSpace(s[len(fenceMarker):])}
	}
	if strings.Contains(s, "|") && !isQuoteLine(s) {
		if isTableSeparator(s) {
			return line{kind: lineTableSep, raw: s}
		}
		return line{kind: lineTableRow, raw: s, cells: splitCells(s)}
	}
	if ok, text := parseUnorderedItem(s); ok {
		return line{kind: lineListItem, raw: s, text: text}
	}
	if ok, text := parseOrderedItem(s); ok {
		return line{kind: lineListItem, raw: s, text: text, ordered: true}
	}
	if level, text, ok := parseHeading(s); ok {
		return line{kind: lineHeading, raw: s, text: text, level: level}
	}
	if isQuoteLine(s) {
		return line{kind: lineQuote, raw: s, text: strings.TrimLeft(s[2:], " \t")}
	}
	if strings.TrimSpace(s) == "" {
		return line{kind: lineSpacer, raw: s}
	}
	return line{kind: linePlain, raw: s}
}

func isQuoteLine(s string) bool {
	return strings.HasPrefix(s, "> ")
}

// isTableSeparator reports whether a line is a header/body boundary row:
// only dashes, colons, pipes and whitespace, with at least one dash.
func isTableSeparator(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || !strings.Contains(trimmed, "-") {
		return false
	}
	for _, r := range trimmed {
		switch r {
		case '-', ':', '|', ' ', '\t':
		default:
			return false
		}
	}
	return true
}

// splitCells extracts table cells: outer pipes are trimmed, the rest is
// split on '|' and each cell trimmed of surrounding whitespace.
func splitCells(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "|")
	s = strings.TrimSuffix(s, "|")
	parts := strings.Split(s, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

func parseUnorderedItem(s string) (bool, string) {
	if len(s) < 2 {
		return false, ""
	}
	if s[0] != '-' && s[0] != '*' {
		return false, ""
	}
	if s[1] != ' ' && s[1] != '\t' {
		return false, ""
	}
	return true, strings.TrimLeft(s[2:], " \t")
}

func parseOrderedItem(s string) (bool, string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i+1 >= len(s) || s[i] != '.' {
		return false, ""
	}
	if s[i+1] != ' ' && s[i+1] != '\t' {
		return false, ""
	}
	return true, strings.TrimLeft(s[i+2:], " \t")
}

func parseHeading(s string) (int, string, bool) {
	level := 0
	for level < len(s) && s[level] == '#' {
		level++
	}
	if level == 0 || level > 3 {
		return 0, "", false
	}
	if level >= len(s) || (s[level] != ' ' && s[level] != '\t') {
		return 0, "", false
	}
	return level, strings.TrimSpace(s[level:]), true
}
