package markdown

// BlockKind identifies the structural type of a parsed block.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockList
	BlockTable
	BlockCode
	BlockQuote
	BlockSpacer
)

// Block is one structural unit of parsed content. Kind selects which
// payload fields are meaningful; unused fields are zero.
type Block struct {
	Kind BlockKind

	// Paragraph, Heading, Blockquote
	Spans []Span

	// Heading level (1..3)
	Level int

	// List
	Ordered bool
	Items   [][]Span

	// Table. Header is nil when the table had no separator-confirmed
	// header row.
	Header [][]Span
	Rows   [][][]Span

	// Code block. Lines are verbatim source lines, never inline-parsed.
	// Lang is the fence info string ("go", "python", ...) or empty.
	Lang  string
	Lines []string
}

// SpanKind identifies the style of an inline span.
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanBold
	SpanItalic
	SpanCode
	SpanLink
)

// Span is an inline styled fragment within a block's text.
// URL is set only for SpanLink, where Text holds the label.
type Span struct {
	Kind SpanKind
	Text string
	URL  string
}

// PlainText returns the concatenated text of all spans, ignoring styling.
// Link spans contribute their label.
func PlainText(spans []Span) string {
	var out string
	for _, s := range spans {
		out += s.Text
	}
	return out
}
