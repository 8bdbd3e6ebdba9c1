package markdown

import (
	"reflect"
	"strings"
	"testing"
)

// kinds extracts the block kind sequence for shape assertions.
func kinds(blocks []Block) []BlockKind {
	out := make([]BlockKind, len(blocks))
	for i, b := range blocks {
		out[i] = b.Kind
	}
	return out
}

func requireKinds(t *testing.T, blocks []Block, want ...BlockKind) {
	t.Helper()
	if !reflect.DeepEqual(kinds(blocks), want) {
		t.Fatalf("block kinds = %v, want %v", kinds(blocks), want)
	}
}

func TestParseEmpty(t *testing.T) {
	if got := Parse(""); got != nil {
		t.Errorf("Parse(\"\") = %v, want nil", got)
	}
}

func TestParseParagraphs(t *testing.T) {
	blocks := Parse("first line\nsecond line")
	requireKinds(t, blocks, BlockParagraph, BlockParagraph)
	if got := PlainText(blocks[0].Spans); got != "first line" {
		t.Errorf("first paragraph = %q", got)
	}
}

func TestParseHeadings(t *testing.T) {
	blocks := Parse("# One\n## Two\n### Three\n#### Four")
	requireKinds(t, blocks, BlockHeading, BlockHeading, BlockHeading, BlockParagraph)
	for i, want := range []int{1, 2, 3} {
		if blocks[i].Level != want {
			t.Errorf("heading %d level = %d, want %d", i, blocks[i].Level, want)
		}
	}
}

func TestParseCodeFence(t *testing.T) {
	blocks := Parse("```\ncode\n```")
	requireKinds(t, blocks, BlockCode)
	if !reflect.DeepEqual(blocks[0].Lines, []string{"code"}) {
		t.Errorf("code lines = %v, want [code]", blocks[0].Lines)
	}
}

func TestParseCodeFenceLanguage(t *testing.T) {
	blocks := Parse("```go\nfmt.Println(1)\n```")
	requireKinds(t, blocks, BlockCode)
	if blocks[0].Lang != "go" {
		t.Errorf("lang = %q, want go", blocks[0].Lang)
	}
}

func TestParseCodeFenceVerbatimInterior(t *testing.T) {
	// Nothing inside a fence is reinterpreted, including lines that look
	// like headings, lists or **markers**.
	src := "```\n# not a heading\n- not a list\n**not bold**\n```"
	blocks := Parse(src)
	requireKinds(t, blocks, BlockCode)
	want := []string{"# not a heading", "- not a list", "**not bold**"}
	if !reflect.DeepEqual(blocks[0].Lines, want) {
		t.Errorf("code lines = %v, want %v", blocks[0].Lines, want)
	}
}

func TestParseUnterminatedFence(t *testing.T) {
	blocks := Parse("```python\nx = 1\ny = 2")
	requireKinds(t, blocks, BlockCode)
	if blocks[0].Lang != "python" {
		t.Errorf("lang = %q, want python", blocks[0].Lang)
	}
	if !reflect.DeepEqual(blocks[0].Lines, []string{"x = 1", "y = 2"}) {
		t.Errorf("code lines = %v", blocks[0].Lines)
	}
}

func TestParseEmptyFencePair(t *testing.T) {
	blocks := Parse("```\n```")
	requireKinds(t, blocks, BlockCode)
	if len(blocks[0].Lines) != 0 {
		t.Errorf("code lines = %v, want none", blocks[0].Lines)
	}
}

func TestParseUnorderedList(t *testing.T) {
	blocks := Parse("- one\n- two\n- three")
	requireKinds(t, blocks, BlockList)
	if blocks[0].Ordered {
		t.Error("list should be unordered")
	}
	if len(blocks[0].Items) != 3 {
		t.Fatalf("items = %d, want 3", len(blocks[0].Items))
	}
	if got := PlainText(blocks[0].Items[1]); got != "two" {
		t.Errorf("item 1 = %q", got)
	}
}

func TestParseOrderedList(t *testing.T) {
	blocks := Parse("1. first\n2. second")
	requireKinds(t, blocks, BlockList)
	if !blocks[0].Ordered {
		t.Error("list should be ordered")
	}
}

func TestParseListMarkerChange(t *testing.T) {
	// Switching marker families splits the list.
	blocks := Parse("- a\n1. b")
	requireKinds(t, blocks, BlockList, BlockList)
	if blocks[0].Ordered || !blocks[1].Ordered {
		t.Errorf("ordered flags = %v %v", blocks[0].Ordered, blocks[1].Ordered)
	}
}

func TestParseListEndsAtPlain(t *testing.T) {
	blocks := Parse("- a\n- b\nplain after")
	requireKinds(t, blocks, BlockList, BlockParagraph)
	if len(blocks[0].Items) != 2 {
		t.Errorf("items = %d, want 2", len(blocks[0].Items))
	}
}

func TestParseListItemInline(t *testing.T) {
	blocks := Parse("- has **bold** text")
	requireKinds(t, blocks, BlockList)
	item := blocks[0].Items[0]
	if len(item) != 3 || item[1].Kind != SpanBold || item[1].Text != "bold" {
		t.Errorf("item spans = %v", item)
	}
}

func TestParseTable(t *testing.T) {
	blocks := Parse("| a | b |\n|---|---|\n| 1 | 2 |\n| 3 | 4 |")
	requireKinds(t, blocks, BlockTable)
	tbl := blocks[0]
	if len(tbl.Header) != 2 || PlainText(tbl.Header[0]) != "a" {
		t.Errorf("header = %v", tbl.Header)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(tbl.Rows))
	}
	if got := PlainText(tbl.Rows[1][1]); got != "4" {
		t.Errorf("row[1][1] = %q", got)
	}
}

func TestParseTableRejection(t *testing.T) {
	// A pipe line not followed by a separator is prose, not a table.
	blocks := Parse("a | b\nsome text")
	requireKinds(t, blocks, BlockParagraph, BlockParagraph)
	if got := PlainText(blocks[0].Spans); got != "a | b" {
		t.Errorf("first paragraph = %q", got)
	}
}

func TestParseTablePipeLineAlone(t *testing.T) {
	blocks := Parse("a | b")
	requireKinds(t, blocks, BlockParagraph)
}

func TestParseTableEndsAtPlain(t *testing.T) {
	blocks := Parse("| h |\n|---|\n| r |\nafter")
	requireKinds(t, blocks, BlockTable, BlockParagraph)
	if len(blocks[0].Rows) != 1 {
		t.Errorf("rows = %d, want 1", len(blocks[0].Rows))
	}
}

func TestParseTableSeparatorAlone(t *testing.T) {
	// A stray separator opens a table that never collects content and
	// therefore emits nothing.
	blocks := Parse("---|---")
	if len(blocks) != 0 {
		t.Errorf("blocks = %v, want none", blocks)
	}
}

func TestParseBlockquote(t *testing.T) {
	blocks := Parse("> quoted **loud**")
	requireKinds(t, blocks, BlockQuote)
	if len(blocks[0].Spans) != 2 || blocks[0].Spans[1].Kind != SpanBold {
		t.Errorf("spans = %v", blocks[0].Spans)
	}
}

func TestParseSpacer(t *testing.T) {
	blocks := Parse("a\n\nb")
	requireKinds(t, blocks, BlockParagraph, BlockSpacer, BlockParagraph)
}

func TestParseSpacerFlushesList(t *testing.T) {
	blocks := Parse("- a\n\n- b")
	requireKinds(t, blocks, BlockList, BlockSpacer, BlockList)
}

func TestParseMixedDocument(t *testing.T) {
	src := strings.Join([]string{
		"# Title",
		"",
		"Intro with *style*.",
		"- item one",
		"- item two",
		"```sh",
		"echo hi",
		"```",
		"| k | v |",
		"|---|---|",
		"| a | 1 |",
		"> closing thought",
	}, "\n")
	blocks := Parse(src)
	requireKinds(t, blocks,
		BlockHeading, BlockSpacer, BlockParagraph, BlockList,
		BlockCode, BlockTable, BlockQuote)
}

func TestParseDeterminism(t *testing.T) {
	src := "# h\n- a\n- b\n```\nx\n```\n| a |\n|---|\n| b |"
	first := Parse(src)
	for i := 0; i < 5; i++ {
		if got := Parse(src); !reflect.DeepEqual(got, first) {
			t.Fatalf("parse %d differs: %v vs %v", i, got, first)
		}
	}
}

func TestParseTotality(t *testing.T) {
	// None of these may panic or error; any output shape is acceptable.
	inputs := []string{
		"\n\n\n",
		"```",
		"``````",
		"|",
		"||||",
		"---|",
		"**",
		"* ",
		"#",
		"# ",
		"> ",
		"1.",
		strings.Repeat("- x\n", 100),
		strings.Repeat("|", 50),
		"```\n```\n```",
		"\x00\x01weird\xffbytes",
	}
	for _, in := range inputs {
		_ = Parse(in)
	}
}

// TestParseStreamingStability feeds every prefix of a document through
// Parse, simulating re-parse cadence during token streaming. Each prefix
// must parse cleanly and partially-arrived markers must stay literal.
func TestParseStreamingStability(t *testing.T) {
	full := "# Title\n\nSome **bold** text.\n```go\ncode\n```\n- item\n| a | b |\n|---|---|\n| 1 | 2 |"
	for i := 0; i <= len(full); i++ {
		_ = Parse(full[:i])
	}

	blocks := Parse("**bo")
	requireKinds(t, blocks, BlockParagraph)
	want := []Span{{Kind: SpanText, Text: "**bo"}}
	if !reflect.DeepEqual(blocks[0].Spans, want) {
		t.Errorf("spans = %v, want %v", blocks[0].Spans, want)
	}

	blocks = Parse("**bold**")
	requireKinds(t, blocks, BlockParagraph)
	if len(blocks[0].Spans) != 1 || blocks[0].Spans[0].Kind != SpanBold {
		t.Errorf("spans = %v, want one bold span", blocks[0].Spans)
	}
}

func TestParseTrailingNewline(t *testing.T) {
	// A trailing newline introduces a final empty line, read as a spacer.
	blocks := Parse("hello\n")
	requireKinds(t, blocks, BlockParagraph, BlockSpacer)
}
