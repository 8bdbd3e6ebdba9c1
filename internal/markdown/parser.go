// Package markdown is a forgiving block parser for live-streaming assistant
// text. It favors stability over CommonMark completeness: input that is
// temporarily malformed mid-stream (an unclosed fence, a dangling "**")
// parses to something reasonable now and converges as more text arrives.
// Parse is pure and total; callers re-parse the full accumulated text as
// often as they like.
package markdown

import "strings"

type accumMode int

const (
	modeNone accumMode = iota
	modeCode
	modeList
	modeTable
)

// accum is the block accumulator threaded through the per-line step
// function. At most one of the payload groups is live, selected by mode.
type accum struct {
	mode accumMode

	// modeCode
	lang      string
	codeLines []string

	// modeList
	ordered bool
	items   [][]Span

	// modeTable
	header [][]Span
	rows   [][][]Span
}

// Parse converts the full accumulated text into display blocks. It never
// fails and never panics; equal input yields equal output. The empty
// string parses to no blocks.
func Parse(text string) []Block {
	if text == "" {
		return nil
	}
	raw := strings.Split(text, "\n")
	lines := make([]line, len(raw))
	for i, r := range raw {
		lines[i] = classifyLine(r)
	}

	var blocks []Block
	var st accum
	for i, ln := range lines {
		if st.mode == modeCode && ln.kind != lineFence {
			// Fence interiors are captured verbatim, whatever they
			// would otherwise classify as.
			st.codeLines = append(st.codeLines, ln.raw)
			continue
		}
		// A pipe line acts as a table header only when the next line
		// confirms it with a separator row. Without that confirmation
		// an isolated pipe line is ordinary prose.
		headerRole := ln.kind == lineTableRow &&
			(st.mode != modeTable || st.header == nil) &&
			i+1 < len(lines) && lines[i+1].kind == lineTableSep
		st, blocks = step(st, ln, headerRole, blocks)
	}
	return flush(st, blocks)
}

// step consumes one classified line and returns the next accumulator
// state plus any blocks the line caused to be emitted.
func step(st accum, ln line, headerRole bool, blocks []Block) (accum, []Block) {
	switch ln.kind {
	case lineFence:
		if st.mode == modeCode {
			blocks = append(blocks, Block{Kind: BlockCode, Lang: st.lang, Lines: st.codeLines})
			return accum{}, blocks
		}
		blocks = flush(st, blocks)
		return accum{mode: modeCode, lang: ln.info}, blocks

	case lineTableRow:
		cells := cellSpans(ln.cells)
		if st.mode == modeTable {
			if headerRole {
				st.header = cells
			} else {
				st.rows = append(st.rows, cells)
			}
			return st, blocks
		}
		if headerRole {
			blocks = flush(st, blocks)
			return accum{mode: modeTable, header: cells}, blocks
		}
		blocks = flush(st, blocks)
		blocks = append(blocks, Block{Kind: BlockParagraph, Spans: ParseInline(ln.raw)})
		return accum{}, blocks

	case lineTableSep:
		if st.mode == modeTable {
			// The header/body boundary itself carries no content.
			return st, blocks
		}
		blocks = flush(st, blocks)
		return accum{mode: modeTable}, blocks

	case lineListItem:
		if st.mode == modeList && st.ordered == ln.ordered {
			st.items = append(st.items, ParseInline(ln.text))
			return st, blocks
		}
		blocks = flush(st, blocks)
		return accum{mode: modeList, ordered: ln.ordered, items: [][]Span{ParseInline(ln.text)}}, blocks

	case lineHeading:
		blocks = flush(st, blocks)
		blocks = append(blocks, Block{Kind: BlockHeading, Level: ln.level, Spans: ParseInline(ln.text)})
		return accum{}, blocks

	case lineQuote:
		blocks = flush(st, blocks)
		blocks = append(blocks, Block{Kind: BlockQuote, Spans: ParseInline(ln.text)})
		return accum{}, blocks

	case lineSpacer:
		blocks = flush(st, blocks)
		blocks = append(blocks, Block{Kind: BlockSpacer})
		return accum{}, blocks

	default:
		blocks = flush(st, blocks)
		blocks = append(blocks, Block{Kind: BlockParagraph, Spans: ParseInline(ln.raw)})
		return accum{}, blocks
	}
}

// flush emits whatever block the accumulator holds. An unterminated code
// fence still becomes a code block; a table or list that never collected
// content emits nothing.
func flush(st accum, blocks []Block) []Block {
	switch st.mode {
	case modeCode:
		blocks = append(blocks, Block{Kind: BlockCode, Lang: st.lang, Lines: st.codeLines})
	case modeList:
		if len(st.items) > 0 {
			blocks = append(blocks, Block{Kind: BlockList, Ordered: st.ordered, Items: st.items})
		}
	case modeTable:
		if st.header != nil || len(st.rows) > 0 {
			blocks = append(blocks, Block{Kind: BlockTable, Header: st.header, Rows: st.rows})
		}
	}
	return blocks
}

func cellSpans(cells []string) [][]Span {
	out := make([][]Span, len(cells))
	for i, c := range cells {
		out[i] = ParseInline(c)
	}
	return out
}
