package markdown

import (
	"strings"
	"unicode/utf8"
)

// ParseInline converts one plain-text run into an ordered span sequence.
// A single left-to-right scan attempts, in priority order: bold (**x**),
// italic (*x*), inline code (`x`), link ([label](url)). Matched content is
// captured verbatim and never reinterpreted; text between matches collects
// into plain spans. A delimiter with no closing counterpart (common while
// text is still streaming in) stays literal plain text. An empty input
// yields a nil slice.
func ParseInline(s string) []Span {
	if s == "" {
		return nil
	}
	var spans []Span
	var plain strings.Builder
	flushPlain := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Kind: SpanText, Text: plain.String()})
			plain.Reset()
		}
	}
	i := 0
	for i < len(s) {
		if span, n, ok := matchSpan(s, i); ok {
			flushPlain()
			spans = append(spans, span)
			i += n
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		plain.WriteRune(r)
		i += size
	}
	flushPlain()
	return spans
}

// matchSpan attempts a styled-span match at position i. It returns the
// span and the number of input bytes it consumed. All matches require
// non-empty captured content; "**" inside "**bo" must not read as an
// empty italic.
func matchSpan(s string, i int) (Span, int, bool) {
	switch s[i] {
	case '*':
		if strings.HasPrefix(s[i:], "**") {
			if end := strings.Index(s[i+2:], "**"); end > 0 {
				return Span{Kind: SpanBold, Text: s[i+2 : i+2+end]}, end + 4, true
			}
		}
		if end := strings.Index(s[i+1:], "*"); end > 0 {
			return Span{Kind: SpanItalic, Text: s[i+1 : i+1+end]}, end + 2, true
		}
	case '`':
		if end := strings.Index(s[i+1:], "`"); end > 0 {
			return Span{Kind: SpanCode, Text: s[i+1 : i+1+end]}, end + 2, true
		}
	case '[':
		if sep := strings.Index(s[i:], "]("); sep > 1 {
			rest := s[i+sep+2:]
			if end := strings.Index(rest, ")"); end >= 0 {
				return Span{
					Kind: SpanLink,
					Text: s[i+1 : i+sep],
					URL:  rest[:end],
				}, sep + 2 + end + 1, true
			}
		}
	}
	return Span{}, 0, false
}
