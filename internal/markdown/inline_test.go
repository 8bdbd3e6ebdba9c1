package markdown

import (
	"reflect"
	"testing"
)

func text(s string) Span   { return Span{Kind: SpanText, Text: s} }
func bold(s string) Span   { return Span{Kind: SpanBold, Text: s} }
func italic(s string) Span { return Span{Kind: SpanItalic, Text: s} }
func code(s string) Span   { return Span{Kind: SpanCode, Text: s} }
func link(label, url string) Span {
	return Span{Kind: SpanLink, Text: label, URL: url}
}

func TestParseInline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Span
	}{
		{"empty", "", nil},
		{"plain", "just text", []Span{text("just text")}},
		{"bold", "**bold**", []Span{bold("bold")}},
		{"italic", "*italic*", []Span{italic("italic")}},
		{"code", "`code`", []Span{code("code")}},
		{"link", "[label](https://example.com)", []Span{link("label", "https://example.com")}},
		{"mixed", "a **b** and *c* done", []Span{text("a "), bold("b"), text(" and "), italic("c"), text(" done")}},
		{"unclosed bold stays literal", "**bo", []Span{text("**bo")}},
		{"unclosed italic stays literal", "half *open", []Span{text("half *open")}},
		{"unclosed code stays literal", "tick `here", []Span{text("tick `here")}},
		{"unclosed link stays literal", "[label](no-close", []Span{text("[label](no-close")}},
		{"bracket without paren stays literal", "[just brackets]", []Span{text("[just brackets]")}},
		{"empty bold stays literal", "****", []Span{text("****")}},
		{"empty code stays literal", "``", []Span{text("``")}},
		{"empty label stays literal", "[](url)", []Span{text("[](url)")}},
		{"no nesting inside bold", "**a *b* c**", []Span{bold("a *b* c")}},
		{"no nesting inside code", "`**not bold**`", []Span{code("**not bold**")}},
		{"bold wins over italic", "***x***", []Span{bold("*x"), text("*")}},
		{"adjacent styled spans", "**a**`b`", []Span{bold("a"), code("b")}},
		{"unicode plain", "héllo wörld", []Span{text("héllo wörld")}},
		{"markers after unclosed run merge", "a ** b ` c [ d", []Span{text("a ** b ` c [ d")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseInline(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseInline(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseInlinePlainRunsMerge(t *testing.T) {
	got := ParseInline("no * markers ` close [ here")
	if len(got) != 1 || got[0].Kind != SpanText {
		t.Fatalf("expected a single plain span, got %v", got)
	}
}
