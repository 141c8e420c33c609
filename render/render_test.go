package render

import (
	"bytes"
	"strings"
	"testing"

	"ggwalk/document"
)

func TestStringWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"hello", 5},
		{"日本語", 6},
		{"go言語", 6},
	}
	for _, tt := range tests {
		if got := StringWidth(tt.in); got != tt.want {
			t.Errorf("StringWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{
			name:  "fits on one line",
			text:  "short line",
			width: 20,
			want:  []string{"short line"},
		},
		{
			name:  "breaks on spaces",
			text:  "the quick brown fox jumps",
			width: 10,
			want:  []string{"the quick", "brown fox", "jumps"},
		},
		{
			name:  "blank input is one blank line",
			text:  "   ",
			width: 10,
			want:  []string{""},
		},
		{
			name:  "long word is broken",
			text:  "antidisestablishmentarianism",
			width: 10,
			want:  []string{"antidisest", "ablishment", "arianism"},
		},
		{
			name:  "collapses runs of whitespace",
			text:  "a  \t b",
			width: 10,
			want:  []string{"a b"},
		},
		{
			name:  "zero width returns input",
			text:  "anything at all",
			width: 0,
			want:  []string{"anything at all"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapText(tt.text, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWrapIndent(t *testing.T) {
	got := WrapIndent("one two three four", 10, "*  ", "   ")
	want := []string{"*  one two", "   three", "   four"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
	for _, ln := range got {
		if StringWidth(ln) > 10 {
			t.Errorf("line %q exceeds width", ln)
		}
	}
}

func TestPageWithoutColorHasNoEscapes(t *testing.T) {
	page := &document.Page{Title: "Example", Flavor: document.FlavorGemini}
	page.AddLine("plain text", document.Plain)
	page.AddLinkLine("the link", page.AddLink(document.GeminiKind, "doc.gmi"))

	var buf bytes.Buffer
	p := NewPrinter(&buf, 80, false)
	p.Page(page)

	out := buf.String()
	if strings.Contains(out, "\033[") {
		t.Errorf("escape sequences with color off:\n%s", out)
	}
	if !strings.Contains(out, "Example") {
		t.Errorf("title missing:\n%s", out)
	}
	if !strings.Contains(out, " 1 > the link") {
		t.Errorf("link line missing:\n%s", out)
	}
}

func TestPageGopherLinkLabels(t *testing.T) {
	page := &document.Page{Title: "Menu", Flavor: document.FlavorGopher}
	page.AddLinkLine("About", page.AddLink('0', "/about.txt"))
	page.AddLinkLine("Archive", page.AddLink('9', "/blob.bin"))

	var buf bytes.Buffer
	p := NewPrinter(&buf, 80, false)
	p.Page(page)

	out := buf.String()
	for _, want := range []string{"(TXT) About", "(BIN) Archive"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}
