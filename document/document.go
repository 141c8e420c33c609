// Package document defines the page model shared by the gopher and
// gemini parsers, and the link classifier that decides what a raw
// link token points at.
package document

// GeminiKind is the link kind used for gemini `=>` lines, which carry
// no gopher item type of their own. Classification MIME-sniffs the
// target to derive a concrete type.
const GeminiKind = '>'

// LineKind describes how a rendered line should be styled.
// Parsers never emit escape codes; the render layer maps kinds to ANSI.
type LineKind int

const (
	Blank LineKind = iota
	Plain
	Pre
	Heading1
	Heading2
	Heading3
	LinkLine
)

// Link is a raw navigable record: an item-type tag and the target
// token exactly as written in the source file (path, selector, or
// absolute URL).
type Link struct {
	Kind   byte
	Target string
}

// Line is one display unit of a rendered page. LinkIndex is the
// 1-based position in the page's link table for LinkLine kinds,
// zero otherwise.
type Line struct {
	Text      string
	Kind      LineKind
	LinkIndex int
}

// Flavor identifies which grammar produced a page. The render layer
// uses it to pick the left gutter width.
type Flavor int

const (
	FlavorText Flavor = iota
	FlavorGopher
	FlavorGemini
)

// Page is the transient result of parsing one map, index, or listing.
// The link table is valid only until the next page load replaces it.
type Page struct {
	Title  string
	Flavor Flavor
	Lines  []Line
	Links  []Link
}

// AddLink appends a link and returns its 1-based display index.
func (p *Page) AddLink(kind byte, target string) int {
	p.Links = append(p.Links, Link{Kind: kind, Target: target})
	return len(p.Links)
}

// AddLine appends a non-link display line.
func (p *Page) AddLine(text string, kind LineKind) {
	p.Lines = append(p.Lines, Line{Text: text, Kind: kind})
}

// AddBlank appends an empty line.
func (p *Page) AddBlank() {
	p.Lines = append(p.Lines, Line{Kind: Blank})
}

// AddLinkLine appends a display line tied to the link table entry at
// the given 1-based index.
func (p *Page) AddLinkLine(text string, index int) {
	p.Lines = append(p.Lines, Line{Text: text, Kind: LinkLine, LinkIndex: index})
}

// KindLabel returns the short display label for a gopher item type,
// shown next to numbered links.
func KindLabel(kind byte) string {
	switch kind {
	case '0':
		return "(TXT)"
	case '1':
		return "(DIR)"
	case '9':
		return "(BIN)"
	case 'g':
		return "(GIF)"
	case 'I':
		return "(PIC)"
	case 'h':
		return "(URL)"
	case 's':
		return "(WAV)"
	case GeminiKind:
		return "     "
	}
	return "  (?)"
}
