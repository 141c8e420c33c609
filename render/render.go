// Package render turns parsed pages into styled terminal output and
// provides the text wrapping used by the parsers.
package render

import (
	"fmt"
	"io"
	"strings"

	"ggwalk/document"
)

// ANSI escapes used for page styling.
const (
	Reset     = "\033[0m"
	Bold      = "\033[1m"
	Dim       = "\033[2m"
	Underline = "\033[4m"
	BannerBg  = "\033[44m"
	LinkFg    = "\033[38;5;119m"
)

// Gutter widths, in cells, reserved to the left of page content.
// Gopher lines carry a two-digit index plus a five-char type label;
// gemini lines carry an index plus a `>` marker.
const (
	GopherGutter = 9
	GeminiGutter = 5
)

// Printer writes pages and lists to a terminal. With color disabled
// all escape sequences are dropped, which keeps output pipeable.
type Printer struct {
	w       io.Writer
	columns int
	color   bool
}

// NewPrinter creates a printer for the given output width.
func NewPrinter(w io.Writer, columns int, color bool) *Printer {
	if columns <= 0 {
		columns = 80
	}
	return &Printer{w: w, columns: columns, color: color}
}

// Columns returns the width the printer is formatting for.
func (p *Printer) Columns() int { return p.columns }

// SetColumns updates the output width, e.g. after a terminal resize.
func (p *Printer) SetColumns(columns int) {
	if columns > 0 {
		p.columns = columns
	}
}

// SetColor toggles ANSI styling at runtime.
func (p *Printer) SetColor(on bool) { p.color = on }

func (p *Printer) styled(style, text string) string {
	if !p.color || style == "" {
		return text
	}
	return style + text + Reset
}

// Banner prints a full-width title bar.
func (p *Printer) Banner(title string) {
	fmt.Fprintln(p.w, p.styled(BannerBg, center(title, p.columns)))
}

func gutterFor(f document.Flavor) string {
	switch f {
	case document.FlavorGopher:
		return strings.Repeat(" ", GopherGutter)
	case document.FlavorGemini:
		return strings.Repeat(" ", GeminiGutter)
	}
	return ""
}

// Page prints a parsed page: title banner, then every display line.
func (p *Printer) Page(pg *document.Page) {
	p.Banner(pg.Title)
	gutter := gutterFor(pg.Flavor)
	for _, ln := range pg.Lines {
		switch ln.Kind {
		case document.Blank:
			fmt.Fprintln(p.w)
		case document.Pre:
			fmt.Fprintln(p.w, gutter+ln.Text)
		case document.Heading1:
			fmt.Fprintln(p.w, gutter+p.styled(Bold+Underline, ln.Text))
		case document.Heading2:
			fmt.Fprintln(p.w, gutter+p.styled(Bold, ln.Text))
		case document.Heading3:
			fmt.Fprintln(p.w, gutter+p.styled(Underline, ln.Text))
		case document.LinkLine:
			p.linkLine(pg, ln)
		default:
			fmt.Fprintln(p.w, gutter+ln.Text)
		}
	}
}

func (p *Printer) linkLine(pg *document.Page, ln document.Line) {
	kind := byte(document.GeminiKind)
	if ln.LinkIndex >= 1 && ln.LinkIndex <= len(pg.Links) {
		kind = pg.Links[ln.LinkIndex-1].Kind
	}
	if kind == document.GeminiKind {
		fmt.Fprintf(p.w, "%2d > %s\n", ln.LinkIndex, p.styled(LinkFg, ln.Text))
		return
	}
	fmt.Fprintf(p.w, "%2d %s %s\n", ln.LinkIndex, document.KindLabel(kind), p.styled(LinkFg, ln.Text))
}

// RawLinks prints a link table as stored: item-type label plus the
// raw target token, for the links and dump commands.
func (p *Printer) RawLinks(links []document.Link) {
	for i, l := range links {
		if l.Kind == document.GeminiKind {
			fmt.Fprintf(p.w, "%2d > %s\n", i+1, p.styled(LinkFg, l.Target))
			continue
		}
		fmt.Fprintf(p.w, "%2d %s %s\n", i+1, document.KindLabel(l.Kind), p.styled(LinkFg, l.Target))
	}
}

// List prints a numbered list with an optional `=>` cursor marker at
// the given 1-based position. Used for paths, urls, raw links and the
// history dump.
func (p *Printer) List(items []string, marker int) {
	for i, item := range items {
		cursor := "  "
		if marker == i+1 {
			cursor = "=>"
		}
		fmt.Fprintf(p.w, "%2d %s %s\n", i+1, cursor, p.styled(LinkFg, item))
	}
}

func center(s string, width int) string {
	pad := width - StringWidth(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
