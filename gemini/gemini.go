// Package gemini parses gemtext files into renderable pages.
//
// The grammar follows the gemini specification's line types, with one
// deliberate relaxation: preformatting fences and link markers are
// recognized with leading whitespace, which the strict spec does not
// allow but site authors produce in practice.
package gemini

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ggwalk/document"
	"ggwalk/render"
)

// Index file names recognized as the entry page of a capsule.
var IndexNames = []string{"index.gmi", "index.gemini"}

// Extensions that force gemtext parsing when a link is followed.
var Extensions = []string{".gmi", ".gemini"}

// Fence is the preformatting toggle marker.
const Fence = "```"

// LinkMarker prefixes link lines.
const LinkMarker = "=>"

const quoteIndent = "     "

// FindIndex locates the capsule index file inside dir, trying the
// recognized names in order.
func FindIndex(dir string) (string, bool) {
	for _, idx := range IndexNames {
		name := filepath.Join(dir, idx)
		if info, err := os.Stat(name); err == nil && info.Mode().IsRegular() {
			return name, true
		}
	}
	return "", false
}

// HasExtension reports whether name carries a gemtext extension.
func HasExtension(name string) bool {
	for _, ext := range Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Parse reads a gemtext file, wrapping prose to the given width.
// An unterminated fence leaves the rest of the file preformatted.
func Parse(name string, width int) (*document.Page, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening gemini file: %w", err)
	}
	defer f.Close()

	if width < 10 {
		width = 10
	}
	page := &document.Page{
		Title:  "Gemini page [" + name + "]",
		Flavor: document.FlavorGemini,
	}

	fenced := false
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		trimmed := strings.TrimLeft(line, " \t")

		// Preformatting toggle, tolerant of leading whitespace.
		if strings.HasPrefix(trimmed, Fence) {
			fenced = !fenced
			continue
		}
		if fenced {
			page.AddLine(line, document.Pre)
			continue
		}
		if strings.TrimSpace(line) == "" {
			page.AddBlank()
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, LinkMarker):
			url, label := splitLink(trimmed[len(LinkMarker):])
			idx := page.AddLink(document.GeminiKind, url)
			page.AddLinkLine(label, idx)

		case strings.HasPrefix(trimmed, "#"):
			heading(page, strings.Trim(line, " \t"))

		case strings.HasPrefix(trimmed, "* "):
			rest := strings.Trim(line, " \t")[2:]
			for _, l := range render.WrapIndent(rest, width, "*  ", "   ") {
				page.AddLine(l, document.Plain)
			}

		case strings.HasPrefix(trimmed, ">"):
			rest := strings.Trim(line, " \t")[1:]
			for _, l := range render.WrapIndent(rest, width, quoteIndent, quoteIndent) {
				page.AddLine(l, document.Plain)
			}

		default:
			for _, l := range render.WrapText(line, width) {
				page.AddLine(l, document.Plain)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading gemini file: %w", err)
	}
	return page, nil
}

// splitLink separates a link line body into url and label; the label
// defaults to the url when absent.
func splitLink(body string) (url, label string) {
	body = strings.TrimSpace(body)
	i := strings.IndexFunc(body, func(r rune) bool { return r == ' ' || r == '\t' })
	if i < 0 {
		return body, body
	}
	url = body[:i]
	label = strings.TrimSpace(body[i:])
	if label == "" {
		label = url
	}
	return url, label
}

// heading classifies a `#` line: one marker is the strongest tier,
// three the weakest.
func heading(page *document.Page, line string) {
	switch {
	case strings.HasPrefix(line, "###"):
		page.AddLine(strings.Trim(line[3:], " \t"), document.Heading3)
	case strings.HasPrefix(line, "##"):
		page.AddLine(strings.Trim(line[2:], " \t"), document.Heading2)
	default:
		page.AddLine(strings.Trim(line[1:], " \t"), document.Heading1)
	}
}
