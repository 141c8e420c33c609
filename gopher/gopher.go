// Package gopher parses gophermap files into renderable pages.
//
// A gophermap line is tab separated: the first field carries a
// one-character item type followed by display text, optionally
// followed by selector, host and port fields. Lines that match no
// rule degrade to plain text rather than failing.
package gopher

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"ggwalk/document"
)

// Items is the set of recognized item-type tags. A line whose tag is
// not in this set renders as plain text.
const Items = "0123456789+TgIhs"

// DefaultPort is elided from constructed gopher URLs when matched
// exactly.
const DefaultPort = "70"

// MapName is the literal file name a gopher directory index must have.
const MapName = "gophermap"

// URLPrefix is the escape marker inside an HTML-type selector that
// flags the remainder as a fully qualified URL.
const URLPrefix = "URL:"

// ParseMap reads a gophermap file and produces one display unit per
// input line plus the ordered link table.
func ParseMap(name string) (*document.Page, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening gophermap: %w", err)
	}
	defer f.Close()

	page := &document.Page{
		Title:  "Gopher menu [" + name + "]",
		Flavor: document.FlavorGopher,
	}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		parseLine(page, strings.TrimRight(sc.Text(), "\r\n"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading gophermap: %w", err)
	}
	return page, nil
}

func parseLine(page *document.Page, line string) {
	fields := strings.Split(line, "\t")
	if fields[0] == "" {
		page.AddBlank()
		return
	}
	item := fields[0][0]
	text := fields[0][1:]

	switch {
	case item == 'i':
		page.AddLine(text, document.Plain)
	case len(fields) > 1 && strings.IndexByte(Items, item) >= 0:
		idx := page.AddLink(item, realLink(item, fields))
		page.AddLinkLine(text, idx)
	default:
		// Malformed line, keep it readable.
		page.AddLine(fields[0], document.Plain)
	}
}

// realLink computes a link target from the optional selector, host and
// port fields following the tag+text field:
//
//   - an HTML item whose selector starts with URL: yields the embedded
//     URL verbatim once the marker is stripped,
//   - a selector without a leading slash is relative to the file being
//     viewed,
//   - a selector with host and port names a remote gopher URL, with
//     the default port elided,
//   - anything else is the selector itself, absolute from the site
//     base.
func realLink(item byte, fields []string) string {
	selector := fields[1]
	host := ""
	port := ""
	if len(fields) > 2 {
		host = strings.TrimSpace(fields[2])
	}
	if len(fields) > 3 {
		port = strings.TrimSpace(fields[3])
	}

	if item == 'h' && strings.HasPrefix(selector, URLPrefix) {
		rest := strings.TrimSpace(selector[len(URLPrefix):])
		if document.IsURL(rest) {
			return rest
		}
	}
	if selector != "" && selector[0] != '/' {
		return selector
	}
	if host != "" && port != "" {
		if port == DefaultPort {
			port = ""
		} else {
			port = ":" + port
		}
		return "gopher://" + host + port + selector
	}
	return selector
}

// ParseDir synthesizes a listing page for a gopher directory that has
// no gophermap, one link per entry. Link targets are base-absolute
// paths so they resolve the same way a served listing would.
func ParseDir(name, base string) (*document.Page, error) {
	entries, err := os.ReadDir(name)
	if err != nil {
		return nil, fmt.Errorf("listing directory: %w", err)
	}

	page := &document.Page{
		Title:  "Gopher directory [" + name + "]",
		Flavor: document.FlavorGopher,
	}
	page.AddBlank()
	page.AddLine("Content:", document.Plain)
	page.AddBlank()

	for _, entry := range entries {
		item := byte('1')
		if !entry.IsDir() {
			item = document.ItemForFile(entry.Name())
		}
		target := strings.TrimPrefix(joinSelector(name, entry.Name()), base)
		idx := page.AddLink(item, target)
		page.AddLinkLine(entry.Name(), idx)
	}
	page.AddBlank()
	return page, nil
}

func joinSelector(dir, name string) string {
	return strings.TrimRight(dir, "/") + "/" + name
}
