// Package htmltext renders a local HTML file as plain text so html
// items inside a hole can be previewed inline instead of punting to
// an external browser.
package htmltext

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"ggwalk/document"
	"ggwalk/render"
)

// Parse reads an HTML file and produces a text page: headings keep
// their tier, anchors join the link table, prose is wrapped to width.
// Script and style subtrees are dropped.
func Parse(name string, width int) (*document.Page, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening html file: %w", err)
	}
	defer f.Close()

	root, err := html.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	page := &document.Page{
		Title:  "HTML file [" + name + "]",
		Flavor: document.FlavorGemini,
	}
	if title := textOf(findElement(root, atom.Title)); title != "" {
		page.Title = title + " [" + name + "]"
	}

	if width < 10 {
		width = 10
	}
	walk(page, root, width)
	return page, nil
}

func walk(page *document.Page, n *html.Node, width int) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Head:
			return
		case atom.H1:
			page.AddLine(collapse(textOf(n)), document.Heading1)
			return
		case atom.H2:
			page.AddLine(collapse(textOf(n)), document.Heading2)
			return
		case atom.H3, atom.H4, atom.H5, atom.H6:
			page.AddLine(collapse(textOf(n)), document.Heading3)
			return
		case atom.A:
			if href := attr(n, "href"); href != "" {
				label := collapse(textOf(n))
				if label == "" {
					label = href
				}
				idx := page.AddLink('h', href)
				page.AddLinkLine(label, idx)
				return
			}
		case atom.P, atom.Li, atom.Blockquote, atom.Pre:
			emitBlock(page, n, width)
			return
		case atom.Br, atom.Hr:
			page.AddBlank()
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(page, c, width)
	}
}

// emitBlock flattens a block element to wrapped prose, but still
// surfaces any anchors inside it as separate link lines.
func emitBlock(page *document.Page, n *html.Node, width int) {
	if n.DataAtom == atom.Pre {
		for _, line := range strings.Split(strings.Trim(textOf(n), "\n"), "\n") {
			page.AddLine(line, document.Pre)
		}
		return
	}
	text := collapse(textOf(n))
	if text != "" {
		for _, line := range render.WrapText(text, width) {
			page.AddLine(line, document.Plain)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		emitAnchors(page, c)
	}
}

func emitAnchors(page *document.Page, n *html.Node) {
	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		if href := attr(n, "href"); href != "" {
			label := collapse(textOf(n))
			if label == "" {
				label = href
			}
			idx := page.AddLink('h', href)
			page.AddLinkLine(label, idx)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		emitAnchors(page, c)
	}
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return sb.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
