package nav

import (
	"bufio"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"ggwalk/document"
	"ggwalk/gemini"
	"ggwalk/gopher"
	"ggwalk/htmltext"
)

// loaded is the result of dispatching a place to a parser. external
// pages were handed to the platform opener and have nothing to render.
type loaded struct {
	page     *document.Page
	place    string
	external bool
}

// loadDir renders a directory: its gophermap if present, else its
// gemini index, else a synthesized listing (only when the sticky mode
// is gopher). Gemini capsules require an explicit index.
func (e *Engine) loadDir(dir, base string) (loaded, error) {
	dir = strings.TrimRight(dir, "/")
	if dir == "" {
		dir = "/"
	}

	if name := filepath.Join(dir, gopher.MapName); isFile(name) {
		page, err := gopher.ParseMap(name)
		if err != nil {
			return loaded{}, err
		}
		return loaded{page: page, place: name}, nil
	}
	if name, ok := gemini.FindIndex(dir); ok {
		page, err := gemini.Parse(name, e.wrapWidth())
		if err != nil {
			return loaded{}, err
		}
		return loaded{page: page, place: name}, nil
	}
	if e.ctx.Mode == ModeGopher {
		page, err := gopher.ParseDir(dir, base)
		if err != nil {
			return loaded{}, err
		}
		return loaded{page: page, place: dir}, nil
	}
	return loaded{}, fmt.Errorf("%w at [%s]", ErrNoIndex, dir)
}

// loadFile dispatches a local file on its suffix and MIME type: a
// gophermap suffix forces gopher parsing even when reached through a
// generic link, a gemtext suffix forces gemini parsing, text renders
// inline, HTML renders as stripped text, and everything else goes to
// the external viewer.
func (e *Engine) loadFile(path string) (loaded, error) {
	if !isFile(path) {
		return loaded{}, fmt.Errorf("file does not exist [%s]", path)
	}

	switch {
	case strings.HasSuffix(path, gopher.MapName):
		page, err := gopher.ParseMap(path)
		if err != nil {
			return loaded{}, err
		}
		return loaded{page: page, place: path}, nil

	case gemini.HasExtension(path):
		page, err := gemini.Parse(path, e.wrapWidth())
		if err != nil {
			return loaded{}, err
		}
		return loaded{page: page, place: path}, nil
	}

	mt := mime.TypeByExtension(filepath.Ext(path))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	switch {
	case mt == "":
		return loaded{}, fmt.Errorf("unknown file type [%s]", path)
	case mt == "text/html":
		page, err := htmltext.Parse(path, e.wrapWidth())
		if err != nil {
			return loaded{}, err
		}
		return loaded{page: page, place: path}, nil
	case strings.HasPrefix(mt, "text/"):
		page, err := loadText(path)
		if err != nil {
			return loaded{}, err
		}
		return loaded{page: page, place: path}, nil
	}

	if err := e.opener.OpenFile(path); err != nil {
		return loaded{}, fmt.Errorf("opening %s: %w", path, err)
	}
	return loaded{place: path, external: true}, nil
}

// loadText renders a plain text file verbatim, without a link table.
func loadText(path string) (*document.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening text file: %w", err)
	}
	defer f.Close()

	page := &document.Page{
		Title:  "Text file [" + path + "]",
		Flavor: document.FlavorText,
	}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			page.AddBlank()
			continue
		}
		page.AddLine(line, document.Plain)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading text file: %w", err)
	}
	return page, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
