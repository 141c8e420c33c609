// Package nav is the navigation engine: it resolves links against the
// current browsing context, dispatches to the right parser, and keeps
// a browser-style history with back/forward semantics.
//
// All shared state lives in the Context and is mutated only by the
// engine's operations. Every operation either completes fully or
// leaves the context exactly as it was.
package nav

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"ggwalk/document"
	"ggwalk/render"
	"ggwalk/sites"
)

// Mode is the sticky processing mode, set on every successful
// map/index parse and consulted only when a visited directory has no
// index file.
type Mode int

const (
	ModeUnset Mode = iota
	ModeGopher
	ModeGemini
)

func (m Mode) String() string {
	switch m {
	case ModeGopher:
		return "gopher"
	case ModeGemini:
		return "gemini"
	}
	return ""
}

// Sentinel errors the command layer can phrase for the user.
var (
	ErrNoIndex      = errors.New("no gophermap or gemini index found")
	ErrInvalidLink  = errors.New("invalid link id")
	ErrHistoryEdge  = errors.New("no more history in that direction")
	ErrNotSupported = errors.New("link type not supported")
)

// Opener delegates content the engine cannot render itself: remote
// URLs and local files with non-text MIME types. Failures are
// reported but never fatal.
type Opener interface {
	OpenFile(path string) error
	OpenURL(url string) error
}

// Context is the navigation state for one browsing session.
type Context struct {
	// Base is the root of the site being browsed; never ends in a
	// path separator.
	Base string
	// CurrentPlace is the path (or external URL) of the page last
	// rendered.
	CurrentPlace string
	// Mode is the sticky gopher/gemini processing mode.
	Mode Mode
	// History holds visited places; Pos is the cursor, valid only
	// while History is non-empty.
	History []string
	Pos     int
	// Links is the table for the current page, replaced wholesale on
	// every page load.
	Links []document.Link
}

// Engine drives navigation. Printing the rendered page is part of
// every successful operation; failed operations print nothing and
// mutate nothing.
type Engine struct {
	ctx      Context
	store    *sites.Store
	printer  *render.Printer
	opener   Opener
	minWidth int
}

// New creates an engine over the given bookmark store, printer and
// external opener. minWidth clamps the wrap width when the terminal
// is very narrow.
func New(store *sites.Store, printer *render.Printer, opener Opener, minWidth int) *Engine {
	if minWidth < 20 {
		minWidth = 20
	}
	return &Engine{store: store, printer: printer, opener: opener, minWidth: minWidth}
}

// Context returns a copy of the current navigation state, for the
// dump command and tests.
func (e *Engine) Context() Context {
	ctx := e.ctx
	ctx.History = append([]string(nil), e.ctx.History...)
	ctx.Links = append([]document.Link(nil), e.ctx.Links...)
	return ctx
}

// Links returns the current page's link table.
func (e *Engine) Links() []document.Link {
	return append([]document.Link(nil), e.ctx.Links...)
}

// wrapWidth derives the gemini prose width from the printer columns.
func (e *Engine) wrapWidth() int {
	w := e.printer.Columns() - render.GeminiGutter - 2
	if w < e.minWidth {
		w = e.minWidth
	}
	return w
}

// Visit starts browsing a site rooted at dir: it validates the
// directory, then loads its gophermap or gemini index. On success the
// base is reset to dir and the history is cleared. The sticky mode
// carries over from the previous site only to decide whether a bare
// directory may fall back to a synthesized listing.
func (e *Engine) Visit(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("place must be a valid directory [%s]", dir)
	}
	base := strings.TrimRight(dir, "/")
	if base == "" {
		base = "/"
	}

	ld, err := e.loadDir(base, base)
	if err != nil {
		return err
	}

	e.ctx.Base = base
	e.ctx.History = nil
	e.ctx.Pos = 0
	e.install(ld)
	return nil
}

// FollowLink follows the 1-based entry of the current link table.
func (e *Engine) FollowLink(index int) error {
	if index < 1 || index > len(e.ctx.Links) {
		return ErrInvalidLink
	}
	link := e.ctx.Links[index-1]
	local, category := document.Classify(link.Kind, link.Target)

	res := e.resolve(link.Target, local)
	if res.External {
		return e.openURL(link.Target)
	}

	if category != document.CategoryDir && category != document.CategoryFile {
		return fmt.Errorf("%w [%s]", ErrNotSupported, link.Target)
	}

	// Within the followable categories the filesystem decides the
	// dispatch: a target classified as a directory may still be a
	// gemini file, whose suffix then forces the right parser.
	var (
		ld  loaded
		err error
	)
	if info, statErr := os.Stat(res.Path); statErr == nil && info.IsDir() {
		ld, err = e.loadDir(res.Path, res.Base)
	} else {
		ld, err = e.loadFile(res.Path)
	}
	if err != nil {
		return err
	}
	e.applyResolution(res)
	if ld.external {
		// Delegated to the external viewer; nothing to commit.
		return nil
	}
	e.install(ld)
	return nil
}

// Back moves the history cursor one step towards the oldest page and
// re-renders the place it now points at, without recording a new
// history entry.
func (e *Engine) Back() error {
	if len(e.ctx.History) == 0 || e.ctx.Pos == 0 {
		return ErrHistoryEdge
	}
	return e.redisplay(e.ctx.Pos - 1)
}

// Forward is the inverse of Back.
func (e *Engine) Forward() error {
	if len(e.ctx.History) == 0 || e.ctx.Pos >= len(e.ctx.History)-1 {
		return ErrHistoryEdge
	}
	return e.redisplay(e.ctx.Pos + 1)
}

// redisplay re-dispatches on the history entry at pos using the same
// suffix and category rules as link following. The cursor moves only
// after the page loads.
func (e *Engine) redisplay(pos int) error {
	place := e.ctx.History[pos]

	if document.IsURL(place) {
		if err := e.opener.OpenURL(place); err != nil {
			return fmt.Errorf("opening %s: %w", place, err)
		}
		e.printer.Banner("URL [" + place + "]")
		e.ctx.Pos = pos
		e.ctx.CurrentPlace = place
		e.ctx.Links = nil
		return nil
	}

	var (
		ld  loaded
		err error
	)
	if info, statErr := os.Stat(place); statErr == nil && info.IsDir() {
		ld, err = e.loadDir(place, e.ctx.Base)
	} else {
		ld, err = e.loadFile(place)
	}
	if err != nil {
		return err
	}
	if ld.external {
		e.ctx.Pos = pos
		e.ctx.CurrentPlace = place
		return nil
	}
	e.ctx.Pos = pos
	e.install(ld)
	return nil
}

// openURL hands a fully qualified URL to the external opener and
// commits it as the current place.
func (e *Engine) openURL(url string) error {
	if err := e.opener.OpenURL(url); err != nil {
		return fmt.Errorf("opening %s: %w", url, err)
	}
	e.printer.Banner("URL [" + url + "]")
	e.ctx.CurrentPlace = url
	e.ctx.Links = nil
	e.commit(url)
	return nil
}

// install prints a freshly loaded page and commits it: the link table
// is swapped as a unit, the sticky mode follows the page flavor, and
// the history gains the place unless it is already under the cursor.
func (e *Engine) install(ld loaded) {
	e.printer.Page(ld.page)
	e.ctx.CurrentPlace = ld.place
	e.ctx.Links = ld.page.Links
	switch ld.page.Flavor {
	case document.FlavorGopher:
		e.ctx.Mode = ModeGopher
	case document.FlavorGemini:
		e.ctx.Mode = ModeGemini
	}
	e.commit(ld.place)
}

// commit appends place to the history unless it is already the entry
// under the cursor, truncating any forward tail first. Reloading the
// current page is therefore a no-op for history.
func (e *Engine) commit(place string) {
	if len(e.ctx.History) > 0 && e.ctx.History[e.ctx.Pos] == place {
		return
	}
	if len(e.ctx.History) > 0 {
		e.ctx.History = append(e.ctx.History[:e.ctx.Pos+1], place)
	} else {
		e.ctx.History = []string{place}
	}
	e.ctx.Pos = len(e.ctx.History) - 1
}

// applyResolution makes a rebase observable: when resolving switched
// the site root, the base changes and the history is cleared, since
// the walk may have jumped to a different site.
func (e *Engine) applyResolution(res resolution) {
	if !res.Rebased {
		return
	}
	if res.Base != e.ctx.Base {
		e.printer.Banner("Rebased onto [" + res.Base + "]")
	}
	e.ctx.Base = res.Base
	e.ctx.History = nil
	e.ctx.Pos = 0
}
