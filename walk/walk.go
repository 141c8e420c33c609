// Package walk checks the offline link closure of one or more site
// roots: it follows every local link reachable from each root's entry
// file and reports the files nothing links to.
package walk

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ggwalk/document"
	"ggwalk/gemini"
	"ggwalk/gopher"
)

// wrap width is irrelevant when walking; links don't depend on it.
const walkWidth = 80

// Report is the outcome of one closure walk across all roots.
type Report struct {
	// Visited holds every file a link chain reached, including files
	// shown by a synthesized gopher listing.
	Visited map[string]bool
	// External lists fully qualified URLs that were ignored rather
	// than followed, in first-encounter order.
	External []string
	// Missing lists local link targets that do not exist on disk.
	Missing []string
	// Orphans lists regular files under the roots that no link chain
	// reaches, sorted.
	Orphans []string
	// Skipped lists roots with no gophermap or gemini index.
	Skipped []string
}

// ErrNoRoots is returned when there is nothing to walk.
var ErrNoRoots = errors.New("no site roots to check")

// Check walks every root depth-first with a single visited set shared
// across roots, so cyclic link graphs terminate and cross-root links
// count once. Bare-directory expansion follows the flavor of the page
// carrying the link, so a gopher subtree keeps its listing semantics
// even when reached from a gemini index.
func Check(roots []string) (*Report, error) {
	if len(roots) == 0 {
		return nil, ErrNoRoots
	}

	r := &Report{Visited: make(map[string]bool)}
	seenExternal := make(map[string]bool)
	seenMissing := make(map[string]bool)

	for _, root := range roots {
		root = strings.TrimRight(root, "/")
		entry, ok := entryFile(root)
		if !ok {
			r.Skipped = append(r.Skipped, root)
			continue
		}

		work := []string{entry}
		for len(work) > 0 {
			path := filepath.Clean(work[len(work)-1])
			work = work[:len(work)-1]

			if r.Visited[path] {
				continue
			}
			r.Visited[path] = true

			page, ok := parseFollowable(path)
			if !ok {
				continue
			}
			for _, link := range page.Links {
				next, ok := r.followLink(link, path, root, page.Flavor, seenExternal, seenMissing)
				if ok {
					work = append(work, next...)
				}
			}
		}
	}

	r.scanOrphans(roots)
	return r, nil
}

// entryFile locates a root's gophermap or gemini index.
func entryFile(root string) (string, bool) {
	if name := filepath.Join(root, gopher.MapName); isFile(name) {
		return name, true
	}
	if name, ok := gemini.FindIndex(root); ok {
		return name, true
	}
	return "", false
}

// parseFollowable parses a file the walker can extract links from.
// Anything else is a leaf: visited, contributing no links.
func parseFollowable(path string) (*document.Page, bool) {
	switch {
	case strings.HasSuffix(path, gopher.MapName):
		page, err := gopher.ParseMap(path)
		if err != nil {
			return nil, false
		}
		return page, true
	case gemini.HasExtension(path):
		page, err := gemini.Parse(path, walkWidth)
		if err != nil {
			return nil, false
		}
		return page, true
	}
	return nil, false
}

// followLink classifies and resolves one link, returning further work
// items. flavor is the flavor of the page carrying the link. External
// links are recorded and ignored; local targets that do not exist are
// recorded as missing.
func (r *Report) followLink(link document.Link, cur, root string, flavor document.Flavor, seenExternal, seenMissing map[string]bool) ([]string, bool) {
	local, category := document.Classify(link.Kind, link.Target)
	if !local {
		if !seenExternal[link.Target] {
			seenExternal[link.Target] = true
			r.External = append(r.External, link.Target)
		}
		return nil, false
	}
	if category != document.CategoryFile && category != document.CategoryDir {
		return nil, false
	}

	path := resolveLocal(link.Target, cur, root)
	info, err := os.Stat(path)
	if err != nil {
		if !seenMissing[path] {
			seenMissing[path] = true
			r.Missing = append(r.Missing, path)
		}
		return nil, false
	}

	if info.IsDir() {
		return r.expandDir(path, flavor, seenMissing)
	}
	return []string{path}, true
}

// expandDir handles a directory target. With a gophermap or index the
// walk continues through it. A bare gopher directory behaves like the
// listing a server would synthesize: every regular file in it is
// shown, hence marked visited, but not individually followed. A bare
// gemini directory is a broken link, since capsules require an index.
func (r *Report) expandDir(dir string, flavor document.Flavor, seenMissing map[string]bool) ([]string, bool) {
	if name := filepath.Join(dir, gopher.MapName); isFile(name) {
		return []string{name}, true
	}
	if name, ok := gemini.FindIndex(dir); ok {
		return []string{name}, true
	}

	if flavor == document.FlavorGopher {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, false
		}
		for _, entry := range entries {
			if entry.Type().IsRegular() {
				r.Visited[filepath.Join(dir, entry.Name())] = true
			}
		}
		return nil, false
	}

	missing := filepath.Join(dir, gemini.IndexNames[0])
	if !seenMissing[missing] {
		seenMissing[missing] = true
		r.Missing = append(r.Missing, missing)
	}
	return nil, false
}

// resolveLocal anchors a target the same way the navigation engine
// does: at the root when absolute or empty, else at the directory of
// the file carrying the link.
func resolveLocal(target, cur, root string) string {
	if target == "" || target[0] == '/' {
		return filepath.Join(root, strings.TrimLeft(target, "/"))
	}
	return filepath.Join(filepath.Dir(cur), target)
}

// scanOrphans reports every regular file under the roots that the
// traversal never reached.
func (r *Report) scanOrphans(roots []string) {
	for _, root := range roots {
		root = strings.TrimRight(root, "/")
		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.Type().IsRegular() {
				return nil
			}
			if !r.Visited[filepath.Clean(path)] {
				r.Orphans = append(r.Orphans, path)
			}
			return nil
		})
	}
	sort.Strings(r.Orphans)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
