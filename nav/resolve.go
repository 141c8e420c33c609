package nav

import (
	"os"
	"path/filepath"
	"strings"
)

// resolution is the outcome of turning a raw link target into
// something the engine can act on: a concrete local path, or an
// external URL left for the opener. Rebased records the explicit
// site-switch transition so the engine can surface it.
type resolution struct {
	Path     string
	Base     string
	External bool
	Rebased  bool
}

// resolve maps a link target onto the local filesystem. Fully
// qualified URLs are first rebased onto the current base and then
// onto every other bookmarked root; a target that rebases nowhere
// stays external. Local targets anchor at the base when absolute or
// empty, else at the directory of the current place.
func (e *Engine) resolve(target string, local bool) resolution {
	if !local {
		if res, ok := e.rebase(target); ok {
			return res
		}
		return resolution{External: true}
	}

	anchor := e.ctx.Base
	if target != "" && target[0] != '/' {
		anchor = e.ctx.CurrentPlace
		if info, err := os.Stat(anchor); err != nil || !info.IsDir() {
			anchor = filepath.Dir(anchor)
		}
	}
	return resolution{
		Path: joinPath(anchor, target),
		Base: e.ctx.Base,
	}
}

// rebase substitutes a bookmarked site-URL prefix with the current
// base, then with each other bookmarked root, taking the first
// substitution that exists on disk.
func (e *Engine) rebase(target string) (resolution, bool) {
	for _, prefix := range e.store.URLs {
		if !strings.HasPrefix(target, prefix) {
			continue
		}
		rest := strings.TrimPrefix(target, prefix)
		if e.ctx.Base != "" {
			if path := joinPath(e.ctx.Base, rest); exists(path) {
				return resolution{Path: path, Base: e.ctx.Base, Rebased: true}, true
			}
		}
		for _, root := range e.store.Paths {
			if root == e.ctx.Base {
				continue
			}
			if path := joinPath(root, rest); exists(path) {
				return resolution{Path: path, Base: root, Rebased: true}, true
			}
		}
	}
	return resolution{}, false
}

func joinPath(anchor, target string) string {
	target = strings.TrimLeft(target, "/")
	if target == "" {
		return anchor
	}
	return strings.TrimRight(anchor, "/") + "/" + target
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
