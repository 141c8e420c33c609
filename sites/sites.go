// Package sites holds the bookmarked site roots and site-URL prefixes,
// with JSON persistence for the save/read commands.
package sites

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// DefaultFile is the bookmark file used when save/read get no argument.
const DefaultFile = "config.json"

// Store is the in-memory bookmark collection. Paths are site root
// directories; URLs are remote prefixes used to rebase fully
// qualified links onto local mirrors. Neither keeps a trailing
// separator.
type Store struct {
	Paths []string `json:"paths"`
	URLs  []string `json:"site_urls"`
}

// AddPath bookmarks a site root, ignoring duplicates.
func (s *Store) AddPath(path string) bool {
	path = strings.TrimRight(path, "/")
	if path == "" || contains(s.Paths, path) {
		return false
	}
	s.Paths = append(s.Paths, path)
	return true
}

// AddURL bookmarks a site URL prefix, ignoring duplicates.
func (s *Store) AddURL(url string) bool {
	url = strings.TrimRight(strings.TrimSpace(url), "/")
	if url == "" || contains(s.URLs, url) {
		return false
	}
	s.URLs = append(s.URLs, url)
	return true
}

// RemovePath drops a bookmarked root by value or 1-based index.
func (s *Store) RemovePath(arg string) error {
	var err error
	s.Paths, err = remove(s.Paths, arg)
	return err
}

// RemoveURL drops a bookmarked URL prefix by value or 1-based index.
func (s *Store) RemoveURL(arg string) error {
	var err error
	s.URLs, err = remove(s.URLs, arg)
	return err
}

// Save writes the bookmarks to name as JSON.
func (s *Store) Save(name string) error {
	if name == "" {
		name = DefaultFile
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(name, data, 0644)
}

// Read loads bookmarks from name. On any failure the store is left
// untouched; the new lists replace the old ones only when the whole
// read succeeds.
func (s *Store) Read(name string) error {
	if name == "" {
		name = DefaultFile
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	var loaded Store
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	s.Paths = loaded.Paths
	s.URLs = loaded.URLs
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func remove(list []string, arg string) ([]string, error) {
	arg = strings.TrimSpace(arg)
	if idx, ok := atoi(arg); ok {
		if idx < 1 || idx > len(list) {
			return list, fmt.Errorf("invalid index %d", idx)
		}
		return append(list[:idx-1], list[idx:]...), nil
	}
	for i, item := range list {
		if item == arg {
			return append(list[:i], list[i+1:]...), nil
		}
	}
	return list, fmt.Errorf("%q not in list", arg)
}

func atoi(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
