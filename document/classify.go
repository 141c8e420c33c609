package document

import (
	"mime"
	"path/filepath"
	"regexp"
	"strings"
)

// Category is what a classified link names once followed.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryFile
	CategoryDir
	CategoryTextInfo // informational line, should not normally be followed
	CategoryError
	CategoryServer // redundant server
	CategorySession
	CategorySearch
)

func (c Category) String() string {
	switch c {
	case CategoryFile:
		return "file"
	case CategoryDir:
		return "dir"
	case CategoryTextInfo:
		return "txt"
	case CategoryError:
		return "err"
	case CategoryServer:
		return "svr"
	case CategorySession:
		return "session"
	case CategorySearch:
		return "search"
	}
	return "unk"
}

// absoluteURL matches fully qualified scheme://... targets.
var absoluteURL = regexp.MustCompile(`^[a-zA-Z]+://`)

// IsURL reports whether target is a fully qualified URL rather than a
// local path or selector.
func IsURL(target string) bool {
	return absoluteURL.MatchString(target)
}

// Classify determines whether a link is local and what content kind it
// names. Gemini links first re-derive a concrete gopher item type from
// the target's file extension; that derived type then drives the fixed
// type-to-category mapping.
func Classify(kind byte, target string) (local bool, category Category) {
	local = !IsURL(target)
	if kind == GeminiKind {
		kind = ItemForFile(target)
	}

	switch kind {
	case '0', '4', '5', '6', '9', 'g', 'I', 'h', 's':
		return local, CategoryFile
	case '1':
		return local, CategoryDir
	case 'i':
		return true, CategoryTextInfo
	case '3':
		return local, CategoryError
	case '+':
		return local, CategoryServer
	case '8', 'T':
		return local, CategorySession
	case '2', '7':
		return local, CategorySearch
	}
	return local, CategoryUnknown
}

// ItemForFile guesses a gopher item type for a file name by MIME
// sniffing its extension. Names that resolve to no MIME type are
// assumed to be directories, except a literal gophermap which is a
// text file.
func ItemForFile(name string) byte {
	mt := mime.TypeByExtension(filepath.Ext(name))
	if mt == "" {
		if strings.HasSuffix(name, "gophermap") {
			return '0'
		}
		return '1'
	}
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	major, _, _ := strings.Cut(mt, "/")

	switch {
	case mt == "image/gif":
		return 'g'
	case mt == "text/html":
		return 'h'
	case major == "text":
		return '0'
	case major == "application" || major == "video":
		return '9'
	case major == "image":
		return 'I'
	case major == "audio":
		return 's'
	}
	return '9'
}
