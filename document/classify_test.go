package document

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		kind     byte
		target   string
		local    bool
		category Category
	}{
		{"text file", '0', "/about.txt", true, CategoryFile},
		{"directory", '1', "/sub", true, CategoryDir},
		{"binary", '9', "/blob.bin", true, CategoryFile},
		{"html url is non-local", 'h', "https://example.com", false, CategoryFile},
		{"remote gopher dir", '1', "gopher://example.org/stuff", false, CategoryDir},
		{"info", 'i', "whatever", true, CategoryTextInfo},
		{"error", '3', "/x", true, CategoryError},
		{"server", '+', "/x", true, CategoryServer},
		{"telnet session", '8', "/x", true, CategorySession},
		{"tn3270 session", 'T', "/x", true, CategorySession},
		{"cso search", '2', "/x", true, CategorySearch},
		{"full text search", '7', "/x", true, CategorySearch},
		{"unrecognized", '?', "/x", true, CategoryUnknown},

		// Gemini links re-derive a concrete type from the extension.
		// An unresolvable extension (.gmi included) means directory;
		// the navigation engine's suffix rules still force gemini
		// parsing when the target turns out to be a file.
		{"gemini text", GeminiKind, "doc.gmi", true, CategoryDir},
		{"gemini dir", GeminiKind, "sub", true, CategoryDir},
		{"gemini image", GeminiKind, "pic.png", true, CategoryFile},
		{"gemini remote", GeminiKind, "gemini://example.com/doc.gmi", false, CategoryDir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local, category := Classify(tt.kind, tt.target)
			if local != tt.local || category != tt.category {
				t.Errorf("got (%v, %v), want (%v, %v)", local, category, tt.local, tt.category)
			}
		})
	}
}

func TestItemForFile(t *testing.T) {
	tests := []struct {
		name string
		want byte
	}{
		{"notes.txt", '0'},
		{"page.html", 'h'},
		{"anim.gif", 'g'},
		{"photo.jpg", 'I'},
		{"tune.mp3", 's'},
		{"paper.pdf", '9'},
		{"somewhere/gophermap", '0'},
		{"bare-directory", '1'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ItemForFile(tt.name); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsURL(t *testing.T) {
	if !IsURL("gemini://host/x") || !IsURL("https://x") {
		t.Error("qualified URLs not detected")
	}
	if IsURL("/absolute/path") || IsURL("relative.gmi") || IsURL("no-scheme:80/x") {
		t.Error("false positive URL detection")
	}
}
