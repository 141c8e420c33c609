package gopher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ggwalk/document"
)

func writeMap(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	name := filepath.Join(dir, MapName)
	if err := os.WriteFile(name, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestParseMapLinkCount(t *testing.T) {
	// One link per line with a recognized tag and at least two fields.
	content := strings.Join([]string{
		"iWelcome to the hole\t/\tlocalhost\t70",
		"0About this site\t/about.txt",
		"1Deep dive\t/sub",
		"",
		"9Download\t/files/blob.bin",
		"just some text without tabs",
		"xUnknown tag\t/nowhere",
		"0Selector missing",
	}, "\n")

	page, err := ParseMap(writeMap(t, content))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(page.Links), 3; got != want {
		t.Fatalf("got %d links, want %d: %+v", got, want, page.Links)
	}
	if got, want := len(page.Lines), 8; got != want {
		t.Fatalf("got %d lines, want %d", got, want)
	}

	// Malformed lines degrade to plain text.
	if page.Lines[5].Kind != document.Plain || page.Lines[5].Text != "just some text without tabs" {
		t.Errorf("malformed line not preserved: %+v", page.Lines[5])
	}
	if page.Lines[7].Kind != document.Plain {
		t.Errorf("tag without selector should be plain text: %+v", page.Lines[7])
	}
	// Blank first field renders blank.
	if page.Lines[3].Kind != document.Blank {
		t.Errorf("empty line should be blank: %+v", page.Lines[3])
	}
	// Informational lines render verbatim without a link.
	if page.Lines[0].Kind != document.Plain || page.Lines[0].Text != "Welcome to the hole" {
		t.Errorf("info line mangled: %+v", page.Lines[0])
	}
}

func TestParseMapMissingFile(t *testing.T) {
	if _, err := ParseMap(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRealLink(t *testing.T) {
	tests := []struct {
		name   string
		item   byte
		fields []string
		want   string
	}{
		{"url escape", 'h', []string{"Example", "URL:https://example.com"}, "https://example.com"},
		{"url escape keeps scheme verbatim", 'h', []string{"Example", "URL:gemini://example.com/x"}, "gemini://example.com/x"},
		{"url escape without scheme falls through", 'h', []string{"x", "URL:not-a-url"}, "URL:not-a-url"},
		{"relative selector", '0', []string{"About", "about.txt", "localhost", "70"}, "about.txt"},
		{"absolute with default port", '0', []string{"About", "/about.txt", "example.org", "70"}, "gopher://example.org/about.txt"},
		{"absolute with custom port", '1', []string{"Dir", "/dir", "example.org", "7070"}, "gopher://example.org:7070/dir"},
		{"absolute without host", '0', []string{"About", "/about.txt"}, "/about.txt"},
		{"empty selector", '1', []string{"Root", ""}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := realLink(tt.item, append([]string{string(tt.item) + tt.fields[0]}, tt.fields[1:]...)); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	base := dir
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}

	page, err := ParseDir(dir, base)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Links) != 2 {
		t.Fatalf("got %d links, want 2: %+v", len(page.Links), page.Links)
	}

	byTarget := map[string]byte{}
	for _, l := range page.Links {
		byTarget[l.Target] = l.Kind
	}
	if kind, ok := byTarget["/notes.txt"]; !ok || kind != '0' {
		t.Errorf("text file link wrong: %v", byTarget)
	}
	if kind, ok := byTarget["/sub"]; !ok || kind != '1' {
		t.Errorf("directory link wrong: %v", byTarget)
	}
}
