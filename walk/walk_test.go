package walk

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckNoRoots(t *testing.T) {
	if _, err := Check(nil); !errors.Is(err, ErrNoRoots) {
		t.Fatalf("got %v, want ErrNoRoots", err)
	}
}

func TestCheckCycleTerminates(t *testing.T) {
	dir := t.TempDir()
	a := write(t, dir, "index.gmi", "=> b.gmi To b\n")
	b := write(t, dir, "b.gmi", "=> index.gmi Back to a\n")

	report, err := Check([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Visited) != 2 || !report.Visited[a] || !report.Visited[b] {
		t.Errorf("visited: %v", report.Visited)
	}
	if len(report.Orphans) != 0 {
		t.Errorf("orphans: %v", report.Orphans)
	}
}

func TestCheckOrphans(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "index.gmi", "=> linked.gmi Linked\n")
	write(t, dir, "linked.gmi", "# Linked\n")
	orphan := write(t, dir, "stray.gmi", "# Nobody points here\n")

	report, err := Check([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Orphans) != 1 || report.Orphans[0] != orphan {
		t.Errorf("orphans: %v", report.Orphans)
	}
}

func TestCheckMissingTarget(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "index.gmi", "=> gone.gmi Broken\n")

	report, err := Check([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "gone.gmi")
	if len(report.Missing) != 1 || report.Missing[0] != want {
		t.Errorf("missing: %v", report.Missing)
	}
}

func TestCheckExternalRecordedOnce(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "index.gmi",
		"=> https://example.com Out\n=> other.gmi Other\n")
	write(t, dir, "other.gmi", "=> https://example.com Out again\n")

	report, err := Check([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(report.External) != 1 || report.External[0] != "https://example.com" {
		t.Errorf("external: %v", report.External)
	}
}

func TestCheckGopherDirExpansion(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "gophermap", "1Files\t/files\n")
	shown := write(t, dir, "files/a.txt", "a\n")

	report, err := Check([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	// Files in a bare gopher directory appear in the synthesized
	// listing: visited, never orphans.
	if !report.Visited[shown] {
		t.Errorf("listing entry not visited: %v", report.Visited)
	}
	if len(report.Orphans) != 0 {
		t.Errorf("orphans: %v", report.Orphans)
	}
}

func TestCheckGopherSubtreeReachedFromGemini(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "index.gmi", "=> sub/gophermap The gopher side\n")
	write(t, dir, "sub/gophermap", "1Files\t/sub/files\n")
	shown := write(t, dir, "sub/files/a.txt", "a\n")

	report, err := Check([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	// The bare directory is linked from a gophermap, so it expands as
	// a listing regardless of how the gophermap itself was reached.
	if !report.Visited[shown] {
		t.Errorf("listing entry not visited: %v", report.Visited)
	}
	if len(report.Missing) != 0 {
		t.Errorf("missing: %v", report.Missing)
	}
	if len(report.Orphans) != 0 {
		t.Errorf("orphans: %v", report.Orphans)
	}
}

func TestCheckBareGeminiDirIsMissingIndex(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "index.gmi", "=> sub/ The subsection\n")
	write(t, dir, "sub/readme.gmi", "# Orphaned either way\n")

	report, err := Check([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "sub", "index.gmi")
	if len(report.Missing) != 1 || report.Missing[0] != want {
		t.Errorf("missing: %v", report.Missing)
	}
}

func TestCheckSkipsRootWithoutEntry(t *testing.T) {
	good := t.TempDir()
	write(t, good, "index.gmi", "# Home\n")
	bad := t.TempDir()
	write(t, bad, "note.txt", "no entry file\n")

	report, err := Check([]string{good, bad})
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Skipped) != 1 || report.Skipped[0] != bad {
		t.Errorf("skipped: %v", report.Skipped)
	}
}

func TestCheckRepeatedRootVisitsOnce(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "index.gmi", "=> shared.gmi Shared\n")
	write(t, dir, "shared.gmi", "# Shared\n")

	report, err := Check([]string{dir, dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Visited) != 2 {
		t.Errorf("visited: %v", report.Visited)
	}
}
