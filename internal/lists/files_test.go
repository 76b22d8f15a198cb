package lists_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sarpipe/internal/lists"
)

func TestScanArchiveMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent")
	_, err := lists.ScanArchive(missing)
	if !errors.Is(err, lists.ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
}

func TestScanArchiveListsFilesAndSafeDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "19960205.tar.gz"), nil, 0o644); err != nil {
		t.Fatalf("seed archive file: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "S1A_IW_SLC__1SDV_20150101T120000.SAFE"), 0o755); err != nil {
		t.Fatalf("seed SAFE directory: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "scratch"), 0o755); err != nil {
		t.Fatalf("seed plain directory: %v", err)
	}

	entries, err := lists.ScanArchive(dir)
	if err != nil {
		t.Fatalf("ScanArchive returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected file and SAFE entry only, got %v", entries)
	}
}

func TestWriteLinesAtomicWithTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lists", "scenes.list")
	if err := lists.WriteLines(path, []string{"20150101", "20150115"}); err != nil {
		t.Fatalf("WriteLines returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read list file: %v", err)
	}
	if string(data) != "20150101\n20150115\n" {
		t.Fatalf("unexpected file contents: %q", string(data))
	}

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".*tmp*"))
	if err != nil {
		t.Fatalf("glob temp files: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("temp files left behind: %v", matches)
	}
}

func TestWriteLinesRewriteIsByteIdentical(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenes.list")
	entries := []string{"20150101", "20150115", "20150212"}
	if err := lists.WriteLines(path, entries); err != nil {
		t.Fatalf("WriteLines returned error: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read list file: %v", err)
	}

	if err := lists.WriteLines(path, entries); err != nil {
		t.Fatalf("rewrite returned error: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reread list file: %v", err)
	}
	if string(first) != string(second) {
		t.Fatal("rewrite with identical entries changed the file")
	}
}

func TestReadLinesSkipsBlanks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenes.list")
	contents := "20150101\n\n  \n20150115\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write list file: %v", err)
	}
	lines, err := lists.ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines returned error: %v", err)
	}
	if len(lines) != 2 || lines[0] != "20150101" || lines[1] != "20150115" {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

func TestReadLinesMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.list")
	_, err := lists.ReadLines(missing)
	if !errors.Is(err, lists.ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
	if !strings.Contains(err.Error(), missing) {
		t.Fatalf("expected error to name the file, got %v", err)
	}
}
