package lists

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrMissingInput marks an absent raw-data source or required list file.
// The stage controller treats it as stage-fatal.
var ErrMissingInput = errors.New("missing required input")

// ScanArchive lists the raw archive directory. An absent directory is a
// missing-input condition, not an I/O error.
func ScanArchive(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("raw archive %s: %w", dir, ErrMissingInput)
		}
		return nil, fmt.Errorf("scan raw archive: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasSuffix(entry.Name(), ".SAFE") {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// ReadLines loads a list file. Blank lines are ignored. An absent file is
// a missing-input condition.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("list file %s: %w", path, ErrMissingInput)
		}
		return nil, fmt.Errorf("read list file: %w", err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lines = append(lines, trimmed)
	}
	return lines, nil
}

// WriteLines writes a list file atomically (temp file plus rename) with
// one entry per line and a trailing newline so shell loops over the file
// see every entry.
func WriteLines(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure list directory: %w", err)
	}
	var builder strings.Builder
	for _, line := range lines {
		builder.WriteString(line)
		builder.WriteByte('\n')
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp list file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.WriteString(builder.String()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write list file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close list file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace list file: %w", err)
	}
	return nil
}
