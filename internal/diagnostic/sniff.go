package diagnostic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Sniff examines the start of a CSV file. It returns the header row if the
// file appears to have one (nil otherwise) and the column count, inferred
// from the first row and assumed consistent.
func Sniff(path string) (headers []string, ncols int, err error) {
	// #nosec G304
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	row, err := reader.Read()
	if err == io.EOF {
		return nil, 0, fmt.Errorf("%s is empty", path)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if looksLikeHeader(row) {
		return row, len(row), nil
	}
	return nil, len(row), nil
}

// looksLikeHeader reports whether a first row is a header: every cell a
// valid attribute name and no cell parseable as a number or timestamp.
func looksLikeHeader(row []string) bool {
	for _, cell := range row {
		if !IsValidName(strings.TrimSpace(cell)) {
			return false
		}
		if isNumericOrTimestamp(strings.TrimSpace(cell)) {
			return false
		}
	}
	return true
}

// CollectDataFiles expands a path into the list of CSV files to analyze. A
// file path returns itself; a directory is walked recursively, keeping only
// .csv files.
func CollectDataFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("path must be a valid local file or directory: %w", err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(p), ".csv") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no CSV files found under %s", path)
	}

	sort.Strings(files)
	return files, nil
}
