package diagnostic

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSniffWithHeaders(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.csv",
		"item_id,timestamp,demand\nsocks,2021-01-01,38.0\n")

	headers, ncols, err := Sniff(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"item_id", "timestamp", "demand"}, headers)
	assert.Equal(t, 3, ncols)
}

func TestSniffWithoutHeaders(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.csv",
		"socks,2021-01-01,38.0\nhats,2021-01-01,12.0\n")

	headers, ncols, err := Sniff(path)
	require.NoError(t, err)
	assert.Nil(t, headers)
	assert.Equal(t, 3, ncols)
}

func TestSniffEmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.csv", "")

	_, _, err := Sniff(path)
	assert.Error(t, err)
}

func TestLooksLikeHeader(t *testing.T) {
	assert.True(t, looksLikeHeader([]string{"item_id", "timestamp", "demand"}))
	// A data row with string dimensions still has numeric cells.
	assert.False(t, looksLikeHeader([]string{"socks", "2021-01-01", "38.0"}))
	assert.False(t, looksLikeHeader([]string{"item id", "timestamp"}))
}

func TestCollectDataFilesSingleFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.csv", "a,b\n")

	files, err := CollectDataFiles(path)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestCollectDataFilesDirectory(t *testing.T) {
	dir := t.TempDir()
	b := writeFile(t, dir, "b.csv", "a\n")
	a := writeFile(t, dir, "a.csv", "a\n")
	writeFile(t, dir, "notes.txt", "ignored")

	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	c := writeFile(t, sub, "c.csv", "a\n")

	files, err := CollectDataFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b, c}, files)
}

func TestCollectDataFilesNoCSVs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "ignored")

	_, err := CollectDataFiles(dir)
	assert.Error(t, err)
}

func TestCollectDataFilesMissingPath(t *testing.T) {
	_, err := CollectDataFiles(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
