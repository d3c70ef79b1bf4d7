package catalog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(`
subjects:
  - key: geo
    display_name: Geography
    file: geo.json
  - key: colours
    file: colours.json
`))
	require.NoError(t, err)
	require.Len(t, m.Subjects, 2)
	assert.Equal(t, ManifestEntry{Key: "geo", DisplayName: "Geography", File: "geo.json"}, m.Subjects[0])
	assert.Equal(t, "", m.Subjects[1].DisplayName)
}

func TestParseManifest_Invalid(t *testing.T) {
	_, err := ParseManifest([]byte("subjects: [oops"))
	assert.Error(t, err)

	_, err = ParseManifest([]byte("subjects:\n  - key: geo\n"))
	assert.Error(t, err, "file is required")
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "geo.json", sampleFile)
	writeFile(t, dir, "broken.json", `{"questions": [`)
	path := writeFile(t, dir, "catalog.yaml", `
subjects:
  - key: geo
    display_name: Geography
    file: geo.json
  - key: broken
    file: broken.json
  - key: missing
    file: missing.json
  - key: geo
    display_name: Second
    file: geo.json
`)

	cat, err := NewLoader(3, discardLogger()).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"geo"}, cat.Keys())
	assert.Equal(t, "Geography", cat["geo"].DisplayName)
	assert.Len(t, cat["geo"].File.Questions, 2)
}

func TestLoader_MissingManifest(t *testing.T) {
	_, err := NewLoader(1, discardLogger()).Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoader_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "geo.json", sampleFile)
	path := writeFile(t, dir, "catalog.yaml", "subjects:\n  - key: geo\n    file: geo.json\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(2, discardLogger()).Load(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCatalogKeysSorted(t *testing.T) {
	cat := Catalog{"b": {}, "c": {}, "a": {}}
	assert.Equal(t, []string{"a", "b", "c"}, cat.Keys())
}
