package gen

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collection-generator/internal/plan"
)

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pkg", "zz_generated.collections.go")
	files := []GeneratedFile{{Path: path, Content: []byte(Header + "\n\npackage pkg\n")}}

	written, err := WriteFiles(files)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, written)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, files[0].Content, got)

	// Unchanged content is not rewritten.
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, past, past))

	written, err = WriteFiles(files)
	require.NoError(t, err)
	assert.Empty(t, written)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.WithinDuration(t, past, info.ModTime(), time.Second)
}

func TestIsGenerated(t *testing.T) {
	dir := t.TempDir()

	gen := filepath.Join(dir, "gen.go")
	require.NoError(t, os.WriteFile(gen, []byte(Header+"\n\npackage x\n"), 0o644))

	hand := filepath.Join(dir, "hand.go")
	require.NoError(t, os.WriteFile(hand, []byte("package x\n"), 0o644))

	empty := filepath.Join(dir, "empty.go")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	ok, err := IsGenerated(gen)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsGenerated(hand)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = IsGenerated(empty)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = IsGenerated(filepath.Join(dir, "missing.go"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestObsoleteAndRemove(t *testing.T) {
	dir := t.TempDir()

	gen := filepath.Join(dir, "a", "zz_generated.collections.go")
	require.NoError(t, os.MkdirAll(filepath.Dir(gen), 0o755))
	require.NoError(t, os.WriteFile(gen, []byte(Header+"\n\npackage a\n"), 0o644))

	hand := filepath.Join(dir, "b", "zz_generated.collections.go")
	require.NoError(t, os.MkdirAll(filepath.Dir(hand), 0o755))
	require.NoError(t, os.WriteFile(hand, []byte("package b\n"), 0o644))

	plans := []*plan.PackagePlan{
		{Path: "a", ExistingFile: gen},
		{Path: "b", ExistingFile: hand},
		{Path: "c", ExistingFile: filepath.Join(dir, "c.go"), Collections: []plan.Collection{{Name: "Cs"}}},
		{Path: "d"},
	}

	obsolete, err := Obsolete(plans)
	require.NoError(t, err)
	assert.Equal(t, []string{gen}, obsolete)

	require.NoError(t, RemoveFiles(obsolete))
	assert.NoFileExists(t, gen)
	assert.FileExists(t, hand)

	// Removing again is not an error.
	require.NoError(t, RemoveFiles(obsolete))
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	current := filepath.Join(dir, "current.go")
	stale := filepath.Join(dir, "stale.go")
	missing := filepath.Join(dir, "missing.go")

	content := []byte(Header + "\n\npackage x\n")
	require.NoError(t, os.WriteFile(current, content, 0o644))
	require.NoError(t, os.WriteFile(stale, []byte(Header+"\n\npackage old\n"), 0o644))

	got, err := Check([]GeneratedFile{{Path: current, Content: content}}, nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Check([]GeneratedFile{
		{Path: current, Content: content},
		{Path: stale, Content: content},
		{Path: missing, Content: content},
	}, nil)
	require.ErrorIs(t, err, ErrStale)
	assert.Equal(t, []string{stale, missing}, got)
}

func TestWriteDebugUnformatted(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeDebugUnformatted(dir, "zz_generated.collections.go", []byte("package x\nfunc {")))

	got, err := os.ReadFile(filepath.Join(dir, "zz_generated.collections.unformatted.go"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "//go:build ignore")
	assert.Contains(t, string(got), "func {")

	require.NoError(t, writeDebugUnformatted("", "x.go", nil))
}
