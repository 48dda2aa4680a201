package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dgpub/pkg/core"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func names(entries []core.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	sort.Strings(out)
	return out
}

func TestSource_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Regular Files Only, No Recursion", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"a.md":      "x",
			"b.txt":     "y",
			"no-ext":    "z",
			".hidden":   "h",
			"draft.org": "o",
		})
		require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))
		writeFiles(t, filepath.Join(dir, "nested"), map[string]string{"deep.md": "d"})

		src, err := NewSource(SourceConfig{Path: dir})
		require.NoError(t, err)

		entries, err := src.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{".hidden", "a.md", "b.txt", "draft.org", "no-ext"}, names(entries))

		state := src.State().(SourceState)
		assert.Equal(t, 5, state.LastListed)
		assert.Equal(t, 1, state.LastSkipped)
	})

	t.Run("Follows Symlinks To Files", func(t *testing.T) {
		dir := t.TempDir()
		outside := t.TempDir()
		writeFiles(t, outside, map[string]string{"real.md": "x"})
		if err := os.Symlink(filepath.Join(outside, "real.md"), filepath.Join(dir, "link.md")); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}
		if err := os.Symlink(filepath.Join(dir, "missing.md"), filepath.Join(dir, "dangling.md")); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}

		src, err := NewSource(SourceConfig{Path: dir})
		require.NoError(t, err)

		entries, err := src.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"link.md"}, names(entries))
	})

	t.Run("Include And Exclude", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"a.md":          "x",
			"b.md":          "x",
			"skip.draft.md": "x",
			"c.txt":         "x",
		})

		src, err := NewSource(SourceConfig{
			Path:    dir,
			Include: []string{"*.md"},
			Exclude: []string{"*.draft.md"},
		})
		require.NoError(t, err)

		entries, err := src.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.md", "b.md"}, names(entries))
	})

	t.Run("Invalid Pattern", func(t *testing.T) {
		_, err := NewSource(SourceConfig{Path: t.TempDir(), Include: []string{"[a-"}})
		assert.Error(t, err)
	})

	t.Run("Missing Directory Is Fatal", func(t *testing.T) {
		src, err := NewSource(SourceConfig{Path: filepath.Join(t.TempDir(), "origin")})
		require.NoError(t, err)

		_, err = src.List(ctx)
		assert.True(t, errors.Is(err, core.ErrSourceDir), "got %v", err)
	})
}

func TestSource_Read(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"ok.md":  "---\ndg: true\n---\nbody",
		"bin.md": string([]byte{0xff, 0xfe, 0x00}),
	})

	src, err := NewSource(SourceConfig{Path: dir})
	require.NoError(t, err)

	got, err := src.Read(ctx, "ok.md")
	require.NoError(t, err)
	assert.Equal(t, "---\ndg: true\n---\nbody", got)

	_, err = src.Read(ctx, "bin.md")
	assert.True(t, errors.Is(err, core.ErrSourceRead))

	_, err = src.Read(ctx, "absent.md")
	assert.True(t, errors.Is(err, core.ErrSourceRead))
}
