package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dgpub/pkg/core"
)

func TestDestination(t *testing.T) {
	ctx := context.Background()

	t.Run("Resolve", func(t *testing.T) {
		root := t.TempDir()
		d := NewDestination(DestinationConfig{Path: root})

		got, err := d.Resolve("notes/a")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "notes", "a", "index.md"), got)

		got, err = d.Resolve("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "index.md"), got)

		got, err = d.Resolve("a/../b")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "b", "index.md"), got)
	})

	t.Run("Rejects Paths Outside The Root", func(t *testing.T) {
		d := NewDestination(DestinationConfig{Path: t.TempDir()})

		for _, p := range []string{"..", "../x", "a/../../x"} {
			_, err := d.Resolve(p)
			assert.True(t, errors.Is(err, core.ErrInvalidPath), "path %q: %v", p, err)
		}
	})

	t.Run("Ensure Read Write", func(t *testing.T) {
		root := t.TempDir()
		d := NewDestination(DestinationConfig{Path: root})

		_, err := d.Read(ctx, "notes/a")
		assert.True(t, errors.Is(err, iofs.ErrNotExist), "missing index must be not-found: %v", err)
		assert.True(t, errors.Is(err, core.ErrDestinationRead))

		require.NoError(t, d.Ensure(ctx, "notes/a"))
		info, err := os.Stat(filepath.Join(root, "notes", "a"))
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		require.NoError(t, d.Write(ctx, "notes/a", "Hello"))
		got, err := d.Read(ctx, "notes/a")
		require.NoError(t, err)
		assert.Equal(t, "Hello", got)

		require.NoError(t, d.Write(ctx, "notes/a", "Hi"))
		got, err = d.Read(ctx, "notes/a")
		require.NoError(t, err)
		assert.Equal(t, "Hi", got, "writes replace the whole file")

		assert.Equal(t, 2, d.State().(DestinationState).Writes)
	})

	t.Run("Ensure Fails On File In The Way", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "notes"), []byte("x"), 0644))
		d := NewDestination(DestinationConfig{Path: root})

		err := d.Ensure(ctx, "notes/a")
		assert.True(t, errors.Is(err, core.ErrDirectoryCreate), "got %v", err)
	})

	t.Run("Write Without Directory Fails", func(t *testing.T) {
		d := NewDestination(DestinationConfig{Path: t.TempDir()})

		err := d.Write(ctx, "missing", "x")
		assert.True(t, errors.Is(err, core.ErrWrite), "got %v", err)
	})

	t.Run("Invalid UTF-8 Is A Read Failure", func(t *testing.T) {
		root := t.TempDir()
		d := NewDestination(DestinationConfig{Path: root, IndexFile: "page.md"})
		require.NoError(t, d.Ensure(ctx, "x"))
		require.NoError(t, os.WriteFile(filepath.Join(root, "x", "page.md"), []byte{0xff}, 0644))

		_, err := d.Read(ctx, "x")
		assert.True(t, errors.Is(err, core.ErrDestinationRead))
		assert.False(t, errors.Is(err, iofs.ErrNotExist))
	})
}
