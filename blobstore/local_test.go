package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/bitview/internal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Layout(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "ns/deep/blob", []byte("data")))

	raw, err := os.ReadFile(filepath.Join(dir, "ns", "deep", "blob"))
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), raw)

	// No temp files are left behind.
	entries, err := os.ReadDir(filepath.Join(dir, "ns", "deep"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLocalStore_InvalidNames(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"", "../escape", "/abs"} {
		assert.ErrorIs(t, store.Put(ctx, name, []byte{1}), ErrInvalidName, name)
		_, err := store.Get(ctx, name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
		assert.ErrorIs(t, store.Delete(ctx, name), ErrInvalidName, name)
	}
}

func TestLocalStore_ListSkipsTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a", []byte{1}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, tempPrefix+"123"), []byte{2}, 0o644))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, names)
}

func TestLocalStore_ListMissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "missing"))

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStore_FailedWriteKeepsOldContent(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	require.NoError(t, NewLocalStore(dir).Put(ctx, "blob", []byte("old")))

	for name, fault := range map[string]fs.Fault{
		"write":  {FailAfterBytes: 0},
		"sync":   {FailAfterBytes: -1, FailOnSync: true},
		"close":  {FailAfterBytes: -1, FailOnClose: true},
		"rename": {FailAfterBytes: -1, FailOnRename: true},
	} {
		t.Run(name, func(t *testing.T) {
			ffs := fs.NewFaultyFS(nil)
			ffs.Default = fault
			store := newLocalStore(dir, ffs)

			err := store.Put(ctx, "blob", []byte("new content"))
			require.ErrorIs(t, err, fs.ErrInjected)

			got, err := store.Get(ctx, "blob")
			require.NoError(t, err)
			assert.Equal(t, []byte("old"), got)

			// The temp file is cleaned up.
			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 1)
		})
	}
}
