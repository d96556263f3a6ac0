package artifact

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStore_CreateWriteClose(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)

	ctx := context.Background()
	data := []byte("0 h00000000 h00000000 h00000000\n")

	w, err := store.Create(ctx, "lut.txt")
	require.NoError(t, err)

	n, err := w.Write(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)

	// Not visible before Close.
	_, err = os.Stat(filepath.Join(tmpDir, "lut.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, w.Close())

	got, err := os.ReadFile(filepath.Join(tmpDir, "lut.txt"))
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestLocalStore_CreatesNestedDirs(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)

	err := Put(context.Background(), store, "build/tanh/report.json", []byte("{}"))
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(tmpDir, "build", "tanh", "report.json"))
	require.NoError(t, err)
	require.Equal(t, []byte("{}"), got)
}

func TestLocalStore_OverwriteIsAtomic(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	require.NoError(t, Put(ctx, store, "lut.txt", []byte("old")))
	require.NoError(t, Put(ctx, store, "lut.txt", []byte("new")))

	got, err := os.ReadFile(filepath.Join(tmpDir, "lut.txt"))
	require.NoError(t, err)
	require.Equal(t, []byte("new"), got)

	// No temp files left behind.
	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
