package artifact

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultiStore_WritesToAllStores(t *testing.T) {
	dirA, dirB := t.TempDir(), t.TempDir()
	multi := NewMultiStore(NewLocalStore(dirA), NewLocalStore(dirB))

	data := []byte("63 h00000000 h00000000 h00000000\n")
	require.NoError(t, Put(context.Background(), multi, "lut.txt", data))

	for _, dir := range []string{dirA, dirB} {
		got, err := os.ReadFile(filepath.Join(dir, "lut.txt"))
		require.NoError(t, err)
		require.Equal(t, data, got)
	}
}

func TestMultiStore_Empty(t *testing.T) {
	multi := NewMultiStore()
	require.NoError(t, Put(context.Background(), multi, "report.json", []byte("{}")))
}
