package artifact

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalStore implements Store on the local file system.
//
// Writes go through a temp file renamed into place on Close, so a
// crashed run never leaves a truncated table behind.
type LocalStore struct {
	root string
}

// NewLocalStore creates a LocalStore rooted at the given directory.
// The directory is created on first write if it does not exist.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Create opens a named artifact for writing.
func (s *LocalStore) Create(_ context.Context, name string) (io.WriteCloser, error) {
	path := filepath.Join(s.root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return nil, err
	}

	return &localArtifact{f: tmp, path: path}, nil
}

type localArtifact struct {
	f    *os.File
	path string
}

func (a *localArtifact) Write(p []byte) (int, error) {
	return a.f.Write(p)
}

func (a *localArtifact) Close() error {
	if err := a.f.Sync(); err != nil {
		a.f.Close()
		os.Remove(a.f.Name())
		return err
	}
	if err := a.f.Close(); err != nil {
		os.Remove(a.f.Name())
		return err
	}
	return os.Rename(a.f.Name(), a.path)
}
