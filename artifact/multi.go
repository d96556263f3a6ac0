package artifact

import (
	"context"
	"errors"
	"io"
)

// MultiStore fans writes out to several stores, e.g. the local build
// directory plus an object store for CI consumption. Create succeeds
// only if it succeeds on every underlying store, and Close reports the
// first failure from any of them.
type MultiStore struct {
	stores []Store
}

// NewMultiStore creates a MultiStore over the given stores.
func NewMultiStore(stores ...Store) *MultiStore {
	return &MultiStore{stores: stores}
}

// Create opens the named artifact on every underlying store.
func (m *MultiStore) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	ws := make([]io.WriteCloser, 0, len(m.stores))
	for _, s := range m.stores {
		w, err := s.Create(ctx, name)
		if err != nil {
			for _, open := range ws {
				open.Close()
			}
			return nil, err
		}
		ws = append(ws, w)
	}
	return &multiArtifact{ws: ws}, nil
}

type multiArtifact struct {
	ws []io.WriteCloser
}

func (a *multiArtifact) Write(p []byte) (int, error) {
	for _, w := range a.ws {
		if _, err := w.Write(p); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

func (a *multiArtifact) Close() error {
	var errs []error
	for _, w := range a.ws {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
