// Package artifact abstracts where generated table artifacts are
// written.
//
// The generator's products are small immutable text objects (the LUT
// and the run report). A Store writes them to a destination: the local
// build directory, or an object store (S3, MinIO) so hardware-build CI
// can consume them.
package artifact

import (
	"context"
	"io"
)

// Store writes named artifacts to a destination.
type Store interface {
	// Create opens a named artifact for writing. The artifact becomes
	// visible at the destination when the returned writer is closed
	// without error; a Close error means the artifact must not be
	// trusted.
	Create(ctx context.Context, name string) (io.WriteCloser, error)
}

// Put writes a complete artifact in one call.
func Put(ctx context.Context, s Store, name string, data []byte) error {
	w, err := s.Create(ctx, name)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
