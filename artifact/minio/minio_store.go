// Package minio implements artifact.Store on MinIO and other
// S3-compatible object stores.
package minio

import (
	"context"
	"io"
	"path"
	"sync/atomic"

	"github.com/minio/minio-go/v7"
)

// Store implements artifact.Store for MinIO.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewStore creates a new MinIO artifact store.
// rootPrefix is prepended to all keys (e.g. "tanh-v2/").
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Create opens a named artifact for a streaming upload.
func (s *Store) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	key := s.key(name)
	pr, pw := io.Pipe()

	a := &minioArtifact{
		pw:   pw,
		done: make(chan error, 1),
	}

	go func() {
		_, err := s.client.PutObject(ctx, s.bucket, key, pr, -1, minio.PutObjectOptions{})
		_ = pr.CloseWithError(err)
		a.done <- err
	}()

	return a, nil
}

type minioArtifact struct {
	pw     *io.PipeWriter
	done   chan error
	closed atomic.Bool
}

func (a *minioArtifact) Write(p []byte) (int, error) {
	if a.closed.Load() {
		return 0, io.ErrClosedPipe
	}
	return a.pw.Write(p)
}

func (a *minioArtifact) Close() error {
	if !a.closed.CompareAndSwap(false, true) {
		return io.ErrClosedPipe
	}
	if err := a.pw.Close(); err != nil {
		return err
	}
	return <-a.done
}
