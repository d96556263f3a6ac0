// Package s3 implements artifact.Store on Amazon S3.
package s3

import (
	"context"
	"io"
	"path"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Store implements artifact.Store for S3.
type Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewStore creates a new S3 artifact store.
// rootPrefix is prepended to all keys (e.g. "tanh-v2/").
func NewStore(client *s3.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Create opens a named artifact for a streaming upload. The object is
// committed when the returned writer is closed; a Close error means the
// upload failed and the object must not be trusted.
func (s *Store) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	key := s.key(name)
	pr, pw := io.Pipe()

	a := &s3Artifact{
		pw:   pw,
		done: make(chan error, 1),
	}

	uploader := manager.NewUploader(s.client)

	// Start upload in background; it completes when the writer closes.
	go func() {
		_, err := uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
			Body:   pr,
		})
		_ = pr.CloseWithError(err)
		a.done <- err
	}()

	return a, nil
}

type s3Artifact struct {
	pw     *io.PipeWriter
	done   chan error
	closed atomic.Bool
}

func (a *s3Artifact) Write(p []byte) (int, error) {
	if a.closed.Load() {
		return 0, io.ErrClosedPipe
	}
	return a.pw.Write(p)
}

func (a *s3Artifact) Close() error {
	if !a.closed.CompareAndSwap(false, true) {
		return io.ErrClosedPipe
	}
	if err := a.pw.Close(); err != nil {
		return err
	}
	return <-a.done
}
