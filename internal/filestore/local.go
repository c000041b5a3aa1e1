package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local stores files on the local filesystem under baseDir, served by the
// router as static /uploads content.
type Local struct {
	baseDir string
}

// NewLocal creates the upload directories and returns a Local store
func NewLocal(baseDir string) (*Local, error) {
	for _, kind := range []string{KindAttachments, KindThumbnails} {
		if err := os.MkdirAll(filepath.Join(baseDir, kind), 0o755); err != nil {
			return nil, fmt.Errorf("filestore: create %s dir: %w", kind, err)
		}
	}
	return &Local{baseDir: baseDir}, nil
}

// BaseDir returns the root of the upload tree
func (l *Local) BaseDir() string {
	return l.baseDir
}

func (l *Local) fullPath(kind, fileName string) string {
	// fileName is always generated; Base guards against traversal anyway
	return filepath.Join(l.baseDir, kind, filepath.Base(fileName))
}

func (l *Local) Save(ctx context.Context, kind, fileName string, r io.Reader) (int64, error) {
	dst, err := os.Create(l.fullPath(kind, fileName))
	if err != nil {
		return 0, fmt.Errorf("filestore: create %s: %w", fileName, err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, r)
	if err != nil {
		os.Remove(dst.Name())
		return 0, fmt.Errorf("filestore: write %s: %w", fileName, err)
	}
	return n, nil
}

func (l *Local) Open(ctx context.Context, kind, fileName string) (io.ReadCloser, error) {
	f, err := os.Open(l.fullPath(kind, fileName))
	if err != nil {
		return nil, fmt.Errorf("filestore: open %s: %w", fileName, err)
	}
	return f, nil
}

func (l *Local) Delete(ctx context.Context, kind, fileName string) error {
	if err := os.Remove(l.fullPath(kind, fileName)); err != nil {
		return fmt.Errorf("filestore: delete %s: %w", fileName, err)
	}
	return nil
}

func (l *Local) Exists(ctx context.Context, kind, fileName string) bool {
	_, err := os.Stat(l.fullPath(kind, fileName))
	return err == nil
}

func (l *Local) URL(kind, fileName string) string {
	return "/uploads/" + kind + "/" + fileName
}
