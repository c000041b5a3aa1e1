// Package filestore stores uploaded binaries (attachments, thumbnails)
// behind a backend-agnostic interface. Local disk is the default backend;
// S3 is available for deployments without a persistent volume.
package filestore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"
)

// Asset kinds; each maps to its own prefix within the backend
const (
	KindAttachments = "attachments"
	KindThumbnails  = "thumbnails"
)

// FileStore abstracts where uploaded binaries live
type FileStore interface {
	// Save persists the reader's content under kind/fileName and returns
	// the number of bytes written
	Save(ctx context.Context, kind, fileName string, r io.Reader) (int64, error)
	// Open returns the content for streaming; caller closes
	Open(ctx context.Context, kind, fileName string) (io.ReadCloser, error)
	// Delete removes the file
	Delete(ctx context.Context, kind, fileName string) error
	// Exists reports whether the file is present
	Exists(ctx context.Context, kind, fileName string) bool
	// URL returns the path or URL under which the file is served
	URL(kind, fileName string) string
}

// GenerateFileName produces a collision-free stored name keeping only the
// extension of the original. Uploaded names can carry multibyte characters
// and path separators; none of that reaches the backend.
func GenerateFileName(originalName string) string {
	ext := path.Ext(originalName)
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
}

// GenerateFileNameFromURL derives a stored name for an externally fetched
// asset. Defaults to .jpg when the URL path carries no extension.
func GenerateFileNameFromURL(rawURL string) string {
	ext := ".jpg"
	if u, err := url.Parse(rawURL); err == nil {
		if e := path.Ext(u.Path); e != "" {
			ext = e
		}
	}
	return uuid.NewString() + ext
}
