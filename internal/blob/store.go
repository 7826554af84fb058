// Package blob classifies uploads and stores them in the object bucket.
package blob

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("blob not found")
	ErrInvalidURL = errors.New("url does not belong to this store")
)

// Entry describes a stored object.
type Entry struct {
	Pathname    string    `json:"pathname"`
	URL         string    `json:"url"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

type Store interface {
	// Put stores data under a key derived from filename and returns its public entry.
	Put(ctx context.Context, filename, contentType string, data io.Reader) (Entry, error)
	List(ctx context.Context) ([]Entry, error)
	// Delete removes the object a public URL points to.
	Delete(ctx context.Context, url string) error
}

// objectKey prefixes the base file name with a uuid so uploads never collide.
func objectKey(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "arquivo"
	}
	return uuid.NewString() + "-" + base
}
