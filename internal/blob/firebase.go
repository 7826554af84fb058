package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

const publicHost = "https://storage.googleapis.com"

// FirebaseBucket stores blobs in the project's Cloud Storage bucket. Objects
// are addressed by their storage.googleapis.com URL; read access is governed
// by the bucket policy.
type FirebaseBucket struct {
	bucket *storage.BucketHandle
	name   string
}

func NewFirebaseBucket(bucket *storage.BucketHandle, name string) *FirebaseBucket {
	return &FirebaseBucket{bucket: bucket, name: name}
}

func (b *FirebaseBucket) publicURL(key string) string {
	return publicHost + "/" + b.name + "/" + url.PathEscape(key)
}

func (b *FirebaseBucket) Put(ctx context.Context, filename, contentType string, data io.Reader) (Entry, error) {
	key := objectKey(filename)

	w := b.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, data); err != nil {
		_ = w.Close()
		return Entry{}, fmt.Errorf("upload %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return Entry{}, fmt.Errorf("upload %s: %w", key, err)
	}

	attrs := w.Attrs()
	return Entry{
		Pathname:    key,
		URL:         b.publicURL(key),
		ContentType: attrs.ContentType,
		Size:        attrs.Size,
		UploadedAt:  attrs.Created,
	}, nil
}

func (b *FirebaseBucket) List(ctx context.Context) ([]Entry, error) {
	it := b.bucket.Objects(ctx, nil)

	var out []Entry
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("list blobs: %w", err)
		}
		out = append(out, Entry{
			Pathname:    attrs.Name,
			URL:         b.publicURL(attrs.Name),
			ContentType: attrs.ContentType,
			Size:        attrs.Size,
			UploadedAt:  attrs.Created,
		})
	}
}

func (b *FirebaseBucket) Delete(ctx context.Context, rawURL string) error {
	prefix := publicHost + "/" + b.name + "/"
	if !strings.HasPrefix(rawURL, prefix) {
		return ErrInvalidURL
	}
	key, err := url.PathUnescape(strings.TrimPrefix(rawURL, prefix))
	if err != nil || key == "" {
		return ErrInvalidURL
	}

	if err := b.bucket.Object(key).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("delete blob %s: %w", key, err)
	}
	return nil
}
