package service

import (
	"context"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/if-project/agenda-backend/internal/blob"
	"github.com/if-project/agenda-backend/internal/logging"
)

// Upload is a file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// AttachmentService validates uploads and hands them to the blob store.
type AttachmentService struct {
	store blob.Store
}

func NewAttachmentService(store blob.Store) *AttachmentService {
	return &AttachmentService{store: store}
}

// Upload rejects unsupported types and oversized files before storing.
func (s *AttachmentService) Upload(ctx context.Context, u *Upload) (blob.Entry, error) {
	contentType := resolveContentType(u.ContentType, u.Filename)
	category, err := blob.Validate(contentType, u.Size)
	if err != nil {
		return blob.Entry{}, err
	}

	entry, err := s.store.Put(ctx, u.Filename, contentType, u.Body)
	if err != nil {
		return blob.Entry{}, err
	}
	logging.FromContext(ctx).Info("attachment stored", "category", category, "size", u.Size, "pathname", entry.Pathname)
	return entry, nil
}

func (s *AttachmentService) List(ctx context.Context) ([]blob.Entry, error) {
	return s.store.List(ctx)
}

func (s *AttachmentService) Delete(ctx context.Context, url string) error {
	return s.store.Delete(ctx, url)
}

// resolveContentType falls back to the file extension when the client sent
// no usable type.
func resolveContentType(declared, filename string) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); byExt != "" {
		return byExt
	}
	return declared
}
