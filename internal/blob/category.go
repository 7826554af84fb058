package blob

import (
	"fmt"
	"mime"
	"strings"
)

type Category string

const (
	CategoryPhoto    Category = "photo"
	CategoryVideo    Category = "video"
	CategoryDocument Category = "document"
	CategoryUnknown  Category = "unknown"
)

const mib = 1 << 20

// Limits holds the byte ceiling per category.
var Limits = map[Category]int64{
	CategoryPhoto:    5 * mib,
	CategoryVideo:    50 * mib,
	CategoryDocument: 10 * mib,
}

func isDocument(mediaType string) bool {
	switch mediaType {
	case "application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-powerpoint",
		"application/vnd.openxmlformats-officedocument.presentationml.presentation",
		"application/vnd.oasis.opendocument.text",
		"application/vnd.oasis.opendocument.spreadsheet",
		"application/vnd.oasis.opendocument.presentation",
		"application/rtf",
		"text/plain",
		"text/csv":
		return true
	}
	return false
}

// Classify maps a MIME type (parameters allowed) to its upload category.
func Classify(contentType string) Category {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))

	switch {
	case strings.HasPrefix(mediaType, "image/"):
		return CategoryPhoto
	case strings.HasPrefix(mediaType, "video/"):
		return CategoryVideo
	case isDocument(mediaType):
		return CategoryDocument
	default:
		return CategoryUnknown
	}
}

// UnsupportedTypeError rejects a MIME type outside the category table.
type UnsupportedTypeError struct {
	ContentType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("Tipo de arquivo não suportado: %q. Envie uma foto, um vídeo ou um documento", e.ContentType)
}

// TooLargeError rejects a file over its category limit.
type TooLargeError struct {
	Category Category
	Limit    int64
	Size     int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("Arquivo muito grande. O limite para %s é %d MB", e.Category, e.Limit/mib)
}

// Validate classifies an upload and enforces its size ceiling.
func Validate(contentType string, size int64) (Category, error) {
	cat := Classify(contentType)
	limit, ok := Limits[cat]
	if !ok {
		return cat, &UnsupportedTypeError{ContentType: contentType}
	}
	if size > limit {
		return cat, &TooLargeError{Category: cat, Limit: limit, Size: size}
	}
	return cat, nil
}
