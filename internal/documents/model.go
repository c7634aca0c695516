package documents

import (
	"errors"
	"time"
)

// Document represents an uploaded PDF research document.
type Document struct {
	ID               string
	FileName         string
	MimeType         string
	SizeBytes        int64
	StorageKey       string
	ExtractedTextKey string
	ExtractedAt      *time.Time
	CreatedAt        time.Time
}

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrInvalidInput is returned for malformed upload requests.
var ErrInvalidInput = errors.New("invalid input")
