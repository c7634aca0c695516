package documents

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"arvr-research-backend/internal/shared/storage/object"
)

// Service contains business logic for documents.
type Service struct {
	Store object.ObjectStore
	Repo  DocumentsRepo
}

// Upload saves the file to object storage and records the document. Only PDF
// payloads are accepted.
func (s *Service) Upload(ctx context.Context, fileName string, r io.Reader) (Document, error) {
	if strings.TrimSpace(fileName) == "" {
		return Document{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, fileName, r)
	if err != nil {
		return Document{}, err
	}

	if !isPDF(mimeType, fileName) {
		return Document{}, fmt.Errorf("%w: only PDF documents are supported", ErrInvalidInput)
	}

	doc := Document{
		ID:         uuid.NewString(),
		FileName:   fileName,
		MimeType:   "application/pdf",
		SizeBytes:  size,
		StorageKey: storageKey,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	return doc, nil
}

// Get returns a document by ID.
func (s *Service) Get(ctx context.Context, documentID string) (Document, error) {
	if documentID == "" {
		return Document{}, fmt.Errorf("%w: document id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, documentID)
}

// List returns documents ordered newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Document, error) {
	return s.Repo.List(ctx, limit, offset)
}

func isPDF(mimeType, fileName string) bool {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if clean == "application/pdf" {
		return true
	}
	// http.DetectContentType reports octet-stream for some valid PDFs.
	return clean == "application/octet-stream" && strings.HasSuffix(strings.ToLower(fileName), ".pdf")
}
