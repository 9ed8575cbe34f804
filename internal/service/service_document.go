package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/internal/store"
	"github.com/MKhiriev/go-access-portal/models"
)

// documentService is the concrete implementation of [DocumentService].
// It is a thin pass-through over the storage layer; access control happens
// in the transport middleware before any call reaches this service.
type documentService struct {
	documentStorage store.DocumentStorage
	logger          *logger.Logger
}

// NewDocumentService constructs a [DocumentService] backed by the given
// document storage.
func NewDocumentService(documentStorage store.DocumentStorage, logger *logger.Logger) DocumentService {
	return &documentService{
		documentStorage: documentStorage,
		logger:          logger,
	}
}

func (s *documentService) ListDocuments(ctx context.Context) ([]models.DocumentInfo, error) {
	return s.documentStorage.ListDocuments(ctx)
}

func (s *documentService) OpenDocument(ctx context.Context, name string) (io.ReadSeekCloser, models.DocumentInfo, error) {
	return s.documentStorage.OpenDocument(ctx, name)
}
