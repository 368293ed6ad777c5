package usecase

import (
	"context"
	"fmt"
	"path"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/studioforma/atelier/internal/domain/errors"
	"github.com/studioforma/atelier/internal/domain/model"
	"github.com/studioforma/atelier/internal/domain/repository"
	"github.com/studioforma/atelier/internal/domain/role"
)

// UploadResult is what the blob storage collaborator reports back after an
// upload. Only the key, URL and metadata are kept; the bytes stay external.
type UploadResult struct {
	Key       string
	PublicURL string
	Size      int64
	MimeType  string
}

// BlobUploader is the external object storage boundary. Remove takes the
// exact key a previous Upload stored under.
type BlobUploader interface {
	Upload(ctx context.Context, objectKey, contentType string, data []byte) (*UploadResult, error)
	Remove(ctx context.Context, objectKey string) error
}

// DocumentService handles document and gallery image uploads. Every valid
// role may view, upload and manage documents.
type DocumentService struct {
	documentRepo repository.DocumentRepository
	imageRepo    repository.ProjectImageRepository
	storage      BlobUploader
	logger       *zap.Logger
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	documentRepo repository.DocumentRepository,
	imageRepo repository.ProjectImageRepository,
	storage BlobUploader,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		imageRepo:    imageRepo,
		storage:      storage,
		logger:       logger,
	}
}

// UploadDocumentInput carries an uploaded file and its placement.
type UploadDocumentInput struct {
	Title     string
	FileName  string
	MimeType  string
	Data      []byte
	ProjectID *int64
}

// UploadDocument stores the file with the blob collaborator and persists
// the returned URL and metadata.
func (s *DocumentService) UploadDocument(ctx context.Context, actor role.Actor, input UploadDocumentInput) (*model.Document, error) {
	if !actor.Role.CanManageDocuments() {
		return nil, domainErrors.NewNotAuthorizedError(actor.ID.String(), "managing documents")
	}
	if input.FileName == "" || len(input.Data) == 0 {
		return nil, domainErrors.NewValidationError(actor.ID.String(), "file name and content are required")
	}

	objectPath := path.Join("documents", fmt.Sprintf("%d_%s", time.Now().UnixNano(), input.FileName))
	uploaded, err := s.storage.Upload(ctx, objectPath, input.MimeType, input.Data)
	if err != nil {
		return nil, err
	}

	title := input.Title
	if title == "" {
		title = input.FileName
	}

	document := &model.Document{
		ProjectID:  input.ProjectID,
		Title:      title,
		FileName:   input.FileName,
		StorageKey: uploaded.Key,
		PublicURL:  uploaded.PublicURL,
		SizeBytes:  uploaded.Size,
		MimeType:   uploaded.MimeType,
		UploadedBy: actor.ID,
	}

	if err := s.documentRepo.Create(ctx, document); err != nil {
		return nil, err
	}

	s.logger.Info("Document uploaded",
		zap.Int64("document_id", document.ID),
		zap.String("file_name", document.FileName),
		zap.Int64("size_bytes", document.SizeBytes))

	return document, nil
}

// DeleteDocument removes the metadata row. Blob removal is best effort;
// an orphaned object costs storage, a dangling URL costs a broken link.
func (s *DocumentService) DeleteDocument(ctx context.Context, actor role.Actor, id int64) error {
	if !actor.Role.CanManageDocuments() {
		return domainErrors.NewNotAuthorizedError(actor.ID.String(), "managing documents")
	}

	document, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.storage.Remove(ctx, document.StorageKey); err != nil {
		s.logger.Warn("Failed to remove blob for deleted document",
			zap.Int64("document_id", id),
			zap.Error(err))
	}
	return nil
}

// ListDocuments returns all documents, optionally scoped to one project.
func (s *DocumentService) ListDocuments(ctx context.Context, projectID *int64) ([]*model.Document, error) {
	return s.documentRepo.List(ctx, projectID)
}

// UploadImageInput carries an uploaded gallery image.
type UploadImageInput struct {
	ProjectID int64
	Caption   string
	FileName  string
	MimeType  string
	Data      []byte
}

// UploadImage stores a gallery photo for a project.
func (s *DocumentService) UploadImage(ctx context.Context, actor role.Actor, input UploadImageInput) (*model.ProjectImage, error) {
	if !actor.Role.CanManageDocuments() {
		return nil, domainErrors.NewNotAuthorizedError(actor.ID.String(), "managing documents")
	}
	if input.FileName == "" || len(input.Data) == 0 {
		return nil, domainErrors.NewValidationError(actor.ID.String(), "file name and content are required")
	}

	objectPath := path.Join("gallery", fmt.Sprintf("%d", input.ProjectID), fmt.Sprintf("%d_%s", time.Now().UnixNano(), input.FileName))
	uploaded, err := s.storage.Upload(ctx, objectPath, input.MimeType, input.Data)
	if err != nil {
		return nil, err
	}

	image := &model.ProjectImage{
		ProjectID:  input.ProjectID,
		Caption:    input.Caption,
		StorageKey: uploaded.Key,
		PublicURL:  uploaded.PublicURL,
		SizeBytes:  uploaded.Size,
		MimeType:   uploaded.MimeType,
		UploadedBy: actor.ID,
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

// DeleteImage removes a gallery photo.
func (s *DocumentService) DeleteImage(ctx context.Context, actor role.Actor, id int64) error {
	if !actor.Role.CanManageDocuments() {
		return domainErrors.NewNotAuthorizedError(actor.ID.String(), "managing documents")
	}

	image, err := s.imageRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.imageRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.storage.Remove(ctx, image.StorageKey); err != nil {
		s.logger.Warn("Failed to remove blob for deleted image",
			zap.Int64("image_id", id),
			zap.Error(err))
	}
	return nil
}

// ListImages returns the gallery of a project.
func (s *DocumentService) ListImages(ctx context.Context, projectID int64) ([]*model.ProjectImage, error) {
	return s.imageRepo.ListByProject(ctx, projectID)
}
