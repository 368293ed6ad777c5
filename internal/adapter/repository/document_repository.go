package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/studioforma/atelier/internal/domain/errors"
	"github.com/studioforma/atelier/internal/domain/model"
	"github.com/studioforma/atelier/internal/domain/repository"
)

type documentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB, logger *zap.Logger) repository.DocumentRepository {
	return &documentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *documentRepository) Create(ctx context.Context, document *model.Document) error {
	if err := r.db.WithContext(ctx).Create(document).Error; err != nil {
		r.logger.Error("Failed to create document",
			zap.String("file_name", document.FileName),
			zap.Error(err))
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

func (r *documentRepository) GetByID(ctx context.Context, id int64) (*model.Document, error) {
	var document model.Document

	err := r.db.WithContext(ctx).First(&document, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return &document, nil
}

func (r *documentRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Document{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete document: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepository) List(ctx context.Context, projectID *int64) ([]*model.Document, error) {
	query := r.db.WithContext(ctx).Model(&model.Document{})
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	var documents []*model.Document
	if err := query.Order("created_at DESC").Find(&documents).Error; err != nil {
		r.logger.Error("Failed to list documents", zap.Error(err))
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return documents, nil
}

type projectImageRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewProjectImageRepository creates a new project image repository
func NewProjectImageRepository(db *gorm.DB, logger *zap.Logger) repository.ProjectImageRepository {
	return &projectImageRepository{
		db:     db,
		logger: logger,
	}
}

func (r *projectImageRepository) Create(ctx context.Context, image *model.ProjectImage) error {
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		r.logger.Error("Failed to create project image",
			zap.Int64("project_id", image.ProjectID),
			zap.Error(err))
		return fmt.Errorf("failed to create project image: %w", err)
	}
	return nil
}

func (r *projectImageRepository) GetByID(ctx context.Context, id int64) (*model.ProjectImage, error) {
	var image model.ProjectImage

	err := r.db.WithContext(ctx).First(&image, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to get project image: %w", err)
	}

	return &image, nil
}

func (r *projectImageRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.ProjectImage{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete project image: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrImageNotFound
	}
	return nil
}

func (r *projectImageRepository) ListByProject(ctx context.Context, projectID int64) ([]*model.ProjectImage, error) {
	var images []*model.ProjectImage

	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list project images: %w", err)
	}
	return images, nil
}

func (r *projectImageRepository) CountByProject(ctx context.Context, projectID int64) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.ProjectImage{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count project images: %w", err)
	}
	return count, nil
}

type meetingRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewMeetingRepository creates a new meeting log repository
func NewMeetingRepository(db *gorm.DB, logger *zap.Logger) repository.MeetingRepository {
	return &meetingRepository{
		db:     db,
		logger: logger,
	}
}

func (r *meetingRepository) Create(ctx context.Context, meeting *model.MeetingLog) error {
	if err := r.db.WithContext(ctx).Create(meeting).Error; err != nil {
		r.logger.Error("Failed to create meeting log",
			zap.String("title", meeting.Title),
			zap.Error(err))
		return fmt.Errorf("failed to create meeting log: %w", err)
	}
	return nil
}

func (r *meetingRepository) GetByID(ctx context.Context, id int64) (*model.MeetingLog, error) {
	var meeting model.MeetingLog

	err := r.db.WithContext(ctx).First(&meeting, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting log: %w", err)
	}

	return &meeting, nil
}

func (r *meetingRepository) Update(ctx context.Context, meeting *model.MeetingLog) error {
	if err := r.db.WithContext(ctx).Save(meeting).Error; err != nil {
		return fmt.Errorf("failed to update meeting log: %w", err)
	}
	return nil
}

func (r *meetingRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.MeetingLog{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete meeting log: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrMeetingNotFound
	}
	return nil
}

func (r *meetingRepository) List(ctx context.Context, projectID *int64) ([]*model.MeetingLog, error) {
	query := r.db.WithContext(ctx).Model(&model.MeetingLog{})
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	var meetings []*model.MeetingLog
	if err := query.Order("held_at DESC").Find(&meetings).Error; err != nil {
		return nil, fmt.Errorf("failed to list meeting logs: %w", err)
	}
	return meetings, nil
}
