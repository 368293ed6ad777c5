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

type projectRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB, logger *zap.Logger) repository.ProjectRepository {
	return &projectRepository{
		db:     db,
		logger: logger,
	}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		r.logger.Error("Failed to create project",
			zap.String("name", project.Name),
			zap.Error(err))
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	var project model.Project

	err := r.db.WithContext(ctx).Preload("Client").First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrProjectNotFound
		}
		r.logger.Error("Failed to get project",
			zap.Int64("project_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &project, nil
}

func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		r.logger.Error("Failed to update project",
			zap.Int64("project_id", project.ID),
			zap.Error(err))
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

func (r *projectRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("id = ?", id).
		Updates(fields)

	if result.Error != nil {
		r.logger.Error("Failed to update project fields",
			zap.Int64("project_id", id),
			zap.Error(result.Error))
		return fmt.Errorf("failed to update project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrProjectNotFound
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Project{}, id)
	if result.Error != nil {
		r.logger.Error("Failed to delete project",
			zap.Int64("project_id", id),
			zap.Error(result.Error))
		return fmt.Errorf("failed to delete project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrProjectNotFound
	}
	return nil
}

func (r *projectRepository) List(ctx context.Context) ([]*model.Project, error) {
	var projects []*model.Project

	err := r.db.WithContext(ctx).
		Preload("Client").
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		r.logger.Error("Failed to list projects", zap.Error(err))
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

type clientRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB, logger *zap.Logger) repository.ClientRepository {
	return &clientRepository{
		db:     db,
		logger: logger,
	}
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		r.logger.Error("Failed to create client",
			zap.String("name", client.Name),
			zap.Error(err))
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	var client model.Client

	err := r.db.WithContext(ctx).First(&client, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return &client, nil
}

func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	if err := r.db.WithContext(ctx).Save(client).Error; err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Client{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrClientNotFound
	}
	return nil
}

func (r *clientRepository) List(ctx context.Context) ([]*model.Client, error) {
	var clients []*model.Client

	if err := r.db.WithContext(ctx).Order("name ASC").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}
