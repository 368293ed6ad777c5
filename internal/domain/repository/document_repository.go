package repository

import (
	"context"

	"github.com/studioforma/atelier/internal/domain/model"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *model.Document) error
	GetByID(ctx context.Context, id int64) (*model.Document, error)
	Delete(ctx context.Context, id int64) error
	// List returns all documents, or only those of a project when
	// projectID is non-nil.
	List(ctx context.Context, projectID *int64) ([]*model.Document, error)
}

type ProjectImageRepository interface {
	Create(ctx context.Context, image *model.ProjectImage) error
	GetByID(ctx context.Context, id int64) (*model.ProjectImage, error)
	Delete(ctx context.Context, id int64) error
	ListByProject(ctx context.Context, projectID int64) ([]*model.ProjectImage, error)
	CountByProject(ctx context.Context, projectID int64) (int64, error)
}

type MeetingRepository interface {
	Create(ctx context.Context, meeting *model.MeetingLog) error
	GetByID(ctx context.Context, id int64) (*model.MeetingLog, error)
	Update(ctx context.Context, meeting *model.MeetingLog) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, projectID *int64) ([]*model.MeetingLog, error)
}
