package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/studioforma/atelier/internal/domain/model"
)

// TaskFilter narrows task listings. Nil fields are ignored.
type TaskFilter struct {
	AssignedTo *uuid.UUID
	CreatedBy  *uuid.UUID
	ProjectID  *int64
	Status     *model.TaskStatus
	Priority   *model.TaskPriority
}

type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id int64) (*model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter TaskFilter) ([]*model.Task, error)
	ListByProject(ctx context.Context, projectID int64) ([]*model.Task, error)
	// ListDueBetween returns assigned, uncompleted tasks whose due date
	// falls inside [from, to].
	ListDueBetween(ctx context.Context, from, to time.Time) ([]*model.Task, error)
	// ListOverdue returns assigned, uncompleted tasks whose due date has
	// passed as of the given instant.
	ListOverdue(ctx context.Context, asOf time.Time) ([]*model.Task, error)
}
