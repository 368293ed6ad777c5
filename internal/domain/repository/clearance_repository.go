package repository

import (
	"context"

	"github.com/studioforma/atelier/internal/domain/model"
)

type ClearanceRepository interface {
	// Create inserts a new pending clearance request. Inserting a second
	// pending request for the same task returns a duplicate-pending
	// workflow error backed by the partial unique index.
	Create(ctx context.Context, clearance *model.ClearanceRequest) error
	GetByID(ctx context.Context, id int64) (*model.ClearanceRequest, error)
	Update(ctx context.Context, clearance *model.ClearanceRequest) error
	ListByTask(ctx context.Context, taskID int64) ([]*model.ClearanceRequest, error)
	// ListPending returns the chief's approval queue, oldest first.
	ListPending(ctx context.Context) ([]*model.ClearanceRequest, error)
}
