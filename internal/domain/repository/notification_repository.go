package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/studioforma/atelier/internal/domain/model"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	GetByID(ctx context.Context, id int64) (*model.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*model.Notification, error)
	// MarkRead flips is_read for a notification owned by the given user.
	MarkRead(ctx context.Context, id int64, userID uuid.UUID) error
	// MarkSent stamps sent_at after the email provider accepted the message.
	MarkSent(ctx context.Context, id int64, sentAt time.Time) error
}

type MemberRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error)
	GetByEmail(ctx context.Context, email string) (*model.Member, error)
	List(ctx context.Context) ([]*model.Member, error)
	// Upsert syncs a directory entry from the identity provider.
	Upsert(ctx context.Context, member *model.Member) error
}
