package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainErrors "github.com/studioforma/atelier/internal/domain/errors"
	"github.com/studioforma/atelier/internal/domain/model"
	"github.com/studioforma/atelier/internal/domain/repository"
)

type notificationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB, logger *zap.Logger) repository.NotificationRepository {
	return &notificationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		r.logger.Error("Failed to create notification",
			zap.String("user_id", notification.UserID.String()),
			zap.String("type", string(notification.Type)),
			zap.Error(err))
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id int64) (*model.Notification, error) {
	var notification model.Notification

	err := r.db.WithContext(ctx).First(&notification, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	return &notification, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*model.Notification, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = false")
	}

	var notifications []*model.Notification
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		r.logger.Error("Failed to list notifications",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id int64, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)

	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepository) MarkSent(ctx context.Context, id int64, sentAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ?", id).
		Update("sent_at", sentAt)

	if result.Error != nil {
		return fmt.Errorf("failed to mark notification sent: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrNotificationNotFound
	}
	return nil
}

type memberRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB, logger *zap.Logger) repository.MemberRepository {
	return &memberRepository{
		db:     db,
		logger: logger,
	}
}

func (r *memberRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	var member model.Member

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &member, nil
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*model.Member, error) {
	var member model.Member

	err := r.db.WithContext(ctx).Where("email = ?", email).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member by email: %w", err)
	}

	return &member, nil
}

func (r *memberRepository) List(ctx context.Context) ([]*model.Member, error) {
	var members []*model.Member

	if err := r.db.WithContext(ctx).Order("full_name ASC").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

func (r *memberRepository) Upsert(ctx context.Context, member *model.Member) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "full_name", "role", "updated_at"}),
		}).
		Create(member).Error
	if err != nil {
		r.logger.Error("Failed to upsert member",
			zap.String("member_id", member.ID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to upsert member: %w", err)
	}
	return nil
}
