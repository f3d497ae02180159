package repository

import (
	"context"

	"github.com/parth10-05/verita/internal/cache"
	"github.com/parth10-05/verita/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id uint) (*models.Notification, error)
	ListByRecipient(ctx context.Context, recipientID uint, unreadOnly bool, limit, offset int) ([]*models.Notification, int64, error)
	CountUnread(ctx context.Context, recipientID uint) (int64, error)
	MarkRead(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context, recipientID uint) error
	Delete(ctx context.Context, id uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	err := r.db.WithContext(ctx).Create(notification).Error
	if err == nil {
		cache.InvalidateUnreadCount(ctx, notification.RecipientID)
	}
	return err
}

func (r *notificationRepository) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.WithContext(ctx).Preload("Sender").First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID uint, unreadOnly bool, limit, offset int) ([]*models.Notification, int64, error) {
	var notifications []*models.Notification
	var total int64

	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Notification{}).
			Where("recipient_id = ?", recipientID)
		if unreadOnly {
			q = q.Where("is_read = ?", false)
		}
		return q
	}

	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query().
		Preload("Sender").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// CountUnread returns the unread count, serving from the Redis cache when a
// value is present and falling back to the database otherwise.
func (r *notificationRepository) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	if n, ok := cache.GetUnreadCount(ctx, recipientID); ok {
		return n, nil
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	cache.SetUnreadCount(ctx, recipientID, count)
	return count, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uint) error {
	var notification models.Notification
	if err := r.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
	if err == nil {
		cache.InvalidateUnreadCount(ctx, notification.RecipientID)
	}
	return err
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID uint) error {
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error
	if err == nil {
		cache.InvalidateUnreadCount(ctx, recipientID)
	}
	return err
}

func (r *notificationRepository) Delete(ctx context.Context, id uint) error {
	var notification models.Notification
	if err := r.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Delete(&models.Notification{}, id).Error
	if err == nil {
		cache.InvalidateUnreadCount(ctx, notification.RecipientID)
	}
	return err
}
