package repository

import (
	"context"

	"github.com/parth10-05/verita/internal/models"

	"gorm.io/gorm"
)

// AdminLogRepository records and queries moderation actions.
type AdminLogRepository interface {
	Create(ctx context.Context, entry *models.AdminLog) error
	List(ctx context.Context, limit, offset int) ([]*models.AdminLog, int64, error)
	ListByAdmin(ctx context.Context, adminID uint, limit, offset int) ([]*models.AdminLog, int64, error)
}

type adminLogRepository struct {
	db *gorm.DB
}

// NewAdminLogRepository creates a new admin log repository
func NewAdminLogRepository(db *gorm.DB) AdminLogRepository {
	return &adminLogRepository{db: db}
}

func (r *adminLogRepository) Create(ctx context.Context, entry *models.AdminLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *adminLogRepository) List(ctx context.Context, limit, offset int) ([]*models.AdminLog, int64, error) {
	var entries []*models.AdminLog
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.AdminLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Admin").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *adminLogRepository) ListByAdmin(ctx context.Context, adminID uint, limit, offset int) ([]*models.AdminLog, int64, error) {
	var entries []*models.AdminLog
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.AdminLog{}).
		Where("admin_id = ?", adminID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Admin").
		Where("admin_id = ?", adminID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
