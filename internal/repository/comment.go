package repository

import (
	"context"

	"github.com/parth10-05/verita/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByQuestion(ctx context.Context, questionID uint, limit, offset int) ([]*models.Comment, int64, error)
	ListByAnswer(ctx context.Context, answerID uint, limit, offset int) ([]*models.Comment, int64, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
	DeleteByQuestion(ctx context.Context, tx *gorm.DB, questionID uint) error
	DeleteByAnswer(ctx context.Context, tx *gorm.DB, answerID uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByQuestion(ctx context.Context, questionID uint, limit, offset int) ([]*models.Comment, int64, error) {
	return r.listByParent(ctx, "question_id = ?", questionID, limit, offset)
}

func (r *commentRepository) ListByAnswer(ctx context.Context, answerID uint, limit, offset int) ([]*models.Comment, int64, error) {
	return r.listByParent(ctx, "answer_id = ?", answerID, limit, offset)
}

func (r *commentRepository) listByParent(ctx context.Context, cond string, parentID uint, limit, offset int) ([]*models.Comment, int64, error) {
	var comments []*models.Comment
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where(cond, parentID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Author").
		Where(cond, parentID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error
}

func (r *commentRepository) DeleteByQuestion(ctx context.Context, tx *gorm.DB, questionID uint) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Where("question_id = ?", questionID).Delete(&models.Comment{}).Error
}

func (r *commentRepository) DeleteByAnswer(ctx context.Context, tx *gorm.DB, answerID uint) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Where("answer_id = ?", answerID).Delete(&models.Comment{}).Error
}
