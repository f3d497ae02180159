package repository

import (
	"context"

	"github.com/parth10-05/verita/internal/models"

	"gorm.io/gorm"
)

// AnswerRepository defines the interface for answer data operations
type AnswerRepository interface {
	Create(ctx context.Context, answer *models.Answer) error
	GetByID(ctx context.Context, id uint) (*models.Answer, error)
	ListByQuestion(ctx context.Context, questionID uint, limit, offset int) ([]*models.Answer, int64, error)
	IDsByQuestion(ctx context.Context, questionID uint) ([]uint, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Answer, int64, error)
	CountByUser(ctx context.Context, userID uint) (total int64, accepted int64, err error)
	Update(ctx context.Context, answer *models.Answer) error
	AdjustVoteCounters(ctx context.Context, tx *gorm.DB, id uint, upDelta, downDelta int) error
	ClearAccepted(ctx context.Context, tx *gorm.DB, questionID uint) error
	SetAccepted(ctx context.Context, tx *gorm.DB, id uint, accepted bool) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	DeleteByQuestion(ctx context.Context, tx *gorm.DB, questionID uint) error
}

type answerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository creates a new answer repository
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Create(ctx context.Context, answer *models.Answer) error {
	return r.db.WithContext(ctx).Create(answer).Error
}

func (r *answerRepository) GetByID(ctx context.Context, id uint) (*models.Answer, error) {
	var answer models.Answer
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&answer, id).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) ListByQuestion(ctx context.Context, questionID uint, limit, offset int) ([]*models.Answer, int64, error) {
	var answers []*models.Answer
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Answer{}).
		Where("question_id = ?", questionID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Accepted answer pinned first, then by score
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("question_id = ?", questionID).
		Order("is_accepted DESC, upvotes - downvotes DESC, created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&answers).Error
	if err != nil {
		return nil, 0, err
	}
	return answers, total, nil
}

// IDsByQuestion returns the ids of every answer on a question. Used when
// cascading a question deletion.
func (r *answerRepository) IDsByQuestion(ctx context.Context, questionID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Answer{}).
		Where("question_id = ?", questionID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *answerRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Answer, int64, error) {
	var answers []*models.Answer
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Answer{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Question").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&answers).Error
	if err != nil {
		return nil, 0, err
	}
	return answers, total, nil
}

// CountByUser returns how many answers the user has written and how many of
// them are accepted.
func (r *answerRepository) CountByUser(ctx context.Context, userID uint) (int64, int64, error) {
	var total, accepted int64
	if err := r.db.WithContext(ctx).Model(&models.Answer{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Answer{}).
		Where("user_id = ? AND is_accepted = ?", userID, true).
		Count(&accepted).Error; err != nil {
		return 0, 0, err
	}
	return total, accepted, nil
}

func (r *answerRepository) Update(ctx context.Context, answer *models.Answer) error {
	return r.db.WithContext(ctx).Save(answer).Error
}

// AdjustVoteCounters applies relative deltas to the denormalized vote counts,
// inside the caller's transaction when tx is non-nil.
func (r *answerRepository) AdjustVoteCounters(ctx context.Context, tx *gorm.DB, id uint, upDelta, downDelta int) error {
	db := tx
	if db == nil {
		db = r.db
	}
	updates := map[string]interface{}{}
	if upDelta != 0 {
		updates["upvotes"] = gorm.Expr("upvotes + ?", upDelta)
	}
	if downDelta != 0 {
		updates["downvotes"] = gorm.Expr("downvotes + ?", downDelta)
	}
	if len(updates) == 0 {
		return nil
	}
	return db.WithContext(ctx).Model(&models.Answer{}).Where("id = ?", id).Updates(updates).Error
}

// ClearAccepted unmarks every accepted answer on the question so at most one
// answer carries the flag afterwards.
func (r *answerRepository) ClearAccepted(ctx context.Context, tx *gorm.DB, questionID uint) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Model(&models.Answer{}).
		Where("question_id = ? AND is_accepted = ?", questionID, true).
		Update("is_accepted", false).Error
}

func (r *answerRepository) SetAccepted(ctx context.Context, tx *gorm.DB, id uint, accepted bool) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Model(&models.Answer{}).
		Where("id = ?", id).
		Update("is_accepted", accepted).Error
}

func (r *answerRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Delete(&models.Answer{}, id).Error
}

func (r *answerRepository) DeleteByQuestion(ctx context.Context, tx *gorm.DB, questionID uint) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Where("question_id = ?", questionID).Delete(&models.Answer{}).Error
}
