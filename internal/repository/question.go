package repository

import (
	"context"

	"github.com/parth10-05/verita/internal/cache"
	"github.com/parth10-05/verita/internal/models"

	"gorm.io/gorm"
)

// QuestionRepository defines the interface for question data operations
type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	List(ctx context.Context, limit, offset int, sort string) ([]*models.Question, int64, error)
	ListByTag(ctx context.Context, tagSlug string, limit, offset int) ([]*models.Question, int64, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Question, int64, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Question, int64, error)
	Update(ctx context.Context, question *models.Question) error
	ReplaceTags(ctx context.Context, question *models.Question, tags []models.Tag) error
	AdjustVoteCounters(ctx context.Context, tx *gorm.DB, id uint, upDelta, downDelta int) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *questionRepository) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	if question, ok := cache.GetQuestion(ctx, id); ok {
		return question, nil
	}
	var question models.Question
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		First(&question, id).Error
	if err != nil {
		return nil, err
	}
	cache.SetQuestion(ctx, &question)
	return &question, nil
}

func (r *questionRepository) List(ctx context.Context, limit, offset int, sort string) ([]*models.Question, int64, error) {
	var questions []*models.Question
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Question{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	base := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags")
	err := r.applySort(base, sort).
		Limit(limit).
		Offset(offset).
		Find(&questions).Error
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

// applySort appends the ORDER BY clause for the requested sort type.
func (r *questionRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case "top":
		return db.Order("upvotes - downvotes DESC, created_at DESC")
	case "oldest":
		return db.Order("created_at ASC")
	default: // "newest" and anything unrecognized
		return db.Order("created_at DESC")
	}
}

func (r *questionRepository) ListByTag(ctx context.Context, tagSlug string, limit, offset int) ([]*models.Question, int64, error) {
	var questions []*models.Question
	var total int64

	joined := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&models.Question{}).
			Joins("JOIN question_tags ON question_tags.question_id = questions.id").
			Joins("JOIN tags ON tags.id = question_tags.tag_id").
			Where("tags.slug = ?", tagSlug)
	}

	if err := joined().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := joined().
		Preload("Author").
		Preload("Tags").
		Order("questions.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&questions).Error
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

func (r *questionRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Question, int64, error) {
	var questions []*models.Question
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Question{}).
		Where("author_id = ?", authorID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&questions).Error
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

func (r *questionRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Question, int64, error) {
	var questions []*models.Question
	var total int64
	like := "%" + query + "%"

	// LOWER + LIKE for case-insensitive match on both postgres and sqlite
	match := r.db.WithContext(ctx).Model(&models.Question{}).
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(body) LIKE LOWER(?)", like, like)
	if err := match.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(body) LIKE LOWER(?)", like, like).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&questions).Error
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

func (r *questionRepository) Update(ctx context.Context, question *models.Question) error {
	err := r.db.WithContext(ctx).Omit("Tags").Save(question).Error
	if err == nil {
		cache.InvalidateQuestion(ctx, question.ID)
	}
	return err
}

func (r *questionRepository) ReplaceTags(ctx context.Context, question *models.Question, tags []models.Tag) error {
	err := r.db.WithContext(ctx).Model(question).Association("Tags").Replace(tags)
	if err == nil {
		cache.InvalidateQuestion(ctx, question.ID)
	}
	return err
}

// AdjustVoteCounters applies relative deltas to the denormalized vote counts.
// Runs inside the caller's transaction when tx is non-nil so the counter
// update commits atomically with the vote row change.
func (r *questionRepository) AdjustVoteCounters(ctx context.Context, tx *gorm.DB, id uint, upDelta, downDelta int) error {
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
	err := db.WithContext(ctx).Model(&models.Question{}).Where("id = ?", id).Updates(updates).Error
	if err == nil {
		cache.InvalidateQuestion(ctx, id)
	}
	return err
}

func (r *questionRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := tx
	if db == nil {
		db = r.db
	}
	err := db.WithContext(ctx).Delete(&models.Question{}, id).Error
	if err == nil {
		cache.InvalidateQuestion(ctx, id)
	}
	return err
}
