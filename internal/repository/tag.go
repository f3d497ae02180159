package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/parth10-05/verita/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Tag, error)
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tag, error)
	List(ctx context.Context, limit, offset int) ([]*models.Tag, int64, error)
	ListPopular(ctx context.Context, limit int) ([]*models.TagWithCount, error)
	FindOrCreate(ctx context.Context, name string) (*models.Tag, error)
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id uint) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// Slugify converts a tag name to its URL slug: lowercase, whitespace runs
// become single hyphens, anything outside [a-z0-9-] is dropped.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Join(strings.Fields(s), "-")
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (r *tagRepository) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	normalized := strings.ToLower(strings.TrimSpace(name))
	if err := r.db.WithContext(ctx).Where("name = ?", normalized).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) List(ctx context.Context, limit, offset int) ([]*models.Tag, int64, error) {
	var tags []*models.Tag
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Tag{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&tags).Error
	if err != nil {
		return nil, 0, err
	}
	return tags, total, nil
}

// ListPopular returns tags ordered by how many questions carry them.
func (r *tagRepository) ListPopular(ctx context.Context, limit int) ([]*models.TagWithCount, error) {
	var tags []*models.TagWithCount
	err := r.db.WithContext(ctx).
		Model(&models.Tag{}).
		Select("tags.*, COUNT(question_tags.question_id) AS question_count").
		Joins("LEFT JOIN question_tags ON question_tags.tag_id = tags.id").
		Group("tags.id").
		Order("question_count DESC").
		Limit(limit).
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// FindOrCreate resolves a tag by normalized name, creating it when missing.
// A concurrent creator can win the race on the unique name index. The
// ON CONFLICT DO NOTHING insert followed by a re-read makes both callers
// land on the same row.
func (r *tagRepository) FindOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return nil, errors.New("tag name cannot be empty")
	}

	tag, err := r.GetByName(ctx, normalized)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	newTag := models.Tag{Name: normalized, Slug: Slugify(normalized)}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&newTag).Error; err != nil {
		return nil, err
	}
	if newTag.ID != 0 {
		return &newTag, nil
	}

	// Insert was skipped, another writer just created it
	return r.GetByName(ctx, normalized)
}

func (r *tagRepository) Update(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

func (r *tagRepository) Delete(ctx context.Context, id uint) error {
	// Drop join rows first so no question references a missing tag
	if err := r.db.WithContext(ctx).Exec("DELETE FROM question_tags WHERE tag_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&models.Tag{}, id).Error
}
