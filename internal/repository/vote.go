package repository

import (
	"context"

	"github.com/parth10-05/verita/internal/models"

	"gorm.io/gorm"
)

// VoteRepository defines the interface for vote data operations
type VoteRepository interface {
	Get(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) (*models.Vote, error)
	Create(ctx context.Context, tx *gorm.DB, vote *models.Vote) error
	UpdateValue(ctx context.Context, tx *gorm.DB, id uint, oldValue, newValue int) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error)
	DeleteByTarget(ctx context.Context, tx *gorm.DB, kind models.TargetKind, targetID uint) error
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Get(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, kind, targetID).
		First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *voteRepository) Create(ctx context.Context, tx *gorm.DB, vote *models.Vote) error {
	return r.use(tx).WithContext(ctx).Create(vote).Error
}

// UpdateValue flips a vote, guarded on the value it is flipping from. A zero
// row count means a concurrent request already changed the vote; callers must
// skip their counter adjustment in that case.
func (r *voteRepository) UpdateValue(ctx context.Context, tx *gorm.DB, id uint, oldValue, newValue int) (int64, error) {
	res := r.use(tx).WithContext(ctx).Model(&models.Vote{}).
		Where("id = ? AND value = ?", id, oldValue).
		Update("value", newValue)
	return res.RowsAffected, res.Error
}

// Delete reports how many rows it removed so callers can detect a concurrent
// removal of the same vote.
func (r *voteRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error) {
	res := r.use(tx).WithContext(ctx).Delete(&models.Vote{}, id)
	return res.RowsAffected, res.Error
}

// DeleteByTarget removes every vote on a target. Used when the target itself
// is deleted.
func (r *voteRepository) DeleteByTarget(ctx context.Context, tx *gorm.DB, kind models.TargetKind, targetID uint) error {
	return r.use(tx).WithContext(ctx).
		Where("target_kind = ? AND target_id = ?", kind, targetID).
		Delete(&models.Vote{}).Error
}

// Transaction runs fn inside a database transaction so a vote row change and
// its counter adjustments commit or roll back together.
func (r *voteRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *voteRepository) use(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
