package repository

import (
	"context"
	"time"

	"github.com/parth10-05/verita/internal/models"

	"gorm.io/gorm"
)

// DashboardStats holds the totals shown on the admin dashboard.
type DashboardStats struct {
	TotalUsers         int64 `json:"totalUsers"`
	TotalQuestions     int64 `json:"totalQuestions"`
	TotalAnswers       int64 `json:"totalAnswers"`
	BannedUsers        int64 `json:"bannedUsers"`
	UsersLast7Days     int64 `json:"usersLast7Days"`
	QuestionsLast7Days int64 `json:"questionsLast7Days"`
	AnswersLast7Days   int64 `json:"answersLast7Days"`
}

// StatsRepository aggregates counts across entities for the admin dashboard.
type StatsRepository interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	cutoff := time.Now().AddDate(0, 0, -7)

	counts := []struct {
		model interface{}
		query func(*gorm.DB) *gorm.DB
		dest  *int64
	}{
		{&models.User{}, nil, &stats.TotalUsers},
		{&models.Question{}, nil, &stats.TotalQuestions},
		{&models.Answer{}, nil, &stats.TotalAnswers},
		{&models.User{}, func(db *gorm.DB) *gorm.DB { return db.Where("is_banned = ?", true) }, &stats.BannedUsers},
		{&models.User{}, func(db *gorm.DB) *gorm.DB { return db.Where("created_at > ?", cutoff) }, &stats.UsersLast7Days},
		{&models.Question{}, func(db *gorm.DB) *gorm.DB { return db.Where("created_at > ?", cutoff) }, &stats.QuestionsLast7Days},
		{&models.Answer{}, func(db *gorm.DB) *gorm.DB { return db.Where("created_at > ?", cutoff) }, &stats.AnswersLast7Days},
	}

	for _, c := range counts {
		q := r.db.WithContext(ctx).Model(c.model)
		if c.query != nil {
			q = c.query(q)
		}
		if err := q.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return &stats, nil
}
