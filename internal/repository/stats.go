package repository

import (
	"context"
	"time"

	"socialconnect/internal/cache"
	"socialconnect/internal/models"

	"gorm.io/gorm"
)

// StatsRepository aggregates platform-wide counts for the admin dashboard.
type StatsRepository interface {
	Totals(ctx context.Context) (*models.AdminStats, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository returns a new StatsRepository implementation.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// Totals computes the aggregate snapshot. Post and comment totals count only
// rows that have not been soft-deleted.
func (r *statsRepository) Totals(ctx context.Context) (*models.AdminStats, error) {
	var stats models.AdminStats

	err := cache.Aside(ctx, cache.StatsKey, &stats, cache.StatsTTL, func() error {
		db := r.db.WithContext(ctx)
		if err := db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
			return err
		}
		if err := db.Model(&models.Post{}).Where("is_active = ?", true).Count(&stats.TotalPosts).Error; err != nil {
			return err
		}
		if err := db.Model(&models.Comment{}).Where("is_active = ?", true).Count(&stats.TotalComments).Error; err != nil {
			return err
		}
		if err := db.Model(&models.Like{}).Count(&stats.TotalLikes).Error; err != nil {
			return err
		}
		startOfDay := time.Now().UTC().Truncate(24 * time.Hour)
		return db.Model(&models.User{}).
			Where("last_login_at >= ?", startOfDay).
			Count(&stats.ActiveUsersToday).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &stats, nil
}
