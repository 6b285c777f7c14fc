package repository

import (
	"context"

	"gorm.io/gorm"

	"complaint-service/internal/model"
)

// ContentRepository reads announcements and achievements from postgres.
type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) ListAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	var announcements []model.Announcement
	if err := r.db.WithContext(ctx).
		Model(&model.Announcement{}).
		Order("created_at DESC").
		Limit(defaultListLimit).
		Find(&announcements).Error; err != nil {
		return nil, err
	}
	return announcements, nil
}

func (r *ContentRepository) ListAchievements(ctx context.Context) ([]model.Achievement, error) {
	var achievements []model.Achievement
	if err := r.db.WithContext(ctx).
		Model(&model.Achievement{}).
		Order("created_at DESC").
		Limit(defaultListLimit).
		Find(&achievements).Error; err != nil {
		return nil, err
	}
	return achievements, nil
}
