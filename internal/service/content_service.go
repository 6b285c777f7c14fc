package service

import (
	"context"

	"complaint-service/internal/model"
	"complaint-service/internal/repository"
)

// ContentService serves the community announcements and achievements, newest first.
type ContentService struct {
	store repository.ContentStore
}

func NewContentService(store repository.ContentStore) *ContentService {
	return &ContentService{store: store}
}

func (s *ContentService) Announcements(ctx context.Context) ([]model.Announcement, error) {
	return s.store.ListAnnouncements(ctx)
}

func (s *ContentService) Achievements(ctx context.Context) ([]model.Achievement, error) {
	return s.store.ListAchievements(ctx)
}
