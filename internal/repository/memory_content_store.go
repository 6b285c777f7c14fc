package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"complaint-service/internal/model"
)

// Seed identifiers are fixed so the postgres migration and the memory store agree.
var (
	seedAnnouncementPowerOutage = uuid.MustParse("6f1d7a0e-3c1b-4f57-9a1e-2b0f6c1d9a01")
	seedAnnouncementWaterPipe   = uuid.MustParse("6f1d7a0e-3c1b-4f57-9a1e-2b0f6c1d9a02")
	seedAchievementParkBenches  = uuid.MustParse("9c2e4b1f-7d3a-4e68-8b2f-3c1a7d2e8b01")
	seedAchievementStreetlights = uuid.MustParse("9c2e4b1f-7d3a-4e68-8b2f-3c1a7d2e8b02")
)

// SeedAnnouncements returns the announcements a fresh deployment starts with.
func SeedAnnouncements(now time.Time) []model.Announcement {
	return []model.Announcement{
		{
			ID:        seedAnnouncementPowerOutage,
			Title:     "Power Outage Notification",
			Body:      "There will be a planned power outage tomorrow from 9 AM to 2 PM for maintenance work.",
			CreatedAt: now,
		},
		{
			ID:        seedAnnouncementWaterPipe,
			Title:     "Water Pipe Repair",
			Body:      "Water supply might be limited in the northern area of Block 5 on Wednesday due to pipe repairs.",
			CreatedAt: now.AddDate(0, 0, -3),
		},
	}
}

func SeedAchievements(now time.Time) []model.Achievement {
	parkImage := "https://picsum.photos/seed/parkbench/400/300"
	lightImage := "https://picsum.photos/seed/streetlight/400/300"
	return []model.Achievement{
		{
			ID:          seedAchievementParkBenches,
			Title:       "New Park Benches Installed",
			Description: "We have installed 10 new benches in the community park for everyone to enjoy.",
			ImageURL:    &parkImage,
			CreatedAt:   now,
		},
		{
			ID:          seedAchievementStreetlights,
			Title:       "Streetlight Upgrade Project Completed",
			Description: "All streetlights in Block 5 have been upgraded to energy-efficient LEDs, improving safety and visibility.",
			ImageURL:    &lightImage,
			CreatedAt:   now.AddDate(0, 0, -7),
		},
	}
}

// MemoryContentStore serves a fixed set of announcements and achievements.
type MemoryContentStore struct {
	mu            sync.RWMutex
	announcements []model.Announcement
	achievements  []model.Achievement
}

func NewMemoryContentStore(announcements []model.Announcement, achievements []model.Achievement) *MemoryContentStore {
	s := &MemoryContentStore{
		announcements: append([]model.Announcement(nil), announcements...),
		achievements:  append([]model.Achievement(nil), achievements...),
	}
	sort.SliceStable(s.announcements, func(i, j int) bool {
		return s.announcements[i].CreatedAt.After(s.announcements[j].CreatedAt)
	})
	sort.SliceStable(s.achievements, func(i, j int) bool {
		return s.achievements[i].CreatedAt.After(s.achievements[j].CreatedAt)
	})
	return s
}

// NewSeededContentStore returns a store holding the default seed content.
func NewSeededContentStore(now time.Time) *MemoryContentStore {
	return NewMemoryContentStore(SeedAnnouncements(now), SeedAchievements(now))
}

func (s *MemoryContentStore) ListAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Announcement{}, s.announcements...), nil
}

func (s *MemoryContentStore) ListAchievements(ctx context.Context) ([]model.Achievement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Achievement, len(s.achievements))
	for i, a := range s.achievements {
		out[i] = a
		if a.ImageURL != nil {
			v := *a.ImageURL
			out[i].ImageURL = &v
		}
	}
	return out, nil
}
