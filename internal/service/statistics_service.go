package service

import (
	"context"
	"time"

	"complaint-service/internal/model"
	"complaint-service/internal/repository"
)

const defaultTrendMonths = 6

type StatisticsService struct {
	store       repository.ComplaintStore
	now         func() time.Time
	trendMonths int
}

func NewStatisticsService(store repository.ComplaintStore, now func() time.Time, trendMonths int) *StatisticsService {
	if now == nil {
		now = time.Now
	}
	if trendMonths <= 0 {
		trendMonths = defaultTrendMonths
	}
	return &StatisticsService{store: store, now: now, trendMonths: trendMonths}
}

// Compute summarises every stored complaint. Nothing is cached.
func (s *StatisticsService) Compute(ctx context.Context) (model.Statistics, error) {
	complaints, err := s.store.All(ctx)
	if err != nil {
		return model.Statistics{}, err
	}
	return ComputeStatistics(complaints, s.now(), s.trendMonths), nil
}

// ComputeStatistics counts complaints by status and category, and buckets them by
// UTC calendar month over the trailing months ending with the month of now.
func ComputeStatistics(complaints []model.Complaint, now time.Time, trendMonths int) model.Statistics {
	if trendMonths <= 0 {
		trendMonths = defaultTrendMonths
	}

	byType := make(map[model.ComplaintType]int, len(model.ComplaintTypes))
	stats := model.Statistics{TotalComplaints: len(complaints)}
	for _, c := range complaints {
		if c.Status == model.ComplaintStatusCompleted {
			stats.Completed++
		}
		byType[c.Type]++
	}
	stats.Pending = stats.TotalComplaints - stats.Completed

	stats.ByCategory = make([]model.CategoryCount, 0, len(model.ComplaintTypes))
	for _, t := range model.ComplaintTypes {
		stats.ByCategory = append(stats.ByCategory, model.CategoryCount{Name: t, Value: byType[t]})
	}

	stats.MonthlyTrend = monthlyTrend(complaints, now, trendMonths)
	return stats
}

func monthlyTrend(complaints []model.Complaint, now time.Time, months int) []model.MonthlyCount {
	now = now.UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	trend := make([]model.MonthlyCount, months)
	index := make(map[string]int, months)
	for i := 0; i < months; i++ {
		start := current.AddDate(0, i-months+1, 0)
		key := start.Format("2006-01")
		trend[i] = model.MonthlyCount{Month: key, Name: start.Format("Jan")}
		index[key] = i
	}

	for _, c := range complaints {
		if i, ok := index[c.CreatedAt.UTC().Format("2006-01")]; ok {
			trend[i].Complaints++
		}
	}
	return trend
}
