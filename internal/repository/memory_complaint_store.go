package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"complaint-service/internal/model"
	"complaint-service/internal/tracking"
)

// MemoryComplaintStore keeps complaints in process memory. One RWMutex owns the
// collection: writers are serialised, readers get deep copies.
type MemoryComplaintStore struct {
	mu         sync.RWMutex
	complaints map[string]*model.Complaint
	now        func() time.Time
}

func NewMemoryComplaintStore(now func() time.Time) *MemoryComplaintStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryComplaintStore{
		complaints: make(map[string]*model.Complaint),
		now:        now,
	}
}

func (s *MemoryComplaintStore) Insert(ctx context.Context, complaint *model.Complaint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkNewComplaint(complaint); err != nil {
		return err
	}
	key := tracking.Normalize(complaint.TrackingID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.complaints[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTrackingID, key)
	}
	if complaint.ID == uuid.Nil {
		complaint.ID = uuid.New()
	}
	stored := complaint.Clone()
	stored.TrackingID = key
	for i := range stored.StatusHistory {
		stored.StatusHistory[i].ComplaintID = stored.ID
	}
	s.complaints[key] = stored
	return nil
}

func (s *MemoryComplaintStore) FindByTrackingID(ctx context.Context, trackingID string) (*model.Complaint, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.complaints[tracking.Normalize(trackingID)]
	if !ok {
		return nil, false, nil
	}
	return c.Clone(), true, nil
}

func (s *MemoryComplaintStore) AppendStatusUpdate(ctx context.Context, trackingID string, status model.ComplaintStatus, notes *string) (*model.Complaint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.complaints[tracking.Normalize(trackingID)]
	if !ok {
		return nil, ErrNotFound
	}
	// apply on a copy so a rejected transition leaves the stored record untouched
	next := c.Clone()
	if _, err := next.ApplyStatus(status, notes, s.now()); err != nil {
		return nil, err
	}
	s.complaints[next.TrackingID] = next
	return next.Clone(), nil
}

func (s *MemoryComplaintStore) SetAdminNotes(ctx context.Context, trackingID string, notes *string) (*model.Complaint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.complaints[tracking.Normalize(trackingID)]
	if !ok {
		return nil, ErrNotFound
	}
	next := c.Clone()
	if notes != nil {
		v := *notes
		next.AdminNotes = &v
	} else {
		next.AdminNotes = nil
	}
	s.complaints[next.TrackingID] = next
	return next.Clone(), nil
}

func (s *MemoryComplaintStore) All(ctx context.Context) ([]model.Complaint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Complaint, 0, len(s.complaints))
	for _, c := range s.complaints {
		out = append(out, *c.Clone())
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *MemoryComplaintStore) List(ctx context.Context, filter model.ComplaintFilter) ([]model.Complaint, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.Complaint, 0, len(all))
	for i := range all {
		if filter.Matches(&all[i]) {
			matched = append(matched, all[i])
		}
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []model.Complaint{}, nil
		}
		matched = matched[filter.Offset:]
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *MemoryComplaintStore) Exists(ctx context.Context, trackingID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.complaints[tracking.Normalize(trackingID)]
	return ok, nil
}

func sortNewestFirst(complaints []model.Complaint) {
	sort.SliceStable(complaints, func(i, j int) bool {
		if complaints[i].CreatedAt.Equal(complaints[j].CreatedAt) {
			si, sj := complaints[i].Urgency.Severity(), complaints[j].Urgency.Severity()
			if si != sj {
				return si > sj
			}
			return complaints[i].TrackingID < complaints[j].TrackingID
		}
		return complaints[i].CreatedAt.After(complaints[j].CreatedAt)
	})
}
