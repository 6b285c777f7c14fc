package repository

import (
	"context"
	"fmt"

	"complaint-service/internal/model"
)

// ComplaintStore owns the complaint collection. Implementations serialise
// mutations of a single complaint and never expose partially applied updates.
type ComplaintStore interface {
	Insert(ctx context.Context, complaint *model.Complaint) error
	// FindByTrackingID matches case-insensitively; a missing id is (nil, false, nil).
	FindByTrackingID(ctx context.Context, trackingID string) (*model.Complaint, bool, error)
	AppendStatusUpdate(ctx context.Context, trackingID string, status model.ComplaintStatus, notes *string) (*model.Complaint, error)
	SetAdminNotes(ctx context.Context, trackingID string, notes *string) (*model.Complaint, error)
	All(ctx context.Context) ([]model.Complaint, error)
	List(ctx context.Context, filter model.ComplaintFilter) ([]model.Complaint, error)
	Exists(ctx context.Context, trackingID string) (bool, error)
}

type ContentStore interface {
	ListAnnouncements(ctx context.Context) ([]model.Announcement, error)
	ListAchievements(ctx context.Context) ([]model.Achievement, error)
}

const defaultListLimit = 200

// checkNewComplaint enforces the shape every inserted complaint must have.
func checkNewComplaint(c *model.Complaint) error {
	if c.TrackingID == "" {
		return fmt.Errorf("%w: tracking id is empty", ErrInvalidRecord)
	}
	if c.Status != model.ComplaintStatusNew || len(c.StatusHistory) != 1 {
		return fmt.Errorf("%w: new complaints start in %q with one history entry", ErrInvalidRecord, model.ComplaintStatusNew)
	}
	if err := c.CheckInvariants(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return nil
}
