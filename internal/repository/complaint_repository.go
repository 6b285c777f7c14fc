package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"complaint-service/internal/model"
	"complaint-service/internal/tracking"
)

// ComplaintRepository is the postgres-backed ComplaintStore. Status changes lock
// the complaint row for the length of the transaction.
type ComplaintRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewComplaintRepository(db *gorm.DB, now func() time.Time) *ComplaintRepository {
	if now == nil {
		now = time.Now
	}
	// postgres keeps microseconds
	return &ComplaintRepository{db: db, now: func() time.Time {
		return now().UTC().Truncate(time.Microsecond)
	}}
}

func (r *ComplaintRepository) Insert(ctx context.Context, complaint *model.Complaint) error {
	if err := checkNewComplaint(complaint); err != nil {
		return err
	}
	complaint.TrackingID = tracking.Normalize(complaint.TrackingID)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(complaint).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", ErrDuplicateTrackingID, complaint.TrackingID)
	}
	return err
}

func (r *ComplaintRepository) FindByTrackingID(ctx context.Context, trackingID string) (*model.Complaint, bool, error) {
	var complaint model.Complaint
	err := byTrackingID(r.db.WithContext(ctx), trackingID).
		Preload("StatusHistory", orderHistory).
		First(&complaint).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &complaint, true, nil
}

func (r *ComplaintRepository) AppendStatusUpdate(ctx context.Context, trackingID string, status model.ComplaintStatus, notes *string) (*model.Complaint, error) {
	var updated model.Complaint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		complaint, err := lockComplaint(tx, trackingID)
		if err != nil {
			return err
		}

		entry, err := complaint.ApplyStatus(status, notes, r.now())
		if err != nil {
			return err
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Complaint{}).
			Where("id = ?", complaint.ID).
			Updates(map[string]interface{}{
				"status":     complaint.Status,
				"updated_at": complaint.UpdatedAt,
			}).Error; err != nil {
			return err
		}
		updated = *complaint
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetAdminNotes leaves updated_at alone: it tracks the status history only.
func (r *ComplaintRepository) SetAdminNotes(ctx context.Context, trackingID string, notes *string) (*model.Complaint, error) {
	var updated model.Complaint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		complaint, err := lockComplaint(tx, trackingID)
		if err != nil {
			return err
		}
		if err := tx.Model(&model.Complaint{}).
			Where("id = ?", complaint.ID).
			UpdateColumn("admin_notes", notes).Error; err != nil {
			return err
		}
		complaint.AdminNotes = notes
		updated = *complaint
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *ComplaintRepository) All(ctx context.Context) ([]model.Complaint, error) {
	var complaints []model.Complaint
	if err := newestFirst(r.db.WithContext(ctx).Model(&model.Complaint{})).
		Preload("StatusHistory", orderHistory).
		Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *ComplaintRepository) List(ctx context.Context, filter model.ComplaintFilter) ([]model.Complaint, error) {
	var complaints []model.Complaint
	if err := filteredComplaints(r.db.WithContext(ctx), filter).
		Preload("StatusHistory", orderHistory).
		Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *ComplaintRepository) Exists(ctx context.Context, trackingID string) (bool, error) {
	var count int64
	if err := byTrackingID(r.db.WithContext(ctx), trackingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func lockComplaint(tx *gorm.DB, trackingID string) (*model.Complaint, error) {
	var complaint model.Complaint
	err := lockedByTrackingID(tx, trackingID).First(&complaint).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := tx.Where("complaint_id = ?", complaint.ID).
		Order("seq ASC").
		Find(&complaint.StatusHistory).Error; err != nil {
		return nil, err
	}
	return &complaint, nil
}

func byTrackingID(db *gorm.DB, trackingID string) *gorm.DB {
	return db.Model(&model.Complaint{}).
		Where("upper(tracking_id) = ?", tracking.Normalize(trackingID))
}

func lockedByTrackingID(tx *gorm.DB, trackingID string) *gorm.DB {
	return byTrackingID(tx, trackingID).Clauses(clause.Locking{Strength: "UPDATE"})
}

func filteredComplaints(db *gorm.DB, filter model.ComplaintFilter) *gorm.DB {
	query := db.Model(&model.Complaint{})

	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if len(filter.Types) > 0 {
		query = query.Where("type IN ?", filter.Types)
	}
	if len(filter.Urgencies) > 0 {
		query = query.Where("urgency IN ?", filter.Urgencies)
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", *filter.DateTo)
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	} else {
		query = query.Limit(defaultListLimit)
	}
	return newestFirst(query)
}

// newestFirst breaks created_at ties by urgency, most severe first.
func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order(urgencyOrder).Order("tracking_id ASC")
}

var urgencyOrder = func() string {
	var b strings.Builder
	b.WriteString("CASE urgency")
	for _, u := range model.UrgencyLevels {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", u, u.Severity())
	}
	b.WriteString(" ELSE 0 END DESC")
	return b.String()
}()

func orderHistory(db *gorm.DB) *gorm.DB {
	return db.Order("seq ASC")
}
