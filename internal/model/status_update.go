package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComplaintStatus string

const (
	ComplaintStatusNew        ComplaintStatus = "New"
	ComplaintStatusInProgress ComplaintStatus = "In Progress"
	ComplaintStatusCompleted  ComplaintStatus = "Completed"
)

// ComplaintStatuses is the lifecycle in order.
var ComplaintStatuses = []ComplaintStatus{
	ComplaintStatusNew,
	ComplaintStatusInProgress,
	ComplaintStatusCompleted,
}

// StatusUpdate is one entry of a complaint's append-only status history.
type StatusUpdate struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"-"`
	ComplaintID uuid.UUID       `gorm:"type:uuid;not null" json:"-"`
	Seq         int             `gorm:"not null" json:"-"`
	Status      ComplaintStatus `gorm:"type:complaint_status;not null" json:"status"`
	Timestamp   time.Time       `gorm:"column:changed_at;not null" json:"timestamp"`
	Notes       *string         `gorm:"type:text" json:"notes,omitempty"`
}

func (StatusUpdate) TableName() string {
	return "complaint_status_history"
}

func (u *StatusUpdate) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
