package model

import (
	"time"

	"github.com/google/uuid"
)

// TrackingView is what the public tracking query returns. It has no contact field.
type TrackingView struct {
	TrackingID    string          `json:"tracking_id"`
	Type          ComplaintType   `json:"type"`
	Urgency       UrgencyLevel    `json:"urgency"`
	Location      string          `json:"location"`
	Description   string          `json:"description"`
	Notes         *string         `json:"notes,omitempty"`
	AttachmentRef *string         `json:"attachment_ref,omitempty"`
	Status        ComplaintStatus `json:"status"`
	AdminNotes    *string         `json:"admin_notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	StatusHistory []StatusUpdate  `json:"status_history"`
}

// AdminRecord is the full complaint as seen by an administrator.
type AdminRecord struct {
	ID            uuid.UUID `json:"id"`
	TrackingView
	ContactNumber string `json:"contact_number"`
}

func NewTrackingView(c *Complaint) TrackingView {
	c = c.Clone()
	return TrackingView{
		TrackingID:    c.TrackingID,
		Type:          c.Type,
		Urgency:       c.Urgency,
		Location:      c.Location,
		Description:   c.Description,
		Notes:         c.Notes,
		AttachmentRef: c.AttachmentRef,
		Status:        c.Status,
		AdminNotes:    c.AdminNotes,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		StatusHistory: c.StatusHistory,
	}
}

func NewAdminRecord(c *Complaint) AdminRecord {
	return AdminRecord{
		ID:            c.ID,
		TrackingView:  NewTrackingView(c),
		ContactNumber: c.ContactNumber,
	}
}

type CategoryCount struct {
	Name  ComplaintType `json:"name"`
	Value int           `json:"value"`
}

type MonthlyCount struct {
	Month      string `json:"month"`
	Name       string `json:"name"`
	Complaints int    `json:"complaints"`
}

// Statistics is computed on request and never stored.
type Statistics struct {
	TotalComplaints int             `json:"total_complaints"`
	Completed       int             `json:"completed"`
	Pending         int             `json:"pending"`
	ByCategory      []CategoryCount `json:"by_category"`
	MonthlyTrend    []MonthlyCount  `json:"monthly_trend"`
}
