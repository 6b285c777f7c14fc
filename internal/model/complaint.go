package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComplaintType string

const (
	ComplaintTypeService     ComplaintType = "Service"
	ComplaintTypeElectricity ComplaintType = "Electricity"
	ComplaintTypeWater       ComplaintType = "Water"
	ComplaintTypeCleanliness ComplaintType = "Cleanliness"
	ComplaintTypeSecurity    ComplaintType = "Security"
	ComplaintTypeOther       ComplaintType = "Other"
)

// ComplaintTypes lists every complaint type in declared order.
var ComplaintTypes = []ComplaintType{
	ComplaintTypeService,
	ComplaintTypeElectricity,
	ComplaintTypeWater,
	ComplaintTypeCleanliness,
	ComplaintTypeSecurity,
	ComplaintTypeOther,
}

func ParseComplaintType(raw string) (ComplaintType, bool) {
	raw = strings.TrimSpace(raw)
	for _, t := range ComplaintTypes {
		if strings.EqualFold(string(t), raw) {
			return t, true
		}
	}
	return "", false
}

type UrgencyLevel string

const (
	UrgencyEmergency UrgencyLevel = "Emergency"
	UrgencyUrgent    UrgencyLevel = "Urgent"
	UrgencyNormal    UrgencyLevel = "Normal"
)

// UrgencyLevels is ordered from most to least severe.
var UrgencyLevels = []UrgencyLevel{
	UrgencyEmergency,
	UrgencyUrgent,
	UrgencyNormal,
}

func ParseUrgencyLevel(raw string) (UrgencyLevel, bool) {
	raw = strings.TrimSpace(raw)
	for _, u := range UrgencyLevels {
		if strings.EqualFold(string(u), raw) {
			return u, true
		}
	}
	return "", false
}

// Severity is higher for more pressing urgency levels; unknown values are 0.
func (u UrgencyLevel) Severity() int {
	switch u {
	case UrgencyEmergency:
		return 3
	case UrgencyUrgent:
		return 2
	case UrgencyNormal:
		return 1
	default:
		return 0
	}
}

type Complaint struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TrackingID    string          `gorm:"type:varchar(32);not null" json:"tracking_id"`
	Type          ComplaintType   `gorm:"type:complaint_type;not null" json:"type"`
	Urgency       UrgencyLevel    `gorm:"type:urgency_level;not null" json:"urgency"`
	Location      string          `gorm:"type:varchar(100);not null" json:"location"`
	Description   string          `gorm:"type:text;not null" json:"description"`
	Notes         *string         `gorm:"type:text" json:"notes,omitempty"`
	AttachmentRef *string         `gorm:"type:text" json:"attachment_ref,omitempty"`
	ContactNumber string          `gorm:"type:varchar(32);not null" json:"-"`
	Status        ComplaintStatus `gorm:"type:complaint_status;not null;default:'New'" json:"status"`
	AdminNotes    *string         `gorm:"type:text" json:"admin_notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	StatusHistory []StatusUpdate `gorm:"foreignKey:ComplaintID" json:"status_history"`
}

func (Complaint) TableName() string {
	return "complaints"
}

func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Clone returns a deep copy; the history slice and optional strings are not shared.
func (c *Complaint) Clone() *Complaint {
	if c == nil {
		return nil
	}
	out := *c
	out.Notes = cloneString(c.Notes)
	out.AttachmentRef = cloneString(c.AttachmentRef)
	out.AdminNotes = cloneString(c.AdminNotes)
	out.StatusHistory = make([]StatusUpdate, len(c.StatusHistory))
	for i, entry := range c.StatusHistory {
		out.StatusHistory[i] = entry
		out.StatusHistory[i].Notes = cloneString(entry.Notes)
	}
	return &out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
