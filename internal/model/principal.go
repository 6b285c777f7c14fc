package model

import "github.com/google/uuid"

type UserRole string

const (
	UserRoleComplaintAdmin UserRole = "COMPLAINT_ADMIN"
	UserRoleViewer         UserRole = "COMPLAINT_VIEWER"
)

type Principal struct {
	UserID uuid.UUID
	Role   UserRole
}

// IsAdmin may change complaint status and notes.
func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleComplaintAdmin
}

// CanRead may see full complaint records, contact number included.
func (p Principal) CanRead() bool {
	return p.IsAdmin() || p.Role == UserRoleViewer
}
