package model

import "time"

// ComplaintFilter narrows administrative listings. Zero values match everything.
type ComplaintFilter struct {
	Statuses  []ComplaintStatus
	Types     []ComplaintType
	Urgencies []UrgencyLevel
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int
	Offset    int
}

func (f ComplaintFilter) Matches(c *Complaint) bool {
	if len(f.Statuses) > 0 && !contains(f.Statuses, c.Status) {
		return false
	}
	if len(f.Types) > 0 && !contains(f.Types, c.Type) {
		return false
	}
	if len(f.Urgencies) > 0 && !contains(f.Urgencies, c.Urgency) {
		return false
	}
	if f.DateFrom != nil && c.CreatedAt.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && c.CreatedAt.After(*f.DateTo) {
		return false
	}
	return true
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
