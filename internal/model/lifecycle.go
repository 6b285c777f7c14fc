package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrUnknownStatus     = errors.New("unknown complaint status")
)

// Rank is the position of a status in the lifecycle, starting at 1. Unknown statuses rank 0.
func (s ComplaintStatus) Rank() int {
	for i, status := range ComplaintStatuses {
		if status == s {
			return i + 1
		}
	}
	return 0
}

func (s ComplaintStatus) Valid() bool {
	return s.Rank() > 0
}

// ParseComplaintStatus accepts the wire value in any case, and the
// IN_PROGRESS / in-progress spellings.
func ParseComplaintStatus(raw string) (ComplaintStatus, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("_", " ", "-", " ").Replace(key)
	for _, status := range ComplaintStatuses {
		if strings.ToLower(string(status)) == key {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
}

// CanTransition reports whether to is strictly later in the lifecycle than from.
// Skipping In Progress is allowed.
func CanTransition(from, to ComplaintStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	return to.Rank() > from.Rank()
}

// NewComplaintHistory starts a history with the single New entry.
func NewComplaintHistory(at time.Time) []StatusUpdate {
	return []StatusUpdate{{
		Seq:       1,
		Status:    ComplaintStatusNew,
		Timestamp: at,
	}}
}

// ApplyStatus appends a status change and moves Status and UpdatedAt with it.
// A timestamp older than the last entry is clamped to it.
func (c *Complaint) ApplyStatus(status ComplaintStatus, notes *string, at time.Time) (StatusUpdate, error) {
	if !status.Valid() {
		return StatusUpdate{}, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	if len(c.StatusHistory) == 0 {
		return StatusUpdate{}, errors.New("status history is empty")
	}
	if !CanTransition(c.Status, status) {
		return StatusUpdate{}, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, c.Status, status)
	}

	last := c.StatusHistory[len(c.StatusHistory)-1]
	if at.Before(last.Timestamp) {
		at = last.Timestamp
	}

	entry := StatusUpdate{
		ComplaintID: c.ID,
		Seq:         last.Seq + 1,
		Status:      status,
		Timestamp:   at,
		Notes:       cloneString(notes),
	}
	c.StatusHistory = append(c.StatusHistory, entry)
	c.Status = status
	c.UpdatedAt = at
	return entry, nil
}

// CheckInvariants validates the status history against the complaint's current state.
func (c *Complaint) CheckInvariants() error {
	if len(c.StatusHistory) == 0 {
		return errors.New("status history is empty")
	}
	first := c.StatusHistory[0]
	if first.Status != ComplaintStatusNew {
		return fmt.Errorf("first history entry is %q, want %q", first.Status, ComplaintStatusNew)
	}
	if !first.Timestamp.Equal(c.CreatedAt) {
		return errors.New("first history entry is not recorded at creation time")
	}
	for i := 1; i < len(c.StatusHistory); i++ {
		prev, cur := c.StatusHistory[i-1], c.StatusHistory[i]
		if cur.Timestamp.Before(prev.Timestamp) {
			return fmt.Errorf("history entry %d goes back in time", i)
		}
		if cur.Status.Rank() < prev.Status.Rank() {
			return fmt.Errorf("history entry %d moves status backwards", i)
		}
	}
	last := c.StatusHistory[len(c.StatusHistory)-1]
	if c.Status != last.Status {
		return fmt.Errorf("status %q does not match last history entry %q", c.Status, last.Status)
	}
	if !c.UpdatedAt.Equal(last.Timestamp) {
		return errors.New("updated_at does not match last history entry")
	}
	return nil
}
