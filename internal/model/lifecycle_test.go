package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaint-service/internal/model"
)

func newComplaint(at time.Time) *model.Complaint {
	return &model.Complaint{
		TrackingID:    "ALE-5-ABCDE",
		Type:          model.ComplaintTypeWater,
		Urgency:       model.UrgencyUrgent,
		Status:        model.ComplaintStatusNew,
		CreatedAt:     at,
		UpdatedAt:     at,
		StatusHistory: model.NewComplaintHistory(at),
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to model.ComplaintStatus
		want     bool
	}{
		{model.ComplaintStatusNew, model.ComplaintStatusInProgress, true},
		{model.ComplaintStatusNew, model.ComplaintStatusCompleted, true},
		{model.ComplaintStatusInProgress, model.ComplaintStatusCompleted, true},
		{model.ComplaintStatusNew, model.ComplaintStatusNew, false},
		{model.ComplaintStatusInProgress, model.ComplaintStatusNew, false},
		{model.ComplaintStatusCompleted, model.ComplaintStatusNew, false},
		{model.ComplaintStatusCompleted, model.ComplaintStatusInProgress, false},
		{model.ComplaintStatusCompleted, model.ComplaintStatusCompleted, false},
		{model.ComplaintStatus("Closed"), model.ComplaintStatusCompleted, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, model.CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestParseComplaintStatus(t *testing.T) {
	for raw, want := range map[string]model.ComplaintStatus{
		"new":         model.ComplaintStatusNew,
		"In Progress": model.ComplaintStatusInProgress,
		"IN_PROGRESS": model.ComplaintStatusInProgress,
		"in-progress": model.ComplaintStatusInProgress,
		" Completed ": model.ComplaintStatusCompleted,
	} {
		got, err := model.ParseComplaintStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	_, err := model.ParseComplaintStatus("reopened")
	assert.ErrorIs(t, err, model.ErrUnknownStatus)
}

func TestApplyStatus_ForwardOnly(t *testing.T) {
	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	c := newComplaint(created)
	require.NoError(t, c.CheckInvariants())

	notes := "assigned to maintenance team"
	_, err := c.ApplyStatus(model.ComplaintStatusInProgress, &notes, created.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, model.ComplaintStatusInProgress, c.Status)
	assert.Equal(t, created.Add(time.Hour), c.UpdatedAt)
	require.NoError(t, c.CheckInvariants())

	_, err = c.ApplyStatus(model.ComplaintStatusNew, nil, created.Add(2*time.Hour))
	assert.ErrorIs(t, err, model.ErrIllegalTransition)

	_, err = c.ApplyStatus(model.ComplaintStatusCompleted, nil, created.Add(3*time.Hour))
	require.NoError(t, err)

	_, err = c.ApplyStatus(model.ComplaintStatusInProgress, nil, created.Add(4*time.Hour))
	assert.ErrorIs(t, err, model.ErrIllegalTransition)

	assert.Len(t, c.StatusHistory, 3)
	assert.Equal(t, model.ComplaintStatusCompleted, c.Status)
	require.NoError(t, c.CheckInvariants())
}

func TestApplyStatus_SkipInProgress(t *testing.T) {
	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	c := newComplaint(created)

	entry, err := c.ApplyStatus(model.ComplaintStatusCompleted, nil, created.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, entry.Seq)
	assert.Equal(t, model.ComplaintStatusCompleted, c.Status)
}

func TestApplyStatus_ClampsTimestamp(t *testing.T) {
	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	c := newComplaint(created)

	_, err := c.ApplyStatus(model.ComplaintStatusInProgress, nil, created.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, created, c.UpdatedAt)
	require.NoError(t, c.CheckInvariants())
}

func TestApplyStatus_DoesNotAliasNotes(t *testing.T) {
	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	c := newComplaint(created)

	notes := "original"
	_, err := c.ApplyStatus(model.ComplaintStatusInProgress, &notes, created)
	require.NoError(t, err)
	notes = "changed"
	assert.Equal(t, "original", *c.StatusHistory[1].Notes)
}

func TestCheckInvariants_DetectsMismatch(t *testing.T) {
	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	c := newComplaint(created)
	c.Status = model.ComplaintStatusCompleted
	assert.Error(t, c.CheckInvariants())

	c = newComplaint(created)
	c.StatusHistory = nil
	assert.Error(t, c.CheckInvariants())

	c = newComplaint(created)
	c.UpdatedAt = created.Add(time.Second)
	assert.Error(t, c.CheckInvariants())
}

func TestClone_IsDeep(t *testing.T) {
	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	c := newComplaint(created)
	notes := "admin"
	c.AdminNotes = &notes

	cp := c.Clone()
	cp.StatusHistory[0].Status = model.ComplaintStatusCompleted
	*cp.AdminNotes = "changed"

	assert.Equal(t, model.ComplaintStatusNew, c.StatusHistory[0].Status)
	assert.Equal(t, "admin", *c.AdminNotes)
}

func TestNewTrackingView_OmitsContact(t *testing.T) {
	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	c := newComplaint(created)
	c.ContactNumber = "+1 234 567 890"

	view := model.NewTrackingView(c)
	assert.Equal(t, c.TrackingID, view.TrackingID)
	assert.Equal(t, c.StatusHistory, view.StatusHistory)

	record := model.NewAdminRecord(c)
	assert.Equal(t, "+1 234 567 890", record.ContactNumber)
}

func TestComplaintFilter_Matches(t *testing.T) {
	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	c := newComplaint(created)

	assert.True(t, model.ComplaintFilter{}.Matches(c))
	assert.True(t, model.ComplaintFilter{Types: []model.ComplaintType{model.ComplaintTypeWater}}.Matches(c))
	assert.False(t, model.ComplaintFilter{Statuses: []model.ComplaintStatus{model.ComplaintStatusCompleted}}.Matches(c))

	later := created.Add(time.Hour)
	assert.False(t, model.ComplaintFilter{DateFrom: &later}.Matches(c))
}
