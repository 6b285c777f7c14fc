package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"complaint-service/internal/events"
	"complaint-service/internal/model"
	"complaint-service/internal/repository"
	"complaint-service/internal/tracking"
	"complaint-service/internal/validation"
)

// maxInsertRetries bounds regeneration when a concurrent submission claims the same id.
const maxInsertRetries = 3

type ComplaintService struct {
	store     repository.ComplaintStore
	generator *tracking.Generator
	validator *validation.Validator
	publisher events.Publisher
	now       func() time.Time
	log       zerolog.Logger
}

func NewComplaintService(
	store repository.ComplaintStore,
	generator *tracking.Generator,
	publisher events.Publisher,
	now func() time.Time,
	log zerolog.Logger,
) *ComplaintService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if now == nil {
		now = time.Now
	}
	return &ComplaintService{
		store:     store,
		generator: generator,
		validator: validation.New(),
		publisher: publisher,
		now:       now,
		log:       log,
	}
}

type SubmitResult struct {
	TrackingID string `json:"tracking_id"`
}

// Submit validates a resident's complaint and stores it as New. A *validation.ValidationError
// is returned untouched so callers can report every failed field.
func (s *ComplaintService) Submit(ctx context.Context, submission validation.Submission) (SubmitResult, error) {
	accepted, err := s.validator.Validate(submission)
	if err != nil {
		return SubmitResult{}, err
	}

	for attempt := 0; ; attempt++ {
		trackingID, err := s.generator.Generate(ctx, s.store)
		if err != nil {
			return SubmitResult{}, fmt.Errorf("generate tracking id: %w", err)
		}

		complaint := buildComplaint(trackingID, accepted, s.clock())
		err = s.store.Insert(ctx, complaint)
		if err == nil {
			s.log.Info().
				Str("tracking_id", complaint.TrackingID).
				Str("type", string(complaint.Type)).
				Str("urgency", string(complaint.Urgency)).
				Msg("complaint submitted")
			s.publish(ctx, events.NewEvent(events.TypeComplaintCreated, complaint, complaint.CreatedAt))
			return SubmitResult{TrackingID: complaint.TrackingID}, nil
		}
		if !errors.Is(err, repository.ErrDuplicateTrackingID) {
			return SubmitResult{}, fmt.Errorf("store complaint: %w", err)
		}
		if attempt >= maxInsertRetries {
			return SubmitResult{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		s.log.Warn().Str("tracking_id", trackingID).Int("attempt", attempt+1).Msg("tracking id taken on insert, regenerating")
	}
}

// Track looks a complaint up for the public. Malformed and unknown ids both report not found.
func (s *ComplaintService) Track(ctx context.Context, rawTrackingID string) (*model.TrackingView, bool, error) {
	trackingID := tracking.Normalize(rawTrackingID)
	if !s.generator.Valid(trackingID) {
		return nil, false, nil
	}
	complaint, ok, err := s.store.FindByTrackingID(ctx, trackingID)
	if err != nil || !ok {
		return nil, false, err
	}
	view := model.NewTrackingView(complaint)
	return &view, true, nil
}

func (s *ComplaintService) UpdateStatus(ctx context.Context, principal model.Principal, trackingID, rawStatus string, notes *string) (*model.AdminRecord, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	status, err := model.ParseComplaintStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	complaint, err := s.store.AppendStatusUpdate(ctx, tracking.Normalize(trackingID), status, trimNotes(notes))
	if err != nil {
		return nil, mapStoreError(err)
	}

	s.log.Info().
		Str("tracking_id", complaint.TrackingID).
		Str("status", string(complaint.Status)).
		Str("user_id", principal.UserID.String()).
		Msg("complaint status changed")
	s.publish(ctx, events.NewEvent(events.TypeComplaintStatusChanged, complaint, complaint.UpdatedAt))

	record := model.NewAdminRecord(complaint)
	return &record, nil
}

func (s *ComplaintService) SetAdminNotes(ctx context.Context, principal model.Principal, trackingID string, notes *string) (*model.AdminRecord, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	complaint, err := s.store.SetAdminNotes(ctx, tracking.Normalize(trackingID), trimNotes(notes))
	if err != nil {
		return nil, mapStoreError(err)
	}
	record := model.NewAdminRecord(complaint)
	return &record, nil
}

func (s *ComplaintService) Get(ctx context.Context, principal model.Principal, trackingID string) (*model.AdminRecord, error) {
	if !principal.CanRead() {
		return nil, ErrPermissionDenied
	}
	complaint, ok, err := s.store.FindByTrackingID(ctx, tracking.Normalize(trackingID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	record := model.NewAdminRecord(complaint)
	return &record, nil
}

func (s *ComplaintService) List(ctx context.Context, principal model.Principal, filter model.ComplaintFilter) ([]model.AdminRecord, error) {
	if !principal.CanRead() {
		return nil, ErrPermissionDenied
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, ErrInvalidInput
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return nil, ErrInvalidInput
	}

	complaints, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	records := make([]model.AdminRecord, 0, len(complaints))
	for i := range complaints {
		records = append(records, model.NewAdminRecord(&complaints[i]))
	}
	return records, nil
}

// clock is UTC at microsecond precision so values survive a postgres round trip unchanged.
func (s *ComplaintService) clock() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *ComplaintService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Error().Err(err).Str("tracking_id", event.TrackingID).Str("event", string(event.Type)).Msg("publish event failed")
	}
}

func buildComplaint(trackingID string, accepted validation.Accepted, at time.Time) *model.Complaint {
	complaint := &model.Complaint{
		TrackingID:    trackingID,
		Type:          accepted.Type,
		Urgency:       accepted.Urgency,
		Location:      accepted.Location,
		Description:   accepted.Description,
		Notes:         accepted.Notes,
		ContactNumber: accepted.ContactNumber,
		Status:        model.ComplaintStatusNew,
		CreatedAt:     at,
		UpdatedAt:     at,
		StatusHistory: model.NewComplaintHistory(at),
	}
	if accepted.Attachment != nil && accepted.Attachment.FileName != "" {
		ref := accepted.Attachment.FileName
		complaint.AttachmentRef = &ref
	}
	return complaint
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, model.ErrIllegalTransition):
		return fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	case errors.Is(err, model.ErrUnknownStatus):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return err
	}
}

func trimNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
