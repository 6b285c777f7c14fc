package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaint-service/internal/model"
	"complaint-service/internal/validation"
)

func validSubmission() validation.Submission {
	return validation.Submission{
		Type:          "Water",
		Urgency:       "Urgent",
		Location:      "Main Street, near the bakery",
		Description:   "No water supply since this morning, affecting the whole block.",
		ContactNumber: "+1 234 567 890",
	}
}

func strPtr(s string) *string { return &s }

func requireValidationError(t *testing.T, err error) *validation.ValidationError {
	t.Helper()
	ve, ok := validation.AsValidationError(err)
	require.True(t, ok, "expected *ValidationError, got %v", err)
	require.NotEmpty(t, ve.Fields)
	return ve
}

func TestValidate_AcceptsScenario(t *testing.T) {
	accepted, err := validation.Validate(validSubmission())
	require.NoError(t, err)
	assert.Equal(t, model.ComplaintTypeWater, accepted.Type)
	assert.Equal(t, model.UrgencyUrgent, accepted.Urgency)
	assert.Equal(t, "Main Street, near the bakery", accepted.Location)
	assert.Nil(t, accepted.Notes)
	assert.Nil(t, accepted.Attachment)
}

func TestValidate_NormalizesInput(t *testing.T) {
	s := validSubmission()
	s.Type = " cleanliness "
	s.Urgency = "EMERGENCY"
	s.Location = "   Block 5, Park Area  "
	s.Notes = strPtr("   ")

	accepted, err := validation.Validate(s)
	require.NoError(t, err)
	assert.Equal(t, model.ComplaintTypeCleanliness, accepted.Type)
	assert.Equal(t, model.UrgencyEmergency, accepted.Urgency)
	assert.Equal(t, "Block 5, Park Area", accepted.Location)
	assert.Nil(t, accepted.Notes)
}

func TestValidate_LocationRange(t *testing.T) {
	for _, n := range []int{0, 1, 4, 101, 150} {
		s := validSubmission()
		s.Location = strings.Repeat("a", n)
		_, err := validation.Validate(s)
		ve := requireValidationError(t, err)
		assert.True(t, ve.Has("location", validation.CodeOutOfRange), "length %d", n)
	}
	for _, n := range []int{5, 50, 100} {
		s := validSubmission()
		s.Location = strings.Repeat("a", n)
		_, err := validation.Validate(s)
		assert.NoError(t, err, "length %d", n)
	}
}

func TestValidate_LocationCountsCharactersNotBytes(t *testing.T) {
	s := validSubmission()
	s.Location = strings.Repeat("ش", 100)
	_, err := validation.Validate(s)
	assert.NoError(t, err)
}

func TestValidate_DescriptionTooShort(t *testing.T) {
	s := validSubmission()
	s.Description = strings.Repeat("x", 10)
	_, err := validation.Validate(s)
	ve := requireValidationError(t, err)
	assert.True(t, ve.Has("description", validation.CodeOutOfRange))
	assert.Len(t, ve.Fields, 1)
}

func TestValidate_DescriptionAndNotesBounds(t *testing.T) {
	s := validSubmission()
	s.Description = strings.Repeat("x", 501)
	s.Notes = strPtr(strings.Repeat("n", 301))
	_, err := validation.Validate(s)
	ve := requireValidationError(t, err)
	assert.True(t, ve.Has("description", validation.CodeOutOfRange))
	assert.True(t, ve.Has("notes", validation.CodeOutOfRange))

	s = validSubmission()
	s.Description = strings.Repeat("x", 500)
	s.Notes = strPtr(strings.Repeat("n", 300))
	_, err = validation.Validate(s)
	assert.NoError(t, err)
}

func TestValidate_Enums(t *testing.T) {
	s := validSubmission()
	s.Type = ""
	s.Urgency = "Whenever"
	_, err := validation.Validate(s)
	ve := requireValidationError(t, err)
	assert.True(t, ve.Has("type", validation.CodeInvalidEnum))
	assert.True(t, ve.Has("urgency", validation.CodeInvalidEnum))
}

func TestValidate_ContactNumber(t *testing.T) {
	valid := []string{"+1 234 567 890", "1234567890", "0987654321", "(555) 123-4567", "+44 20 7946 0958", "7"}
	for _, number := range valid {
		s := validSubmission()
		s.ContactNumber = number
		_, err := validation.Validate(s)
		assert.NoError(t, err, number)
	}

	invalid := []string{"", "call me", "+", "12ab34", "555-CALL"}
	for _, number := range invalid {
		s := validSubmission()
		s.ContactNumber = number
		_, err := validation.Validate(s)
		ve := requireValidationError(t, err)
		assert.True(t, ve.Has("contact_number", validation.CodeInvalidFormat), number)
	}
}

func TestValidate_AttachmentGifRejected(t *testing.T) {
	s := validSubmission()
	s.Attachment = &validation.Attachment{FileName: "leak.gif", MediaType: "image/gif", Size: 1024}
	_, err := validation.Validate(s)
	ve := requireValidationError(t, err)
	assert.True(t, ve.Has("attachment", validation.CodeInvalidFormat))
	assert.Len(t, ve.Fields, 1)
}

func TestValidate_AttachmentTooLargeAndWrongType(t *testing.T) {
	s := validSubmission()
	s.Attachment = &validation.Attachment{MediaType: "application/pdf", Size: validation.MaxAttachmentSize + 1}
	_, err := validation.Validate(s)
	ve := requireValidationError(t, err)
	assert.True(t, ve.Has("attachment", validation.CodeInvalidFormat))
	assert.True(t, ve.Has("attachment", validation.CodeTooLarge))
}

func TestValidate_AttachmentAccepted(t *testing.T) {
	for _, mediaType := range []string{"image/jpeg", "image/jpg", "IMAGE/PNG", "image/webp", "png", "jpeg; q=1"} {
		s := validSubmission()
		s.Attachment = &validation.Attachment{FileName: "photo", MediaType: mediaType, Size: validation.MaxAttachmentSize}
		accepted, err := validation.Validate(s)
		require.NoError(t, err, mediaType)
		assert.True(t, strings.HasPrefix(accepted.Attachment.MediaType, "image/"))
	}
}

func TestValidate_ReportsEveryField(t *testing.T) {
	_, err := validation.Validate(validation.Submission{
		Attachment: &validation.Attachment{MediaType: "image/gif"},
	})
	ve := requireValidationError(t, err)
	for _, field := range []string{"type", "urgency", "location", "description", "contact_number", "attachment"} {
		assert.Contains(t, ve.Fields, field)
	}
	assert.NotContains(t, ve.Fields, "notes")
	assert.Contains(t, ve.Error(), "attachment, contact_number, description")
}

func TestCanonicalMediaType(t *testing.T) {
	assert.Equal(t, "image/png", validation.CanonicalMediaType(" PNG "))
	assert.Equal(t, "image/jpeg", validation.CanonicalMediaType("image/jpeg; charset=binary"))
	assert.Equal(t, "image/webp", validation.CanonicalMediaType(".webp"))
	assert.Equal(t, "", validation.CanonicalMediaType(""))
}

func TestAttachmentTooLarge(t *testing.T) {
	err := validation.AttachmentTooLarge()
	assert.True(t, err.Has("attachment", validation.CodeTooLarge))
	assert.Len(t, err.Fields, 1)

	sub := validSubmission()
	sub.Attachment = &validation.Attachment{FileName: "big.png", MediaType: "image/png", Size: validation.MaxAttachmentSize + 1}
	_, validateErr := validation.Validate(sub)
	ve, ok := validation.AsValidationError(validateErr)
	require.True(t, ok)
	assert.Equal(t, err.Fields["attachment"], ve.Fields["attachment"])
}
