// Package validation checks complaint submissions before they reach the store.
// Every violated field is reported, each with one or more coded messages.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"complaint-service/internal/model"
)

const (
	LocationMinLen    = 5
	LocationMaxLen    = 100
	DescriptionMinLen = 20
	DescriptionMaxLen = 500
	NotesMaxLen       = 300
	MaxAttachmentSize = 5_000_000
)

var phonePattern = regexp.MustCompile(`^([+]?[\s0-9]+)?(\d{3}|[(]?[0-9]+[)])?([-]?[\s]?[0-9])+$`)

var acceptedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
}

// Attachment describes an uploaded file. Only its declared type and size are checked.
type Attachment struct {
	FileName  string
	MediaType string
	Size      int64
}

// Submission is the raw input collected from a resident.
type Submission struct {
	Type          string
	Urgency       string
	Location      string
	Description   string
	Notes         *string
	ContactNumber string
	Attachment    *Attachment
}

// Accepted is a submission that passed every rule, with enums parsed and strings trimmed.
type Accepted struct {
	Type          model.ComplaintType
	Urgency       model.UrgencyLevel
	Location      string
	Description   string
	Notes         *string
	ContactNumber string
	Attachment    *Attachment
}

type submissionRules struct {
	Type          string           `json:"type" validate:"complaint_type"`
	Urgency       string           `json:"urgency" validate:"urgency_level"`
	Location      string           `json:"location" validate:"min=5,max=100"`
	Description   string           `json:"description" validate:"min=20,max=500"`
	Notes         *string          `json:"notes" validate:"omitempty,max=300"`
	ContactNumber string           `json:"contact_number" validate:"phone"`
	Attachment    *attachmentRules `json:"attachment" validate:"omitempty"`
}

type attachmentRules struct {
	MediaType string `json:"media_type" validate:"image_type"`
	Size      int64  `json:"size" validate:"max=5000000"`
}

// Validator is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "complaint_type", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseComplaintType(fl.Field().String())
		return ok
	})
	mustRegister(v, "urgency_level", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseUrgencyLevel(fl.Field().String())
		return ok
	})
	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "image_type", func(fl validator.FieldLevel) bool {
		_, ok := acceptedImageTypes[fl.Field().String()]
		return ok
	})
	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

var defaultValidator = New()

// Validate runs the default validator.
func Validate(s Submission) (Accepted, error) {
	return defaultValidator.Validate(s)
}

// Validate returns the normalized submission, or a *ValidationError listing every failed field.
func (v *Validator) Validate(s Submission) (Accepted, error) {
	rules := submissionRules{
		Type:          strings.TrimSpace(s.Type),
		Urgency:       strings.TrimSpace(s.Urgency),
		Location:      strings.TrimSpace(s.Location),
		Description:   strings.TrimSpace(s.Description),
		Notes:         trimOptional(s.Notes),
		ContactNumber: strings.TrimSpace(s.ContactNumber),
	}
	var attachment *Attachment
	if s.Attachment != nil {
		attachment = &Attachment{
			FileName:  strings.TrimSpace(s.Attachment.FileName),
			MediaType: CanonicalMediaType(s.Attachment.MediaType),
			Size:      s.Attachment.Size,
		}
		rules.Attachment = &attachmentRules{
			MediaType: attachment.MediaType,
			Size:      attachment.Size,
		}
	}

	if err := v.validate.Struct(rules); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return Accepted{}, err
		}
		return Accepted{}, translate(fieldErrs)
	}

	complaintType, _ := model.ParseComplaintType(rules.Type)
	urgency, _ := model.ParseUrgencyLevel(rules.Urgency)

	return Accepted{
		Type:          complaintType,
		Urgency:       urgency,
		Location:      rules.Location,
		Description:   rules.Description,
		Notes:         rules.Notes,
		ContactNumber: rules.ContactNumber,
		Attachment:    attachment,
	}, nil
}

// CanonicalMediaType lower-cases the type, drops parameters and expands bare
// image subtypes ("png" becomes "image/png").
func CanonicalMediaType(raw string) string {
	mediaType := strings.ToLower(strings.TrimSpace(raw))
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = strings.TrimSpace(mediaType[:idx])
	}
	mediaType = strings.TrimPrefix(mediaType, ".")
	if mediaType != "" && !strings.Contains(mediaType, "/") {
		mediaType = "image/" + mediaType
	}
	return mediaType
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func translate(errs validator.ValidationErrors) *ValidationError {
	out := &ValidationError{Fields: make(map[string][]FieldError)}
	for _, fe := range errs {
		field := topLevelField(fe.Namespace())
		out.add(field, describe(field, fe))
	}
	return out
}

// topLevelField maps "submissionRules.attachment.size" to "attachment".
func topLevelField(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) < 2 {
		return namespace
	}
	return parts[1]
}

func describe(field string, fe validator.FieldError) FieldError {
	switch field {
	case "type":
		return FieldError{Code: CodeInvalidEnum, Message: "Please select a complaint type."}
	case "urgency":
		return FieldError{Code: CodeInvalidEnum, Message: "Please select an urgency level."}
	case "location":
		if fe.Tag() == "min" {
			return FieldError{Code: CodeOutOfRange, Message: "Location is too short."}
		}
		return FieldError{Code: CodeOutOfRange, Message: "Location is too long."}
	case "description":
		if fe.Tag() == "min" {
			return FieldError{Code: CodeOutOfRange, Message: fmt.Sprintf("Description must be at least %d characters.", DescriptionMinLen)}
		}
		return FieldError{Code: CodeOutOfRange, Message: "Description is too long."}
	case "notes":
		return FieldError{Code: CodeOutOfRange, Message: "Notes are too long."}
	case "contact_number":
		return FieldError{Code: CodeInvalidFormat, Message: "Invalid phone number!"}
	case "attachment":
		if fe.Field() == "size" {
			return attachmentTooLarge
		}
		return FieldError{Code: CodeInvalidFormat, Message: "Only .jpg, .jpeg, .png and .webp formats are supported."}
	default:
		return FieldError{Code: CodeInvalidFormat, Message: fmt.Sprintf("%s failed %s", field, fe.Tag())}
	}
}

// sortedFields is used by Error for stable output.
func sortedFields(fields map[string][]FieldError) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
