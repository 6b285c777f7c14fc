package validation

import (
	"errors"
	"strings"
)

type ErrorCode string

const (
	CodeInvalidEnum   ErrorCode = "InvalidEnum"
	CodeOutOfRange    ErrorCode = "OutOfRange"
	CodeInvalidFormat ErrorCode = "InvalidFormat"
	CodeTooLarge      ErrorCode = "TooLarge"
)

type FieldError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

var attachmentTooLarge = FieldError{Code: CodeTooLarge, Message: "Max file size is 5MB."}

// ValidationError maps field names to the rules they broke. It is never empty.
type ValidationError struct {
	Fields map[string][]FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(sortedFields(e.Fields), ", ")
}

func (e *ValidationError) add(field string, fe FieldError) {
	e.Fields[field] = append(e.Fields[field], fe)
}

// Has reports whether field failed with the given code.
func (e *ValidationError) Has(field string, code ErrorCode) bool {
	for _, fe := range e.Fields[field] {
		if fe.Code == code {
			return true
		}
	}
	return false
}

// AsValidationError unwraps err into a *ValidationError when it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AttachmentTooLarge is the error for an upload cut off before its size could be checked.
func AttachmentTooLarge() *ValidationError {
	return &ValidationError{Fields: map[string][]FieldError{
		"attachment": {attachmentTooLarge},
	}}
}
