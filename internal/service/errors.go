package service

import "errors"

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	// ErrConflict means every regenerated tracking id was claimed by a concurrent submission.
	ErrConflict      = errors.New("tracking id conflict")
	ErrInvalidStatus = errors.New("invalid status transition")
)
