package repository

import "errors"

var (
	ErrNotFound            = errors.New("complaint not found")
	ErrDuplicateTrackingID = errors.New("duplicate tracking id")
	ErrInvalidRecord       = errors.New("invalid complaint record")
)
