package service

import (
	"errors"

	"fieldtrans/internal/contenttype"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid")
	// ErrMisconfigured is returned for entities or content types the
	// registry cannot resolve.
	ErrMisconfigured = contenttype.ErrMisconfigured
)

// FieldError reports an invalid form value.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *FieldError) Is(target error) bool {
	return target == ErrInvalid
}
