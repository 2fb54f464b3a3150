package booking

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound            = errors.New("booking not found")
	ErrUnknownKind         = errors.New("unknown booking kind")
	ErrSlotTaken           = errors.New("this time slot is already booked")
	ErrInvalidStatus       = errors.New("invalid status for this booking kind")
	ErrForbiddenTransition = errors.New("status transition not allowed")
	ErrSignatureMismatch   = errors.New("invalid payment signature")
	ErrUpstream            = errors.New("upstream service unavailable")
)

// FieldErrors carries every violated field so the client can fix the whole
// form in one pass.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}
