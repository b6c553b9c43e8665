package booking

import (
	"errors"
	"strings"
)

var (
	// ErrProviderNotFound is returned when the requested provider id is unknown.
	ErrProviderNotFound = errors.New("booking: provider not found")
	// ErrProviderUnavailable is returned when the provider is not accepting bookings.
	ErrProviderUnavailable = errors.New("booking: provider not available")
	// ErrDraftNotFound is returned when no open wizard has the given id.
	ErrDraftNotFound = errors.New("booking: draft not found")

	ErrDateRequired    = errors.New("booking: please select a date for your appointment")
	ErrTimeRequired    = errors.New("booking: please select a time slot for your appointment")
	ErrPastDate        = errors.New("booking: date is in the past")
	ErrInvalidDate     = errors.New("booking: invalid date")
	ErrWrongStep       = errors.New("booking: action not allowed at this step")
	ErrSlotUnavailable = errors.New("booking: time slot not available")
	ErrCannotGoBack    = errors.New("booking: cannot go back from this step")
	ErrConfirmed       = errors.New("booking: appointment already confirmed")

	ErrUnknownAction  = errors.New("booking: unknown action")
	ErrInvalidPayload = errors.New("booking: invalid action payload")
)

// FieldError describes one invalid patient field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every patient field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "booking: invalid patient details: " + strings.Join(names, ", ")
}
