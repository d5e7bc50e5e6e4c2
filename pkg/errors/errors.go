package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound     = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden    = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict     = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation   = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal     = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrUpstream     = New("UPSTREAM_ERROR", http.StatusBadGateway, "upstream service failed")
	ErrCacheMiss    = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// Placement rejections. All are locally recoverable: the grid is
// guaranteed unchanged when one of these is returned.
var (
	ErrOnlineMismatch         = New("ONLINE_MISMATCH", http.StatusUnprocessableEntity, "course delivery mode does not match the classroom")
	ErrCapacityExceeded       = New("CAPACITY_EXCEEDED", http.StatusUnprocessableEntity, "course capacity exceeds classroom capacity")
	ErrTimeSlotNotFound       = New("TIME_SLOT_NOT_FOUND", http.StatusNotFound, "time slot not found")
	ErrCombineIneligible      = New("COMBINE_INELIGIBLE", http.StatusConflict, "sections cannot be combined")
	ErrDurationUnachievable   = New("DURATION_UNACHIEVABLE", http.StatusUnprocessableEntity, "course duration cannot be matched by consecutive slots")
	ErrInstructorUnavailable  = New("INSTRUCTOR_UNAVAILABLE", http.StatusConflict, "instructor is unavailable at the requested time")
	ErrInstructorDoubleBooked = New("INSTRUCTOR_DOUBLE_BOOKED", http.StatusConflict, "instructor already teaches elsewhere at the requested time")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// IsCode reports whether err carries the given rejection code.
func IsCode(err error, code string) bool {
	e := FromError(err)
	return e != nil && e.Code == code
}
