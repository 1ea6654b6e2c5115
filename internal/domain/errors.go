// Package domain holds the error taxonomy shared by every layer of the
// booking platform. Handlers translate these into HTTP statuses; nothing
// below the handler layer knows about HTTP.
package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies an Error for transport mapping and logging.
type ErrorCode string

const (
	CodeInvalidID       ErrorCode = "INVALID_IDENTIFIER"
	CodeValidation      ErrorCode = "VALIDATION_FAILED"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeUnavailable     ErrorCode = "ROOM_NOT_AVAILABLE"
	CodeAlreadyPaid     ErrorCode = "ALREADY_PAID"
	CodeMalformedRecord ErrorCode = "MALFORMED_RECORD"
	CodeStoreFailure    ErrorCode = "STORE_UNAVAILABLE"
	CodeIndexFailure    ErrorCode = "INDEX_PROPAGATION_FAILED"
)

// Error is a classified application error.
type Error struct {
	Code    ErrorCode
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.cause }

// NewInvalidIDError reports a malformed entity identifier.
func NewInvalidIDError(id string) *Error {
	return &Error{Code: CodeInvalidID, Message: fmt.Sprintf("invalid identifier %q", id)}
}

// NewValidationError reports a request that fails business validation.
func NewValidationError(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// NewNotFoundError reports a missing entity of the given kind.
func NewNotFoundError(entity, id string) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NewUnavailableError reports a booking conflict for a room.
func NewUnavailableError(roomID string) *Error {
	return &Error{Code: CodeUnavailable, Message: fmt.Sprintf("room %s is not available for the requested range", roomID)}
}

// NewAlreadyPaidError reports a repeated payment attempt.
func NewAlreadyPaidError(bookingID string) *Error {
	return &Error{Code: CodeAlreadyPaid, Message: fmt.Sprintf("booking %s is already paid", bookingID)}
}

// NewMalformedRecordError reports a stored document that failed typed decoding.
func NewMalformedRecordError(entity string, cause error) *Error {
	return &Error{Code: CodeMalformedRecord, Message: fmt.Sprintf("malformed %s record", entity), cause: cause}
}

// NewStoreError reports a record store infrastructure failure. Retryable.
func NewStoreError(op string, cause error) *Error {
	return &Error{Code: CodeStoreFailure, Message: fmt.Sprintf("record store failure during %s", op), cause: cause}
}

// NewIndexError reports a post-commit index propagation failure.
func NewIndexError(op string, cause error) *Error {
	return &Error{Code: CodeIndexFailure, Message: fmt.Sprintf("availability index failure during %s", op), cause: cause}
}

// CodeOf extracts the error code, or empty string for unclassified errors.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsNotFound reports whether err is a missing-entity error.
func IsNotFound(err error) bool { return CodeOf(err) == CodeNotFound }

// IsClientError reports whether err is the caller's fault (vs infrastructure).
func IsClientError(err error) bool {
	switch CodeOf(err) {
	case CodeInvalidID, CodeValidation, CodeNotFound, CodeUnavailable, CodeAlreadyPaid:
		return true
	}
	return false
}
