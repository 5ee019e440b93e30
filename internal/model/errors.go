package model

import (
	"errors"
	"fmt"
)

// ErrorKind tags every failure the engine can report. The caller decides
// whether to retry; the engine itself never does.
type ErrorKind string

const (
	KindValidation                ErrorKind = "validation"
	KindUserNotFound              ErrorKind = "user_not_found"
	KindEventNotFound             ErrorKind = "event_not_found"
	KindTicketPriceNotFound       ErrorKind = "ticket_price_not_found"
	KindBookingNotFound           ErrorKind = "booking_not_found"
	KindWalletNotFound            ErrorKind = "wallet_not_found"
	KindInsufficientCapacity      ErrorKind = "insufficient_capacity"
	KindInsufficientWalletBalance ErrorKind = "insufficient_wallet_balance"
	KindInvalidBookingStatus      ErrorKind = "invalid_booking_status"
	KindTransient                 ErrorKind = "transient"
	KindInternal                  ErrorKind = "internal"
)

// Error is the single tagged error type used across the core in place of an
// exception hierarchy. It optionally wraps an underlying cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a tagged error with a plain message.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Errorf builds a tagged error with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError tags an underlying error with a kind and context message.
func WrapError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err, or KindInternal when err carries no tag.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err is tagged with the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// IsNotFound reports whether err is any of the not-found kinds.
func IsNotFound(err error) bool {
	switch KindOf(err) {
	case KindUserNotFound, KindEventNotFound, KindTicketPriceNotFound, KindBookingNotFound, KindWalletNotFound:
		return true
	}
	return false
}

// IsValidation reports whether err is a malformed-input failure.
func IsValidation(err error) bool {
	return IsKind(err, KindValidation)
}

// IsTransient reports whether the whole operation is safe to retry from
// scratch: nothing was committed.
func IsTransient(err error) bool {
	return IsKind(err, KindTransient)
}
