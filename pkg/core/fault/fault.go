// Package fault defines the typed errors returned by the core managers.
// Validation and permission failures are reported with an explicit kind so
// callers can branch on the failure class instead of matching message text.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a manager failure
type Kind string

const (
	KindPermissionDenied Kind = "permission_denied"
	KindValidation       Kind = "validation"
	KindInstrumentInUse  Kind = "instrument_in_use"
	KindLastAdmin        Kind = "last_admin"
	KindSelfDelete       Kind = "self_delete"
	KindNotFound         Kind = "not_found"
	KindStoreRejected    Kind = "store_rejected"
)

// Error is a classified, user-presentable failure
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a fault with the given kind and formatted message
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a store_rejected fault preserving the underlying store error
func Wrap(err error, format string, args ...any) *Error {
	return &Error{
		Kind:    KindStoreRejected,
		Message: fmt.Sprintf(format, args...) + ": " + err.Error(),
		cause:   err,
	}
}

// KindOf returns the kind of err if it is (or wraps) a fault.Error,
// or the empty string otherwise
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
