// Package werrors defines the error taxonomy shared across the octree
// modules: every failure a caller might want to branch on falls into one
// of a small number of kinds, carried by a single exported Error type
// whose Kind field names the category.
package werrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure into one of the taxonomy's categories.
type Kind int

const (
	// KindIo covers failures opening, reading or writing the underlying
	// storage (local filesystem or remote stream).
	KindIo Kind = iota
	// KindMalformedData covers on-disk bytes that don't decode into a
	// well-formed record (wrong length, bad magic, truncated stream).
	KindMalformedData
	// KindUnknownAttribute covers a request for a node attribute that
	// doesn't exist for this octree.
	KindUnknownAttribute
	// KindDomainError covers values outside a component's accepted
	// domain (e.g. an ECEF point too far from the reference sphere).
	KindDomainError
	// KindCancelled covers a caller-initiated stop of an in-progress
	// stream (a BatchIterator callback returning false).
	KindCancelled
	// KindTransport covers failures of the RPC/network layer underneath
	// a remote DataProvider.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindIo:
		return "io"
	case KindMalformedData:
		return "malformed_data"
	case KindUnknownAttribute:
		return "unknown_attribute"
	case KindDomainError:
		return "domain_error"
	case KindCancelled:
		return "cancelled"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Error is the concrete error type carried through this module. Callers
// branch on kind with errors.As and Kind(), not string matching.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an Error with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error that wraps an existing cause.
func Wrap(kind Kind, cause error, message string) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Is reports whether err is a *Error of the given kind, looking through
// any wrapping (including github.com/pkg/errors wraps, which implement
// Unwrap via Cause).
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Cancelled is a sentinel that BatchIterator loops return when a user
// callback asked the stream to stop early; it is always of KindCancelled.
var Cancelled = New(KindCancelled, "caller requested stop")
