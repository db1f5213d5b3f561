package lazyfn

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code identifies the kind of misuse reported by an Error.
type Code string

const (
	// IterableRequired: the value cannot be iterated, as with FromAny(42).
	IterableRequired Code = "IterableRequired"
	// StringRequired: a text argument or document was something else.
	StringRequired Code = "StringRequired"
	// IntegerRequired: a numeric argument was not a whole number.
	IntegerRequired Code = "IntegerRequired"
	// NonZeroIntegerRequired: a range step was zero.
	NonZeroIntegerRequired Code = "NonZeroIntegerRequired"
	// PositiveIntegerRequired: a count or index was negative.
	PositiveIntegerRequired Code = "PositiveIntegerRequired"
	// NonZeroPositiveIntegerRequired: a chunk size or stride was below one.
	NonZeroPositiveIntegerRequired Code = "NonZeroPositiveIntegerRequired"
	// CollectionClassDoesNotExist: CollectWith was given an unregistered sink name.
	CollectionClassDoesNotExist Code = "CollectionClassDoesNotExist"
	// CollectionClassMustImplementArrayAccess: a registered sink cannot hold
	// the entries being collected.
	CollectionClassMustImplementArrayAccess Code = "CollectionClassMustImplementArrayAccess"
)

// Sentinels for use with errors.Is. Any *Error matches the sentinel
// carrying the same Code, regardless of Op or Message.
var (
	ErrIterableRequired                        = &Error{Code: IterableRequired}
	ErrStringRequired                          = &Error{Code: StringRequired}
	ErrIntegerRequired                         = &Error{Code: IntegerRequired}
	ErrNonZeroIntegerRequired                  = &Error{Code: NonZeroIntegerRequired}
	ErrPositiveIntegerRequired                 = &Error{Code: PositiveIntegerRequired}
	ErrNonZeroPositiveIntegerRequired          = &Error{Code: NonZeroPositiveIntegerRequired}
	ErrCollectionClassDoesNotExist             = &Error{Code: CollectionClassDoesNotExist}
	ErrCollectionClassMustImplementArrayAccess = &Error{Code: CollectionClassMustImplementArrayAccess}
)

// Error is the single error kind raised by this package.
//
// Argument validation always happens when an adapter is set up, never
// while the chain is being consumed. The typed API panics with an
// *Error (wrapped with a stack trace); functions that accept untyped
// input return it instead.
type Error struct {
	Op      string
	Code    Code
	Message string
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("lazyfn: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("lazyfn.%s: %s: %s", e.Op, e.Code, e.Message)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// CodeOf returns the Code carried by err, if any.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}

func newError(op string, code Code, format string, args ...any) error {
	return errors.WithStack(&Error{
		Op:      op,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

// fail panics with a code-bearing error. It is used for misuse of the
// typed API where the mistake is in the calling code, not in data.
func fail(op string, code Code, format string, args ...any) {
	panic(newError(op, code, format, args...))
}

func requireCount(op string, n int) {
	if n < 0 {
		fail(op, PositiveIntegerRequired, "expected a non-negative integer, got %d", n)
	}
}

func requireNonZeroCount(op string, n int) {
	if n <= 0 {
		fail(op, NonZeroPositiveIntegerRequired, "expected a positive integer, got %d", n)
	}
}
