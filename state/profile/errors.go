package profile

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingNickname is matched by both decode and schema failures caused by an
	// absent or empty nickname.
	ErrMissingNickname = errors.New("nickname is required")
	// ErrNonCanonical means the bytes parse but are not the canonical encoding of the
	// value they carry, so they would produce a different content address.
	ErrNonCanonical = errors.New("entry is not canonically encoded")
)

// DecodeError reports bytes that do not conform to the entry encoding.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("profile decode: %s", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// SchemaViolation reports a well-formed value that breaks an entry invariant.
type SchemaViolation struct {
	Field  string
	Reason error
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("profile schema violation on %s: %s", e.Field, e.Reason)
}

func (e *SchemaViolation) Unwrap() error {
	return e.Reason
}

func decodeErr(format string, a ...interface{}) *DecodeError {
	return &DecodeError{Err: fmt.Errorf(format, a...)}
}
