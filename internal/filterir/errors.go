package filterir

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes filter compilation failures.
type ErrorCode string

const (
	// ErrCodeUnknownOperator indicates an operator symbol with no catalog
	// entry. This signals a parser/compiler version mismatch.
	ErrCodeUnknownOperator ErrorCode = "UNKNOWN_OPERATOR"

	// ErrCodeUnsupportedKey indicates a table-level key name that is not a
	// recognized filter attribute.
	ErrCodeUnsupportedKey ErrorCode = "UNSUPPORTED_KEY"

	// ErrCodeUnsupportedOperator indicates an operator/key combination that
	// is semantically invalid (LIKE on a numeric attribute, non-equality on
	// a free-form property, LIKE with the constant on the left).
	ErrCodeUnsupportedOperator ErrorCode = "UNSUPPORTED_OPERATOR"

	// ErrCodeUnresolvableKey indicates a key name that is not among the
	// table's partition keys.
	ErrCodeUnresolvableKey ErrorCode = "UNRESOLVABLE_PARTITION_KEY"

	// ErrCodeUnsupportedValue indicates a constant type/operator combination
	// not supported for the resolved key's declared type.
	ErrCodeUnsupportedValue ErrorCode = "UNSUPPORTED_VALUE_TYPE"
)

// FilterError is a validation failure raised while compiling a filter.
//
// All compilation failures are returned to the immediate caller; no partial
// fragment is ever produced alongside one. They are never retried - the
// predicate has to be corrected at its source.
type FilterError struct {
	// Code identifies the failure category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Key is the attribute or partition key name involved, when one is.
	Key string
}

// Error implements the error interface.
func (e *FilterError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s: %s (key=%s)", e.Code, e.Message, e.Key)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HasCode reports whether err is (or wraps) a FilterError with the given
// code. Uses errors.As to handle wrapped errors.
func HasCode(err error, code ErrorCode) bool {
	var fe *FilterError
	if errors.As(err, &fe) {
		return fe.Code == code
	}
	return false
}

// CodeOf returns the error code of err, or "" if err is not a FilterError.
func CodeOf(err error) ErrorCode {
	var fe *FilterError
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}
