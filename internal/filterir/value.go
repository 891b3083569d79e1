package filterir

import "strconv"

// Value is the constant operand of a comparison.
//
// This is a sealed interface - only StringValue and IntValue implement it.
// The constant side of a filter leaf is exactly one of the two; there are
// no floats, booleans, or nulls in filter constants.
type Value interface {
	filterValue() // Marker method - seals interface to this package

	// EncodedString returns the value as it is written into an encoded
	// partition name. For strings this is the string itself; for integers
	// the base-10 rendering. The partition-name encoding is the source of
	// truth for this formatting.
	EncodedString() string
}

// StringValue is a string constant.
type StringValue string

func (StringValue) filterValue() {}

// EncodedString implements Value.
func (v StringValue) EncodedString() string { return string(v) }

// IntValue is a 64-bit integer constant.
type IntValue int64

func (IntValue) filterValue() {}

// EncodedString implements Value.
func (v IntValue) EncodedString() string {
	return strconv.FormatInt(int64(v), 10)
}
