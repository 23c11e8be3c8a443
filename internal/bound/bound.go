// Package bound implements range-constrained values: a number paired
// with the guarantee that it lies within a fixed inclusive range.
//
// A Value is unconstructible outside its range and immutable once
// built, so holding one is holding proof that lower <= val <= upper.
package bound

import (
	"errors"
	"fmt"
)

// Value is a natural number known to satisfy lower <= val <= upper.
// The zero Value is the trivially-bounded zero in [0, 0].
type Value struct {
	lower uint64
	upper uint64
	val   uint64
}

// Make constructs a Value, failing with *RangeError unless
// lower <= val <= upper. Construction is the only mutation point; the
// returned Value never changes.
func Make(lower, upper, val uint64) (Value, error) {
	if upper < lower {
		return Value{}, &RangeError{Value: val, Lower: lower, Upper: upper, inverted: true}
	}
	if val < lower || val > upper {
		return Value{}, &RangeError{Value: val, Lower: lower, Upper: upper}
	}
	return Value{lower: lower, upper: upper, val: val}, nil
}

// MustMake is Make for literals whose bounds are known where they are
// written. It panics on a range violation, mirroring a rejected
// out-of-range literal rather than a runtime condition.
func MustMake(lower, upper, val uint64) Value {
	v, err := Make(lower, upper, val)
	if err != nil {
		panic(err)
	}
	return v
}

// Get returns the underlying number.
func (v Value) Get() uint64 { return v.val }

// Lower returns the inclusive lower bound.
func (v Value) Lower() uint64 { return v.lower }

// Upper returns the inclusive upper bound.
func (v Value) Upper() uint64 { return v.upper }

// RangeError reports a value that falls outside its declared bounds.
type RangeError struct {
	// Value is the offending value.
	Value uint64

	// Lower and Upper are the inclusive bounds the value violated.
	Lower uint64
	Upper uint64

	// inverted marks a degenerate range where upper < lower.
	inverted bool
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	if e.inverted {
		return fmt.Sprintf("invalid bounds: upper %d < lower %d", e.Upper, e.Lower)
	}
	return fmt.Sprintf("value %d outside range [%d, %d]", e.Value, e.Lower, e.Upper)
}

// IsRange returns true if the error is a range violation.
// Uses errors.As to handle wrapped errors.
func IsRange(err error) bool {
	var re *RangeError
	return errors.As(err, &re)
}
