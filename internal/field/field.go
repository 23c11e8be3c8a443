// Package field models named bit-ranges within a register word.
//
// A Spec is the declaration of a field: its name, bit-width, bit-offset,
// and optionally a table of symbolic values (enum-like fields). A Field
// is a Spec paired with a concrete logical value, bounded by
// construction to [0, WidthMax(width)].
package field

import (
	"fmt"
	"sort"

	"github.com/roach88/regbits/internal/bits"
	"github.com/roach88/regbits/internal/bound"
)

// Spec declares a field's shape inside a register word.
//
// Values is optional. When non-empty the field is enum-like: only the
// listed values are meaningful, and register reads of other raw values
// report an unmapped result.
type Spec struct {
	// Name identifies the field within its register.
	Name string

	// Width is the field's size in bits. Must be at least 1.
	Width uint

	// Offset is the field's position from bit 0 of the word.
	Offset uint

	// Values maps symbolic names to logical values, e.g. {"BLUE": 2}.
	Values map[string]uint64
}

// Mask returns the field's positioned mask: WidthMax(width) << offset.
func (s Spec) Mask() uint64 {
	return bits.Mask(s.Width, s.Offset)
}

// Max returns the largest logical value the field can hold.
func (s Spec) Max() uint64 {
	return bits.WidthMax(s.Width)
}

// Enumerated reports whether the field declares symbolic values.
func (s Spec) Enumerated() bool {
	return len(s.Values) > 0
}

// Decode looks up the symbolic name for a logical value.
// The second return is false when no declared symbol carries the value.
func (s Spec) Decode(v uint64) (string, bool) {
	// Deterministic pick when two symbols alias the same value.
	names := make([]string, 0, len(s.Values))
	for name, val := range s.Values {
		if val == v {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", false
	}
	sort.Strings(names)
	return names[0], true
}

// Make constructs a Field holding the given logical value.
// Fails with *bound.RangeError if the value exceeds WidthMax(width).
func (s Spec) Make(v uint64) (Field, error) {
	bv, err := bound.Make(0, s.Max(), v)
	if err != nil {
		return Field{}, fmt.Errorf("field %s: %w", s.Name, err)
	}
	return Field{spec: s, val: bv}, nil
}

// MustMake is Make for values known in-range where they are written.
func (s Spec) MustMake(v uint64) Field {
	f, err := s.Make(v)
	if err != nil {
		panic(err)
	}
	return f
}

// Set returns the field with every bit set: the "turn this field on"
// constant, most useful for 1-bit flags.
func (s Spec) Set() Field {
	return s.MustMake(s.Max())
}

// Clear returns the field holding zero: the "clear this field" constant.
func (s Spec) Clear() Field {
	return s.MustMake(0)
}

// Value returns the Field for a declared symbolic value.
func (s Spec) Value(name string) (Field, error) {
	v, ok := s.Values[name]
	if !ok {
		return Field{}, fmt.Errorf("field %s: no symbolic value %q", s.Name, name)
	}
	return s.Make(v)
}

// Field is a field declaration paired with an in-range logical value.
// The zero Field is a zero-width field holding zero; it positions to
// nothing and masks nothing.
type Field struct {
	spec Spec
	val  bound.Value
}

// Spec returns the field's declaration.
func (f Field) Spec() Spec { return f.spec }

// Value returns the field's logical (unshifted) value.
func (f Field) Value() uint64 { return f.val.Get() }

// Mask returns the field's positioned mask within the word.
func (f Field) Mask() uint64 { return f.spec.Mask() }

// InPosition returns the logical value shifted to the field's offset.
func (f Field) InPosition() uint64 {
	return bits.ShiftLeft(f.val.Get(), f.spec.Offset)
}

// With returns a Field of the same shape holding a new value.
func (f Field) With(v uint64) (Field, error) {
	return f.spec.Make(v)
}

func (f Field) String() string {
	return fmt.Sprintf("%s=%d", f.spec.Name, f.val.Get())
}
