// Package register composes fields over a fixed-width word and provides
// the bound-checked access operations: read, modify, field extraction,
// presence and match tests.
//
// A Layout is the declaration side: word width, access mode, and an
// ordered set of fields proven at construction time to fit the word.
// A Register binds a Layout to a Storage holding the raw word, the one
// piece of mutable state in the whole library.
package register

import (
	"errors"
	"fmt"

	"github.com/roach88/regbits/internal/bits"
	"github.com/roach88/regbits/internal/field"
)

// WordWidths lists the register word widths the library supports.
var WordWidths = []uint{8, 16, 32, 64}

// Layout declares a register: its name, word width, access mode, and
// ordered fields. A Layout that exists has passed every declaration
// check; access operations rely on that and re-derive each field's
// mask and offset on demand.
type Layout struct {
	name   string
	width  uint
	mode   AccessMode
	fields []field.Spec
	byName map[string]int
}

// NewLayout validates a register declaration and builds its Layout.
//
// Declaration checks, in order per field:
//   - the field must be at least one bit wide
//   - offset+width must stay inside the word (containment)
//   - the cumulative declared width must not exceed the word width;
//     remaining capacity shrinks by each field's width and is tracked
//     with clamped subtraction
//   - the field's mask must be disjoint from every field before it
//
// Containment plus cumulative capacity alone would still admit two
// fields on the same bits, so the mask-disjointness check closes that
// hole at declaration time.
func NewLayout(name string, width uint, mode AccessMode, fields ...field.Spec) (*Layout, error) {
	if !validWordWidth(width) {
		return nil, &LayoutError{
			Code:     ErrCodeBadWidth,
			Register: name,
			Message:  fmt.Sprintf("word width %d: must be one of %v", width, WordWidths),
		}
	}
	if err := mode.validate(); err != nil {
		return nil, &LayoutError{Code: ErrCodeBadMode, Register: name, Message: err.Error()}
	}

	l := &Layout{
		name:   name,
		width:  width,
		mode:   mode,
		byName: make(map[string]int, len(fields)),
	}

	remaining := uint64(width)
	var claimed uint64
	for _, f := range fields {
		if f.Width == 0 {
			return nil, &LayoutError{
				Code:     ErrCodeBadField,
				Register: name,
				Field:    f.Name,
				Message:  "field width must be at least 1",
			}
		}
		if f.Offset+f.Width > width {
			return nil, &LayoutError{
				Code:     ErrCodeBadField,
				Register: name,
				Field:    f.Name,
				Message:  fmt.Sprintf("bits [%d, %d) exceed %d-bit word", f.Offset, f.Offset+f.Width, width),
			}
		}
		if uint64(f.Width) > remaining {
			return nil, &LayoutError{
				Code:     ErrCodeOverCapacity,
				Register: name,
				Field:    f.Name,
				Message:  fmt.Sprintf("width %d exceeds remaining capacity %d of %d-bit word", f.Width, remaining, width),
			}
		}
		remaining = bits.SatSub(remaining, uint64(f.Width))

		if overlap := claimed & f.Mask(); overlap != 0 {
			return nil, &LayoutError{
				Code:     ErrCodeOverlap,
				Register: name,
				Field:    f.Name,
				Message:  (&field.OverlapError{Mask: claimed, Other: f.Mask(), Overlap: overlap, Name: f.Name}).Error(),
			}
		}
		claimed |= f.Mask()

		if _, dup := l.byName[f.Name]; dup {
			return nil, &LayoutError{
				Code:     ErrCodeBadField,
				Register: name,
				Field:    f.Name,
				Message:  "duplicate field name",
			}
		}
		for sym, v := range f.Values {
			if !bits.Fits(v, f.Width) {
				return nil, &LayoutError{
					Code:     ErrCodeBadField,
					Register: name,
					Field:    f.Name,
					Message:  fmt.Sprintf("symbolic value %s=%d exceeds %d-bit field", sym, v, f.Width),
				}
			}
		}

		l.byName[f.Name] = len(l.fields)
		l.fields = append(l.fields, f)
	}

	return l, nil
}

// MustNewLayout is NewLayout for declarations written in source, where
// a bad declaration is a bug. Generated definitions use it.
func MustNewLayout(name string, width uint, mode AccessMode, fields ...field.Spec) *Layout {
	l, err := NewLayout(name, width, mode, fields...)
	if err != nil {
		panic(err)
	}
	return l
}

// Name returns the register's name.
func (l *Layout) Name() string { return l.name }

// Width returns the word width in bits.
func (l *Layout) Width() uint { return l.width }

// Mode returns the declared access mode.
func (l *Layout) Mode() AccessMode { return l.mode }

// Fields returns the declared fields in declaration order.
func (l *Layout) Fields() []field.Spec {
	out := make([]field.Spec, len(l.fields))
	copy(out, l.fields)
	return out
}

// Field looks up a declared field by name.
func (l *Layout) Field(name string) (field.Spec, bool) {
	i, ok := l.byName[name]
	if !ok {
		return field.Spec{}, false
	}
	return l.fields[i], true
}

// MustField is Field for names known to be declared.
func (l *Layout) MustField(name string) field.Spec {
	f, ok := l.Field(name)
	if !ok {
		panic(fmt.Sprintf("register %s: no field %q", l.name, name))
	}
	return f
}

// wordMask returns the mask covering the whole word.
func (l *Layout) wordMask() uint64 {
	return bits.WidthMax(l.width)
}

func validWordWidth(w uint) bool {
	for _, ww := range WordWidths {
		if w == ww {
			return true
		}
	}
	return false
}

// LayoutError reports an invalid register declaration.
type LayoutError struct {
	// Code identifies the error category.
	Code LayoutErrorCode

	// Register names the declaration being validated.
	Register string

	// Field names the offending field, when one is involved.
	Field string

	// Message is a human-readable description.
	Message string
}

// LayoutErrorCode categorizes declaration errors.
type LayoutErrorCode string

const (
	// ErrCodeBadWidth indicates an unsupported word width.
	ErrCodeBadWidth LayoutErrorCode = "BAD_WIDTH"

	// ErrCodeBadMode indicates an unknown access mode.
	ErrCodeBadMode LayoutErrorCode = "BAD_MODE"

	// ErrCodeBadField indicates a field that does not fit its word or is
	// malformed.
	ErrCodeBadField LayoutErrorCode = "BAD_FIELD"

	// ErrCodeOverCapacity indicates cumulative field width above the
	// word width.
	ErrCodeOverCapacity LayoutErrorCode = "OVER_CAPACITY"

	// ErrCodeOverlap indicates two fields claiming the same bits.
	ErrCodeOverlap LayoutErrorCode = "OVERLAP"
)

// Error implements the error interface.
func (e *LayoutError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: register %s field %s: %s", e.Code, e.Register, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: register %s: %s", e.Code, e.Register, e.Message)
}

// IsLayout returns true if the error is a declaration error.
// Uses errors.As to handle wrapped errors.
func IsLayout(err error) bool {
	var le *LayoutError
	return errors.As(err, &le)
}
