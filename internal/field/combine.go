package field

import (
	"errors"
	"fmt"
	"strings"
)

// Positioned is anything that can place a value and a mask into a
// register word: a single Field, or several Fields combined into one
// write transaction.
type Positioned interface {
	// Mask returns the union of the bits the value occupies.
	Mask() uint64

	// InPosition returns the value(s) shifted into place.
	InPosition() uint64
}

// Combined is a multi-field write transaction: the accumulated
// (mask1|mask2, pos1|pos2) of two or more disjoint fields.
type Combined struct {
	mask  uint64
	value uint64
	names []string
}

// Mask returns the union of the combined fields' masks.
func (c Combined) Mask() uint64 { return c.mask }

// InPosition returns the union of the combined positioned values.
func (c Combined) InPosition() uint64 { return c.value }

func (c Combined) String() string {
	return fmt.Sprintf("combined(%s)", strings.Join(c.names, "+"))
}

// Combine folds fields into a single write transaction. It is
// associative: Combine(a, Combine(b, c)) places the same bits as
// Combine(a, b, c).
//
// The fields' masks must be pairwise disjoint. Overlap means the
// declaration or the call site is wrong, and the single-field bound
// guarantees say nothing about the OR of two values on the same bits,
// so Combine panics with *OverlapError rather than produce a composite
// that silently corrupts a field.
func Combine(ps ...Positioned) Combined {
	var c Combined
	for _, p := range ps {
		if overlap := c.mask & p.Mask(); overlap != 0 {
			panic(&OverlapError{Mask: c.mask, Other: p.Mask(), Overlap: overlap, Name: nameOf(p)})
		}
		c.mask |= p.Mask()
		c.value |= p.InPosition()
		c.names = append(c.names, nameOf(p))
	}
	return c
}

func nameOf(p Positioned) string {
	switch v := p.(type) {
	case Field:
		return v.spec.Name
	case Combined:
		return v.String()
	default:
		return fmt.Sprintf("%T", p)
	}
}

// OverlapError reports two fields whose bit ranges collide.
// It is raised by panic: overlapping masks are a declaration bug, not a
// runtime condition to recover from.
type OverlapError struct {
	// Mask is the accumulated mask the new field collided with.
	Mask uint64

	// Other is the colliding field's mask.
	Other uint64

	// Overlap is the intersection of the two.
	Overlap uint64

	// Name identifies the colliding field when known.
	Name string
}

// Error implements the error interface.
func (e *OverlapError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("field %s mask %#x overlaps %#x on bits %#x", e.Name, e.Other, e.Mask, e.Overlap)
	}
	return fmt.Sprintf("mask %#x overlaps %#x on bits %#x", e.Other, e.Mask, e.Overlap)
}

// IsOverlap returns true if the error is a mask overlap.
// Uses errors.As to handle wrapped errors.
func IsOverlap(err error) bool {
	var oe *OverlapError
	return errors.As(err, &oe)
}
