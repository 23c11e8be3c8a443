package register

import (
	"fmt"

	"github.com/roach88/regbits/internal/field"
)

// AccessMode declares which operations a register's binding exposes.
type AccessMode string

const (
	// ReadOnly registers expose only the query operations.
	ReadOnly AccessMode = "ro"

	// ReadWrite registers expose everything.
	ReadWrite AccessMode = "rw"

	// WriteOnly registers expose only Write and Modify.
	WriteOnly AccessMode = "wo"
)

// Modes lists the valid access modes.
var Modes = []AccessMode{ReadOnly, ReadWrite, WriteOnly}

func (m AccessMode) validate() error {
	switch m {
	case ReadOnly, ReadWrite, WriteOnly:
		return nil
	}
	return fmt.Errorf("access mode %q: must be one of %v", string(m), Modes)
}

// String returns the mode's wire form.
func (m AccessMode) String() string { return string(m) }

// The wrappers below are the capability restriction of a register's
// declared access mode. The underlying operations are mode-agnostic;
// a binding hands out the wrapper matching the declaration and the
// type system does the enforcement.

// RORegister exposes only the query side of a register.
type RORegister struct {
	r *Register
}

// AsReadOnly restricts a register to its query operations.
func AsReadOnly(r *Register) RORegister { return RORegister{r: r} }

// Read returns the raw word.
func (ro RORegister) Read() uint64 { return ro.r.Read() }

// GetField extracts a field's logical value.
func (ro RORegister) GetField(spec field.Spec) (uint64, bool) { return ro.r.GetField(spec) }

// IsSet reports whether every bit of the field is set.
func (ro RORegister) IsSet(spec field.Spec) bool { return ro.r.IsSet(spec) }

// Extract returns a read-only snapshot of the current word.
func (ro RORegister) Extract() Snapshot { return ro.r.Extract() }

// MatchesAny reports a non-zero masked intersection with p.
func (ro RORegister) MatchesAny(p field.Positioned) bool { return ro.r.MatchesAny(p) }

// MatchesAll reports masked equality with p.
func (ro RORegister) MatchesAll(p field.Positioned) bool { return ro.r.MatchesAll(p) }

// WORegister exposes only the mutating side of a register.
type WORegister struct {
	r *Register
}

// AsWriteOnly restricts a register to its mutating operations.
func AsWriteOnly(r *Register) WORegister { return WORegister{r: r} }

// Write unconditionally replaces the word. See Register.Write for the
// trust-boundary contract.
func (wo WORegister) Write(raw uint64) { wo.r.Write(raw) }

// Modify folds the positioned value into the word.
func (wo WORegister) Modify(p field.Positioned) { wo.r.Modify(p) }
