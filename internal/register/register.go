package register

import (
	"github.com/roach88/regbits/internal/bits"
	"github.com/roach88/regbits/internal/field"
)

// Storage is the caller-supplied back-end holding a register's raw
// word. A memory-mapped implementation decides volatility and atomicity
// semantics; the core treats Load and Store as plain value transfers.
//
// A Register performs no locking. It models exclusive ownership of one
// location: if several goroutines or interrupt contexts can reach the
// same underlying address, serialization is the caller's business, and
// a Modify computed from a stale Load can race with another writer.
type Storage interface {
	Load() uint64
	Store(uint64)
}

// Word is the default in-memory Storage: a plain uint64 cell.
type Word struct {
	v uint64
}

// NewWord returns an in-memory word holding v.
func NewWord(v uint64) *Word { return &Word{v: v} }

// Load returns the current word value.
func (w *Word) Load() uint64 { return w.v }

// Store replaces the word value.
func (w *Word) Store(v uint64) { w.v = v }

// Register binds a Layout to the Storage holding its raw word.
// The word is the only mutable state; every operation below is
// mask-and-shift arithmetic over it.
type Register struct {
	layout *Layout
	mem    Storage
}

// New returns a Register over a fresh in-memory word holding initial.
// The initial value is reduced into the declared word width.
func New(layout *Layout, initial uint64) *Register {
	return Bind(layout, NewWord(initial&layout.wordMask()))
}

// Bind returns a Register over caller-owned storage, typically the
// memory-mapped location the layout describes.
func Bind(layout *Layout, mem Storage) *Register {
	return &Register{layout: layout, mem: mem}
}

// Layout returns the register's declaration.
func (r *Register) Layout() *Layout { return r.layout }

// Read returns the raw word. Bits beyond the declared width are
// discarded, so the result is always below 1<<width even when the
// back-end hands back a wider value.
func (r *Register) Read() uint64 {
	return bits.And(r.mem.Load(), r.layout.wordMask())
}

// Write unconditionally replaces the entire word with raw, reduced into
// the declared width.
//
// This is the trust boundary: no field bound-checking happens here.
// Callers either assemble raw exclusively through Modify and field
// composition, or they own the consequences.
func (r *Register) Write(raw uint64) {
	r.mem.Store(bits.And(raw, r.layout.wordMask()))
}

// Modify folds the positioned value into the word:
//
//	word = word &^ p.Mask() | p.InPosition()
//
// Bits outside the touched field(s) are preserved. This and Write are
// the only mutating operations.
func (r *Register) Modify(p field.Positioned) {
	word := r.Read()
	r.mem.Store(word&^p.Mask() | p.InPosition())
}

// GetField extracts a field's logical value from the current word:
//
//	(word & spec.Mask()) >> spec.Offset
//
// Masking strips every bit outside the field before the shift, so the
// result is always <= WidthMax(spec.Width) no matter what the raw word
// holds (the read-bound theorem; see the property tests).
//
// For enum-like fields the second return is false when the extracted
// value matches no declared symbol. Plain numeric fields always report
// true: every in-range value is meaningful.
func (r *Register) GetField(spec field.Spec) (uint64, bool) {
	return r.Extract().GetField(spec)
}

// IsSet reports whether every bit of the field is set in the word.
func (r *Register) IsSet(spec field.Spec) bool {
	return r.Extract().IsSet(spec)
}

// MatchesAny reports whether the masked word has a non-zero
// intersection with the positioned value(s).
func (r *Register) MatchesAny(p field.Positioned) bool {
	return r.Extract().MatchesAny(p)
}

// MatchesAll reports whether the masked word equals the positioned
// value(s) exactly, for every combined field.
func (r *Register) MatchesAll(p field.Positioned) bool {
	return r.Extract().MatchesAll(p)
}

// Extract returns a read-only snapshot of the current word. The
// snapshot supports every pure query without granting write access, and
// is unaffected by later writes to the register.
func (r *Register) Extract() Snapshot {
	return Snapshot{layout: r.layout, word: r.Read()}
}

// Snapshot is a captured register word plus its layout. All methods are
// pure queries over the captured value.
type Snapshot struct {
	layout *Layout
	word   uint64
}

// Word returns the captured raw value.
func (s Snapshot) Word() uint64 { return s.word }

// Layout returns the declaration the snapshot was taken under.
func (s Snapshot) Layout() *Layout { return s.layout }

// GetField extracts a field's logical value from the snapshot.
// See Register.GetField for the enum-mapping contract.
func (s Snapshot) GetField(spec field.Spec) (uint64, bool) {
	v := bits.ShiftRight(bits.And(s.word, spec.Mask()), spec.Offset)
	if spec.Enumerated() {
		if _, ok := spec.Decode(v); !ok {
			return v, false
		}
	}
	return v, true
}

// IsSet reports whether every bit of the field is set in the snapshot.
func (s Snapshot) IsSet(spec field.Spec) bool {
	v := bits.ShiftRight(bits.And(s.word, spec.Mask()), spec.Offset)
	return v == spec.Max()
}

// MatchesAny reports whether the masked snapshot intersects the
// positioned value(s).
func (s Snapshot) MatchesAny(p field.Positioned) bool {
	return bits.And(bits.And(s.word, p.Mask()), p.InPosition()) != 0
}

// MatchesAll reports whether the masked snapshot equals the positioned
// value(s) exactly.
func (s Snapshot) MatchesAll(p field.Positioned) bool {
	return bits.And(s.word, p.Mask()) == p.InPosition()
}
