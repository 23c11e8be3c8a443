package register

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/regbits/internal/field"
)

func statusFields() []field.Spec {
	return []field.Spec{
		{Name: "ON", Width: 1, Offset: 0},
		{Name: "DEAD", Width: 1, Offset: 1},
		{Name: "COLOR", Width: 3, Offset: 2, Values: map[string]uint64{
			"RED": 1, "BLUE": 2, "GREEN": 3, "YELLOW": 4,
		}},
	}
}

func TestNewLayout_Valid(t *testing.T) {
	l, err := NewLayout("STATUS", 8, ReadWrite, statusFields()...)
	require.NoError(t, err)

	assert.Equal(t, "STATUS", l.Name())
	assert.Equal(t, uint(8), l.Width())
	assert.Equal(t, ReadWrite, l.Mode())
	assert.Len(t, l.Fields(), 3)

	color, ok := l.Field("COLOR")
	require.True(t, ok)
	assert.Equal(t, uint64(0b11100), color.Mask())

	_, ok = l.Field("NOPE")
	assert.False(t, ok)
}

func TestNewLayout_BadWordWidth(t *testing.T) {
	for _, w := range []uint{0, 1, 7, 12, 65, 128} {
		_, err := NewLayout("R", w, ReadWrite)
		require.Error(t, err, "width %d", w)

		var le *LayoutError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, ErrCodeBadWidth, le.Code)
	}
}

func TestNewLayout_AllWordWidths(t *testing.T) {
	for _, w := range WordWidths {
		_, err := NewLayout("R", w, ReadWrite, field.Spec{Name: "F", Width: 1, Offset: 0})
		assert.NoError(t, err, "width %d", w)
	}
}

func TestNewLayout_BadMode(t *testing.T) {
	_, err := NewLayout("R", 8, AccessMode("rx"))
	require.Error(t, err)

	var le *LayoutError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeBadMode, le.Code)
}

func TestNewLayout_FieldPastWordEnd(t *testing.T) {
	// offset+width exceeds the word.
	_, err := NewLayout("R", 8, ReadWrite, field.Spec{Name: "F", Width: 4, Offset: 5})
	require.Error(t, err)

	var le *LayoutError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeBadField, le.Code)
	assert.Equal(t, "F", le.Field)
}

func TestNewLayout_ZeroWidthField(t *testing.T) {
	_, err := NewLayout("R", 8, ReadWrite, field.Spec{Name: "F", Width: 0, Offset: 0})
	require.Error(t, err)
	assert.True(t, IsLayout(err))
}

func TestNewLayout_CapacityExactFit(t *testing.T) {
	// Widths summing to exactly the word width must construct.
	l, err := NewLayout("R", 8, ReadWrite,
		field.Spec{Name: "LO", Width: 4, Offset: 0},
		field.Spec{Name: "HI", Width: 4, Offset: 4},
	)
	require.NoError(t, err)
	assert.Len(t, l.Fields(), 2)
}

func TestNewLayout_CapacityExceeded(t *testing.T) {
	// Widths summing past the word width must not construct, even when
	// each field individually stays inside the word.
	_, err := NewLayout("R", 8, ReadWrite,
		field.Spec{Name: "A", Width: 4, Offset: 0},
		field.Spec{Name: "B", Width: 4, Offset: 4},
		field.Spec{Name: "C", Width: 1, Offset: 3},
	)
	require.Error(t, err)

	var le *LayoutError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeOverCapacity, le.Code)
	assert.Equal(t, "C", le.Field)
}

func TestNewLayout_OverlapRejected(t *testing.T) {
	// Two fields on the same bits fit the capacity bound but not the
	// disjointness check.
	_, err := NewLayout("R", 8, ReadWrite,
		field.Spec{Name: "A", Width: 2, Offset: 0},
		field.Spec{Name: "B", Width: 2, Offset: 1},
	)
	require.Error(t, err)

	var le *LayoutError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeOverlap, le.Code)
	assert.Equal(t, "B", le.Field)
}

func TestNewLayout_DuplicateName(t *testing.T) {
	_, err := NewLayout("R", 8, ReadWrite,
		field.Spec{Name: "F", Width: 1, Offset: 0},
		field.Spec{Name: "F", Width: 1, Offset: 1},
	)
	require.Error(t, err)
}

func TestNewLayout_SymbolicValueOverRange(t *testing.T) {
	_, err := NewLayout("R", 8, ReadWrite,
		field.Spec{Name: "F", Width: 2, Offset: 0, Values: map[string]uint64{"BIG": 4}},
	)
	require.Error(t, err)

	var le *LayoutError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeBadField, le.Code)
}

func TestMustNewLayout_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNewLayout("R", 9, ReadWrite)
	})
	assert.NotPanics(t, func() {
		MustNewLayout("STATUS", 8, ReadWrite, statusFields()...)
	})
}

func TestMustField(t *testing.T) {
	l := MustNewLayout("STATUS", 8, ReadWrite, statusFields()...)
	assert.Equal(t, uint(3), l.MustField("COLOR").Width)
	assert.Panics(t, func() { l.MustField("NOPE") })
}

func TestLayoutError_Message(t *testing.T) {
	e := &LayoutError{Code: ErrCodeOverCapacity, Register: "R", Field: "C", Message: "too wide"}
	assert.Equal(t, "OVER_CAPACITY: register R field C: too wide", e.Error())

	e2 := &LayoutError{Code: ErrCodeBadWidth, Register: "R", Message: "nope"}
	assert.Equal(t, "BAD_WIDTH: register R: nope", e2.Error())
}
