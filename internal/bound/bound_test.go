package bound

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake_WithinRange(t *testing.T) {
	v, err := Make(0, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v.Get())
	assert.Equal(t, uint64(0), v.Lower())
	assert.Equal(t, uint64(2), v.Upper())
}

func TestMake_BoundsAreInclusive(t *testing.T) {
	lo, err := Make(3, 9, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), lo.Get())

	hi, err := Make(3, 9, 9)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), hi.Get())
}

func TestMake_Contravenes(t *testing.T) {
	testCases := []struct {
		name             string
		lower, upper, val uint64
	}{
		{"above upper", 0, 2, 5},
		{"below lower", 3, 9, 2},
		{"zero range rejects nonzero", 0, 0, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Make(tc.lower, tc.upper, tc.val)
			require.Error(t, err)

			var re *RangeError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tc.val, re.Value)
			assert.Equal(t, tc.lower, re.Lower)
			assert.Equal(t, tc.upper, re.Upper)
		})
	}
}

func TestMake_InvertedBounds(t *testing.T) {
	_, err := Make(5, 2, 3)
	require.Error(t, err)
	assert.True(t, IsRange(err))
}

func TestMustMake_PanicsOutOfRange(t *testing.T) {
	assert.NotPanics(t, func() { MustMake(0, 7, 7) })
	assert.Panics(t, func() { MustMake(0, 7, 8) })
}

func TestRangeError_Message(t *testing.T) {
	_, err := Make(0, 7, 9)
	require.Error(t, err)
	assert.Equal(t, "value 9 outside range [0, 7]", err.Error())
}

func TestIsRange_WrappedError(t *testing.T) {
	_, err := Make(0, 1, 2)
	require.Error(t, err)

	wrapped := fmt.Errorf("declaring field: %w", err)
	assert.True(t, IsRange(wrapped))
	assert.False(t, IsRange(fmt.Errorf("unrelated")))
	assert.False(t, IsRange(nil))
}
