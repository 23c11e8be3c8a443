// Package testutil provides shared fixtures for register tests: the
// canonical Status register and an instrumented storage cell.
package testutil

import (
	"github.com/roach88/regbits/internal/field"
	"github.com/roach88/regbits/internal/register"
)

// StatusLayout returns the canonical example register:
// an 8-bit word with ON (1 bit), DEAD (1 bit), and the enum-like
// COLOR (3 bits).
func StatusLayout() *register.Layout {
	return register.MustNewLayout("STATUS", 8, register.ReadWrite,
		field.Spec{Name: "ON", Width: 1, Offset: 0},
		field.Spec{Name: "DEAD", Width: 1, Offset: 1},
		field.Spec{Name: "COLOR", Width: 3, Offset: 2, Values: map[string]uint64{
			"RED":    1,
			"BLUE":   2,
			"GREEN":  3,
			"YELLOW": 4,
		}},
	)
}

// StatusYAML is a register map document declaring StatusLayout,
// for tests that exercise the declarative front-end.
const StatusYAML = `registers:
  - name: STATUS
    width: 8
    access: rw
    fields:
      - name: "ON"
        width: 1
        offset: 0
      - name: DEAD
        width: 1
        offset: 1
      - name: COLOR
        width: 3
        offset: 2
        values:
          RED: 1
          BLUE: 2
          GREEN: 3
          YELLOW: 4
`
