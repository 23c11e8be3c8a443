package regmap

import (
	"fmt"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/regbits/internal/field"
	"github.com/roach88/regbits/internal/register"
)

// Compile turns a validated document into register layouts, in
// declaration order. Every layout-level invariant (word width, field
// containment, cumulative capacity, mask disjointness) is enforced by
// register.NewLayout; Compile adds name hygiene and duplicate checks
// across registers.
func Compile(doc *Document) ([]*register.Layout, error) {
	layouts := make([]*register.Layout, 0, len(doc.Registers))
	seen := make(map[string]bool, len(doc.Registers))

	for i, decl := range doc.Registers {
		path := fmt.Sprintf("registers[%d]", i)

		name, err := cleanName(decl.Name)
		if err != nil {
			return nil, &MapError{Code: ErrCodeDecl, Path: path, Message: err.Error()}
		}
		if seen[name] {
			return nil, &MapError{Code: ErrCodeDecl, Path: path, Message: fmt.Sprintf("duplicate register %s", name)}
		}
		seen[name] = true

		specs := make([]field.Spec, 0, len(decl.Fields))
		for j, f := range decl.Fields {
			fname, err := cleanName(f.Name)
			if err != nil {
				return nil, &MapError{
					Code:    ErrCodeDecl,
					Path:    fmt.Sprintf("%s.fields[%d]", path, j),
					Message: err.Error(),
				}
			}
			values := make(map[string]uint64, len(f.Values))
			for sym, v := range f.Values {
				symName, err := cleanName(sym)
				if err != nil {
					return nil, &MapError{
						Code:    ErrCodeDecl,
						Path:    fmt.Sprintf("%s.fields[%d].values", path, j),
						Message: err.Error(),
					}
				}
				values[symName] = v
			}
			if len(values) == 0 {
				values = nil
			}
			specs = append(specs, field.Spec{
				Name:   fname,
				Width:  f.Width,
				Offset: f.Offset,
				Values: values,
			})
		}

		l, err := register.NewLayout(name, decl.Width, register.AccessMode(decl.Access), specs...)
		if err != nil {
			return nil, &MapError{Code: ErrCodeDecl, Path: path, Message: err.Error()}
		}
		layouts = append(layouts, l)
	}

	return layouts, nil
}

// cleanName NFC-normalizes a declared name and checks it is usable as
// an identifier: a letter or underscore followed by letters, digits,
// and underscores.
func cleanName(name string) (string, error) {
	name = norm.NFC.String(name)
	if name == "" {
		return "", fmt.Errorf("empty name")
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return "", fmt.Errorf("name %q: invalid character %q", name, r)
	}
	return name, nil
}
