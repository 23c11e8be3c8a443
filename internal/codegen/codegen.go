// Package codegen emits Go definitions from a compiled register map:
// one field.Spec var per field and one register.MustNewLayout var per
// register, ready to drop into a device package.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/regbits/internal/field"
	"github.com/roach88/regbits/internal/regmap"
	"github.com/roach88/regbits/internal/register"
)

var modeExpr = map[register.AccessMode]string{
	register.ReadOnly:  "register.ReadOnly",
	register.ReadWrite: "register.ReadWrite",
	register.WriteOnly: "register.WriteOnly",
}

// Generate compiles the document and renders Go source declaring its
// layouts in the given package. The output is gofmt-formatted.
func Generate(doc *regmap.Document, pkg string) ([]byte, error) {
	layouts, err := regmap.Compile(doc)
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "// Code generated by regbits gen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	fmt.Fprintf(&b, "import (\n")
	fmt.Fprintf(&b, "\t\"github.com/roach88/regbits/internal/field\"\n")
	fmt.Fprintf(&b, "\t\"github.com/roach88/regbits/internal/register\"\n")
	fmt.Fprintf(&b, ")\n")

	for _, l := range layouts {
		regIdent := goName(l.Name())

		fmt.Fprintf(&b, "\n// %s register fields.\n", l.Name())
		var fieldIdents []string
		for _, spec := range l.Fields() {
			ident := regIdent + goName(spec.Name)
			fieldIdents = append(fieldIdents, ident)
			fmt.Fprintf(&b, "var %s = %s\n", ident, specExpr(spec))
		}

		fmt.Fprintf(&b, "\n// %s is the %s register layout (%d-bit, %s).\n",
			regIdent, l.Name(), l.Width(), l.Mode())
		fmt.Fprintf(&b, "var %s = register.MustNewLayout(%q, %d, %s,\n",
			regIdent, l.Name(), l.Width(), modeExpr[l.Mode()])
		for _, ident := range fieldIdents {
			fmt.Fprintf(&b, "\t%s,\n", ident)
		}
		fmt.Fprintf(&b, ")\n")
	}

	src, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return src, nil
}

// specExpr renders a field.Spec literal with deterministic value order.
func specExpr(s field.Spec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "field.Spec{Name: %q, Width: %d, Offset: %d", s.Name, s.Width, s.Offset)
	if len(s.Values) > 0 {
		names := make([]string, 0, len(s.Values))
		for name := range s.Values {
			names = append(names, name)
		}
		sort.Strings(names)

		b.WriteString(", Values: map[string]uint64{")
		for i, name := range names {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%q: %d", name, s.Values[name])
		}
		b.WriteString("}")
	}
	b.WriteString("}")
	return b.String()
}

// goName converts a declared name like RX_COUNT to an exported Go
// identifier like RxCount.
func goName(name string) string {
	title := cases.Title(language.Und)
	parts := strings.Split(name, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(title.String(strings.ToLower(p)))
	}
	return b.String()
}
