package regmap

import (
	_ "embed"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaCUE string

var (
	schemaOnce sync.Once
	schemaVal  cue.Value
)

// schema compiles the embedded CUE schema once.
// Uses CUE SDK's Go API directly (not CLI subprocess).
func schema() cue.Value {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		schemaVal = ctx.CompileString(schemaCUE, cue.Filename("schema.cue")).
			LookupPath(cue.ParsePath("#Document"))
	})
	return schemaVal
}

// validateSchema unifies the decoded document with the embedded schema
// and reports the first violation.
func validateSchema(doc *Document) error {
	s := schema()
	if err := s.Err(); err != nil {
		return &MapError{Code: ErrCodeSchema, Message: formatCUEError(err)}
	}

	val := s.Context().Encode(doc)
	if err := val.Err(); err != nil {
		return &MapError{Code: ErrCodeSchema, Message: formatCUEError(err)}
	}

	unified := s.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &MapError{Code: ErrCodeSchema, Message: formatCUEError(err)}
	}
	return nil
}

// formatCUEError flattens a CUE error list into its first message.
func formatCUEError(err error) string {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err.Error()
	}
	return errs[0].Error()
}
