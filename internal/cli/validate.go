package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/roach88/regbits/internal/regmap"
)

// ValidationData is the JSON payload for a successful validation.
type ValidationData struct {
	Registers int `json:"registers"`
	Fields    int `json:"fields"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <map.yaml>",
		Short: "Validate a register map",
		Long: `Validate a register map document.

Checks YAML syntax, the document schema, and every layout invariant:
word width, field containment, cumulative capacity, and bit-range
disjointness.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	doc, err := regmap.Load(path)
	if err != nil {
		return validateFailure(formatter, err)
	}
	formatter.VerboseLog("Parsed %d register declaration(s) from %s", len(doc.Registers), path)

	layouts, err := regmap.Compile(doc)
	if err != nil {
		return validateFailure(formatter, err)
	}

	fields := 0
	for _, l := range layouts {
		fields += len(l.Fields())
	}

	return formatter.Success(
		ValidationData{Registers: len(layouts), Fields: fields},
		"ok: %d register(s), %d field(s)", len(layouts), fields,
	)
}

func validateFailure(formatter *OutputFormatter, err error) error {
	var me *regmap.MapError
	if errors.As(err, &me) {
		exitCode := ExitFailure
		if me.Code == regmap.ErrCodeNotFound {
			exitCode = ExitCommandError
		}
		return formatter.Failure(exitCode, string(me.Code), err.Error())
	}
	return formatter.Failure(ExitFailure, "VALIDATE", err.Error())
}
