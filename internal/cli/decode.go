package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/regbits/internal/register"
	"github.com/roach88/regbits/internal/regmap"
)

// DecodedField is one field of a decoded word.
type DecodedField struct {
	Name   string `json:"name"`
	Value  uint64 `json:"value"`
	Symbol string `json:"symbol,omitempty"`
	Mapped bool   `json:"mapped"`
}

// DecodeData is the JSON payload for a decoded register value.
type DecodeData struct {
	Register string         `json:"register"`
	Word     uint64         `json:"word"`
	Fields   []DecodedField `json:"fields"`
}

// NewDecodeCommand creates the decode command.
func NewDecodeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <map.yaml> <register> <value>",
		Short: "Break a raw register value into fields",
		Long: `Decode a raw word against a declared register: extract every field's
logical value, resolving symbolic names where the field declares them.

The value accepts decimal, 0x hex, 0o octal, and 0b binary forms.`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(rootOpts, args[0], args[1], args[2], cmd)
		},
	}

	return cmd
}

func runDecode(opts *RootOptions, path, regName, rawArg string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	raw, err := strconv.ParseUint(rawArg, 0, 64)
	if err != nil {
		return formatter.Failure(ExitCommandError, "BAD_VALUE", fmt.Sprintf("value %q: %v", rawArg, err))
	}

	doc, err := regmap.Load(path)
	if err != nil {
		return validateFailure(formatter, err)
	}
	layouts, err := regmap.Compile(doc)
	if err != nil {
		return validateFailure(formatter, err)
	}

	var layout *register.Layout
	for _, l := range layouts {
		if l.Name() == regName {
			layout = l
			break
		}
	}
	if layout == nil {
		return formatter.Failure(ExitCommandError, "NO_REGISTER", fmt.Sprintf("register %q not declared in %s", regName, path))
	}

	snap := register.New(layout, raw).Extract()
	data := DecodeData{Register: layout.Name(), Word: snap.Word()}
	for _, spec := range layout.Fields() {
		v, mapped := snap.GetField(spec)
		df := DecodedField{Name: spec.Name, Value: v, Mapped: mapped}
		if sym, ok := spec.Decode(v); ok {
			df.Symbol = sym
		}
		data.Fields = append(data.Fields, df)
	}

	if formatter.Format == "json" {
		return formatter.JSON(CLIResponse{Status: "ok", Data: data})
	}

	formatter.Text("%s = %#x (%d-bit, %s)", data.Register, data.Word, layout.Width(), layout.Mode())
	for _, df := range data.Fields {
		switch {
		case df.Symbol != "":
			formatter.Text("  %-12s %d (%s)", df.Name, df.Value, df.Symbol)
		case !df.Mapped:
			formatter.Text("  %-12s %d (unmapped)", df.Name, df.Value)
		default:
			formatter.Text("  %-12s %d", df.Name, df.Value)
		}
	}
	return nil
}
