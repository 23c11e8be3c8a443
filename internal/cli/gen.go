package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/regbits/internal/codegen"
	"github.com/roach88/regbits/internal/regmap"
)

// GenOptions holds flags for the gen command.
type GenOptions struct {
	Package string
	Out     string
}

// NewGenCommand creates the gen command.
func NewGenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenOptions{}

	cmd := &cobra.Command{
		Use:   "gen <map.yaml>",
		Short: "Generate Go register definitions",
		Long: `Generate Go source declaring the layouts and field specs of a
register map. Output goes to stdout unless -o is given.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Package, "package", "p", "registers", "package name for generated source")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output file (default stdout)")

	return cmd
}

func runGen(rootOpts *RootOptions, opts *GenOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	doc, err := regmap.Load(path)
	if err != nil {
		return validateFailure(formatter, err)
	}

	src, err := codegen.Generate(doc, opts.Package)
	if err != nil {
		return validateFailure(formatter, err)
	}

	if opts.Out == "" {
		_, err = cmd.OutOrStdout().Write(src)
		return err
	}

	if err := os.WriteFile(opts.Out, src, 0o644); err != nil {
		return formatter.Failure(ExitCommandError, "WRITE", err.Error())
	}
	formatter.VerboseLog("Wrote %d bytes to %s", len(src), opts.Out)
	return nil
}
