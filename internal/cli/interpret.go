package cli

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/babel/internal/orth"
)

// InterpretOptions holds flags for the int command.
type InterpretOptions struct {
	*RootOptions
	List bool
}

// NewInterpretCommand creates the int command.
func NewInterpretCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InterpretOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "int [text...]",
		Short: "Render diacritic commands and combinations into glyphs",
		Long: `Render an ASCII spelling into display glyphs.

Backslash commands put a diacritic on the following letter and braces name
ligatures and special letters:

  babel int '\~nandu'      ñandu
  babel int 'c{ae}sar'     cæsar
  babel int --list         show every command and combination`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(rootOpts, cmd)
			if opts.List {
				entries := orth.Table()
				rows := make([]table.Row, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, table.Row{e.Kind, e.Sequence, e.Glyph})
				}
				return out.Table(table.Row{"Kind", "Sequence", "Glyph"}, rows, entries)
			}
			if len(args) == 0 {
				return NewExitError(ExitCommandError, "nothing to interpret (pass text or --list)")
			}
			rendered := orth.Interpret(strings.Join(args, " "))
			if out.Format == "json" {
				return out.Success(map[string]string{"text": rendered})
			}
			return out.Success(rendered)
		},
	}

	cmd.Flags().BoolVar(&opts.List, "list", false, "list every command and combination")

	return cmd
}
