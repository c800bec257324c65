package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/babel/internal/ir"
)

// NewPartOfSpeechCommand creates the pos command group.
func NewPartOfSpeechCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pos",
		Short: "Add, remove and list parts of speech",
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "add <name> <abbr>",
		Short:         "Add a part of speech",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			pos := ir.PartOfSpeech{Name: args[0], Abbr: args[1]}
			if pos.Name == "" || pos.Abbr == "" {
				return s.out.Fail(ErrCodeBadArgument, "invalid part of speech", fmt.Errorf("name and abbreviation are required"))
			}
			if _, taken := s.project.PartOfSpeechByAbbr(pos.Abbr); taken {
				return s.out.Fail(ErrCodeBadArgument, "invalid part of speech", fmt.Errorf("abbreviation %q already exists", pos.Abbr))
			}
			idx := s.project.PartsOfSpeech.Append(pos)
			return s.commit(fmt.Sprintf("Added part of speech %d: %s (%s)", idx, pos.Name, pos.Abbr), Indexed[ir.PartOfSpeech]{Index: idx, Value: pos})
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "rm <pos>",
		Short:         "Remove a part of speech, keeping its slot",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			idx, err := s.partOfSpeech(args[0])
			if err != nil {
				return err
			}
			if err := s.project.PartsOfSpeech.Remove(idx); err != nil {
				return s.fail("failed to remove part of speech", err)
			}
			return s.commit(fmt.Sprintf("Removed part of speech %d", idx), Indexed[string]{Index: idx, Value: args[0]})
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "ls",
		Short:         "List parts of speech",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			items := []Indexed[ir.PartOfSpeech]{}
			var rows []table.Row
			for i, pos := range s.project.PartsOfSpeech.All() {
				items = append(items, Indexed[ir.PartOfSpeech]{Index: i, Value: *pos})
				rows = append(rows, table.Row{i, pos.Name, pos.Abbr})
			}
			return s.out.Table(table.Row{"#", "Name", "Abbr"}, rows, items)
		}),
	})

	return cmd
}
