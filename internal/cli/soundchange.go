package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/babel/internal/compiler"
	"github.com/roach88/babel/internal/ir"
)

// SoundChangeEntry describes one sound change in listings.
type SoundChangeEntry struct {
	Index    int            `json:"index"`
	Rule     ir.SoundChange `json:"rule"`
	Compiled []string       `json:"compiled,omitempty"`
}

// NewSoundChangeCommand creates the sc command group.
func NewSoundChangeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sc",
		Short: "Edit sound changes",
		Long: `Edit the ordered sound changes a language applies to its ancestor's
mnemonics during derive.

A sound change is written target > replacement / environment, where the
environment is before_after. Category keys expand to their graphemes, and a
target and replacement that each reference a category map grapheme by
grapheme (C > B with C=ptk, B=bdg turns p into b, t into d, k into g).
A # at the start or end of the environment anchors to the word boundary.

Rules are compiled when they are added; a malformed rule is rejected.

Examples:
  babel sc add Daughter C B V_V
  babel sc ins Daughter 0 h "" "#_"
  babel sc ls Daughter --compiled`,
	}

	parse := func(args []string) ir.SoundChange {
		return ir.SoundChange{Target: args[0], Replacement: args[1], Environment: args[2]}
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "add <language> <target> <replacement> <environment>",
		Short:         "Append a sound change",
		Args:          cobra.ExactArgs(4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			lang, _, err := s.language(args[0])
			if err != nil {
				return err
			}
			sc := parse(args[1:])
			if err := s.engine.AddSoundChange(lang, sc); err != nil {
				return s.fail("failed to add sound change", err)
			}
			return s.commit("Added sound change "+sc.String(), sc)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "alt <language> <index> <target> <replacement> <environment>",
		Short:         "Overwrite a sound change",
		Args:          cobra.ExactArgs(5),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			lang, _, err := s.language(args[0])
			if err != nil {
				return err
			}
			idx, err := s.index("sound change", args[1])
			if err != nil {
				return err
			}
			sc := parse(args[2:])
			if err := s.engine.AlterSoundChange(lang, idx, sc); err != nil {
				return s.fail("failed to alter sound change", err)
			}
			return s.commit(fmt.Sprintf("Altered sound change %d: %s", idx, sc), Indexed[ir.SoundChange]{Index: idx, Value: sc})
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "ins <language> <index> <target> <replacement> <environment>",
		Short:         "Insert a sound change before index",
		Args:          cobra.ExactArgs(5),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			lang, _, err := s.language(args[0])
			if err != nil {
				return err
			}
			idx, err := s.index("sound change", args[1])
			if err != nil {
				return err
			}
			sc := parse(args[2:])
			if err := s.engine.InsertSoundChange(lang, idx, sc); err != nil {
				return s.fail("failed to insert sound change", err)
			}
			return s.commit(fmt.Sprintf("Inserted sound change %d: %s", idx, sc), Indexed[ir.SoundChange]{Index: idx, Value: sc})
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "rm <language> <index>",
		Short:         "Remove a sound change",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			lang, _, err := s.language(args[0])
			if err != nil {
				return err
			}
			idx, err := s.index("sound change", args[1])
			if err != nil {
				return err
			}
			if err := s.engine.RemoveSoundChange(lang, idx); err != nil {
				return s.fail("failed to remove sound change", err)
			}
			return s.commit(fmt.Sprintf("Removed sound change %d", idx), idx)
		}),
	})

	var showCompiled bool
	ls := &cobra.Command{
		Use:           "ls <language>",
		Short:         "List sound changes in order",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			_, l, err := s.language(args[0])
			if err != nil {
				return err
			}
			var rc *compiler.RuleCompiler
			if showCompiled {
				if rc, err = compiler.ForSoundChanges(l.SoundChanges); err != nil {
					return s.fail("failed to compile categories", err)
				}
			}

			entries := []SoundChangeEntry{}
			var rows []table.Row
			for i, sc := range l.SoundChanges.Changes {
				entry := SoundChangeEntry{Index: i, Rule: sc}
				row := table.Row{i, sc.Target, sc.Replacement, sc.Environment}
				if rc != nil {
					subs, err := rc.Compile(sc)
					if err != nil {
						return s.fail(fmt.Sprintf("failed to compile sound change %d", i), err)
					}
					for _, sub := range subs {
						entry.Compiled = append(entry.Compiled, sub.String())
					}
					row = append(row, len(subs))
				}
				entries = append(entries, entry)
				rows = append(rows, row)
			}

			header := table.Row{"#", "Target", "Replacement", "Environment"}
			if rc != nil {
				header = append(header, "Substitutions")
			}
			return s.out.Table(header, rows, entries)
		}),
	}
	ls.Flags().BoolVar(&showCompiled, "compiled", false, "compile each rule and show its substitutions")
	cmd.AddCommand(ls)

	return cmd
}
