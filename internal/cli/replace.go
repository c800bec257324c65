package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/babel/internal/ir"
)

// NewReplaceCommand creates the command group for one of a language's plain
// replace lists (surface or phonetic).
func NewReplaceCommand(rootOpts *RootOptions, kind ir.RuleKind) *cobra.Command {
	name := string(kind)
	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Edit the mnemonic-to-%s rules", name),
		Long: fmt.Sprintf(`Edit a language's %[1]s rules.

Each rule is a regular expression and a replacement (which may use $1-style
group references). The rules run in order on a word's mnemonic, each one
repeated until the text stops changing, to produce the %[1]s form. Every
edit recomputes the forms of the language's words.

Examples:
  babel %[1]s add Daughter k c
  babel %[1]s ins Daughter 0 "([aeiou])h" '${1}:'
  babel %[1]s rm Daughter 1`, name),
	}

	edit := func(use, short string, nargs int, apply func(s *session, lang int, args []string) (string, error)) *cobra.Command {
		return &cobra.Command{
			Use:           use,
			Short:         short,
			Args:          cobra.ExactArgs(nargs),
			SilenceUsage:  true,
			SilenceErrors: true,
			RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
				lang, _, err := s.language(args[0])
				if err != nil {
					return err
				}
				msg, err := apply(s, lang, args[1:])
				if err != nil {
					return err
				}
				n, err := s.engine.MorphAll(lang)
				if err != nil {
					return s.fail("failed to recompute words", err)
				}
				l, _ := s.project.Language(lang)
				list, _ := l.Replaces(kind)
				return s.commit(fmt.Sprintf("%s (%d words updated)", msg, n), *list)
			}),
		}
	}

	cmd.AddCommand(edit("add <language> <pattern> <replacement>", "Append a rule", 3,
		func(s *session, lang int, args []string) (string, error) {
			r := ir.Replace{Pattern: args[0], Replacement: args[1]}
			if err := s.engine.AddReplace(lang, kind, r); err != nil {
				return "", s.fail("failed to add "+name+" rule", err)
			}
			return fmt.Sprintf("Added %s rule %s => %s", name, r.Pattern, r.Replacement), nil
		}))

	cmd.AddCommand(edit("alt <language> <index> <pattern> <replacement>", "Overwrite a rule", 4,
		func(s *session, lang int, args []string) (string, error) {
			idx, err := s.index(name+" rule", args[0])
			if err != nil {
				return "", err
			}
			r := ir.Replace{Pattern: args[1], Replacement: args[2]}
			if err := s.engine.AlterReplace(lang, kind, idx, r); err != nil {
				return "", s.fail("failed to alter "+name+" rule", err)
			}
			return fmt.Sprintf("Altered %s rule %d: %s => %s", name, idx, r.Pattern, r.Replacement), nil
		}))

	cmd.AddCommand(edit("ins <language> <index> <pattern> <replacement>", "Insert a rule before index", 4,
		func(s *session, lang int, args []string) (string, error) {
			idx, err := s.index(name+" rule", args[0])
			if err != nil {
				return "", err
			}
			r := ir.Replace{Pattern: args[1], Replacement: args[2]}
			if err := s.engine.InsertReplace(lang, kind, idx, r); err != nil {
				return "", s.fail("failed to insert "+name+" rule", err)
			}
			return fmt.Sprintf("Inserted %s rule %d: %s => %s", name, idx, r.Pattern, r.Replacement), nil
		}))

	cmd.AddCommand(edit("rm <language> <index>", "Remove a rule", 2,
		func(s *session, lang int, args []string) (string, error) {
			idx, err := s.index(name+" rule", args[0])
			if err != nil {
				return "", err
			}
			if err := s.engine.RemoveReplace(lang, kind, idx); err != nil {
				return "", s.fail("failed to remove "+name+" rule", err)
			}
			return fmt.Sprintf("Removed %s rule %d", name, idx), nil
		}))

	cmd.AddCommand(&cobra.Command{
		Use:           "ls <language>",
		Short:         "List the rules in order",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			_, l, err := s.language(args[0])
			if err != nil {
				return err
			}
			list, err := l.Replaces(kind)
			if err != nil {
				return s.fail("failed to list rules", err)
			}
			var rows []table.Row
			for i, r := range *list {
				rows = append(rows, table.Row{i, r.Pattern, r.Replacement})
			}
			return s.out.Table(table.Row{"#", "Pattern", "Replacement"}, rows, *list)
		}),
	})

	return cmd
}
