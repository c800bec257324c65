package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/babel/internal/compiler"
)

// CategoryEntry describes one category in listings.
type CategoryEntry struct {
	Key       string   `json:"key"`
	Content   string   `json:"content"`
	Graphemes []string `json:"graphemes"`
}

// NewCategoryCommand creates the cat command group.
func NewCategoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat",
		Short: "Edit sound-change categories",
		Long: `Edit the categories referenced by a language's sound changes.

A category is a single-character key standing for a set of graphemes, e.g.
C for ptk or V for aeiou. A base letter followed by combining marks counts
as one grapheme. Edits that would leave an existing sound change invalid are
rejected and rolled back.

Examples:
  babel cat add Daughter C ptk
  babel cat rm Daughter C`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "add <language> <key> <graphemes>",
		Short:         "Set a category",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			lang, _, err := s.language(args[0])
			if err != nil {
				return err
			}
			key, err := s.categoryKey(args[1])
			if err != nil {
				return err
			}
			if err := s.engine.SetCategory(lang, key, args[2]); err != nil {
				return s.fail("failed to set category", err)
			}
			entry := CategoryEntry{Key: args[1], Content: args[2], Graphemes: compiler.Graphemes(args[2])}
			return s.commit(fmt.Sprintf("Set category %s = %s", args[1], args[2]), entry)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "rm <language> <key>",
		Short:         "Remove a category",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			lang, _, err := s.language(args[0])
			if err != nil {
				return err
			}
			key, err := s.categoryKey(args[1])
			if err != nil {
				return err
			}
			if err := s.engine.RemoveCategory(lang, key); err != nil {
				return s.fail("failed to remove category", err)
			}
			return s.commit(fmt.Sprintf("Removed category %s", args[1]), args[1])
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "ls <language>",
		Short:         "List categories",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			_, l, err := s.language(args[0])
			if err != nil {
				return err
			}
			entries := []CategoryEntry{}
			var rows []table.Row
			for _, k := range l.SoundChanges.CategoryKeys() {
				content := l.SoundChanges.Categories[string(k)]
				g := compiler.Graphemes(content)
				entries = append(entries, CategoryEntry{Key: string(k), Content: content, Graphemes: g})
				rows = append(rows, table.Row{string(k), strings.Join(g, " "), len(g)})
			}
			return s.out.Table(table.Row{"Key", "Graphemes", "Count"}, rows, entries)
		}),
	})

	return cmd
}

// categoryKey parses a single-character category key.
func (s *session) categoryKey(arg string) (rune, error) {
	if utf8.RuneCountInString(arg) != 1 {
		return 0, s.out.Fail(string(compiler.ErrCodeCategory), "invalid category key",
			fmt.Errorf("%q must be exactly one character", arg))
	}
	r, _ := utf8.DecodeRuneInString(arg)
	return r, nil
}
