package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/babel/internal/engine"
	"github.com/roach88/babel/internal/ir"
)

// LanguageSummary describes one language in listings.
type LanguageSummary struct {
	Index        int    `json:"index"`
	Name         string `json:"name"`
	Ancestor     *int   `json:"ancestor,omitempty"`
	Words        int    `json:"words"`
	Surface      int    `json:"surface"`
	Phonetic     int    `json:"phonetic"`
	Categories   int    `json:"categories"`
	SoundChanges int    `json:"sound_changes"`
}

func summarize(idx int, l *ir.Language) LanguageSummary {
	return LanguageSummary{
		Index:        idx,
		Name:         l.Name,
		Ancestor:     l.Ancestor,
		Words:        l.Vocabulary.Live(),
		Surface:      len(l.Surface),
		Phonetic:     len(l.Phonetic),
		Categories:   len(l.SoundChanges.Categories),
		SoundChanges: len(l.SoundChanges.Changes),
	}
}

// NewLanguageCommand creates the lang command group.
func NewLanguageCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lang",
		Short: "Add, rename, remove and list languages",
		Long: `Manage the project's languages.

Languages are addressed by index or by name. Removing a language leaves an
empty slot so that the indices of the other languages, and every word
coordinate pointing at them, stay valid.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "add <name>",
		Short:         "Add a language",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			name := args[0]
			if err := s.checkLanguageName(name); err != nil {
				return err
			}
			idx := s.project.Languages.Append(ir.NewLanguage(name))
			return s.commit(fmt.Sprintf("Added language %d: %s", idx, name), Indexed[string]{Index: idx, Value: name})
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "alt <language> <name>",
		Short:         "Rename a language",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			idx, lang, err := s.language(args[0])
			if err != nil {
				return err
			}
			if err := s.checkLanguageName(args[1]); err != nil {
				return err
			}
			lang.Name = args[1]
			return s.commit(fmt.Sprintf("Renamed language %d to %s", idx, lang.Name), Indexed[string]{Index: idx, Value: lang.Name})
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "rm <language>",
		Short:         "Remove a language, keeping its slot",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			idx, lang, err := s.language(args[0])
			if err != nil {
				return err
			}
			name := lang.Name
			if err := s.project.Languages.Remove(idx); err != nil {
				return s.fail("failed to remove language", err)
			}
			return s.commit(fmt.Sprintf("Removed language %d: %s", idx, name), Indexed[string]{Index: idx, Value: name})
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "ls",
		Short:         "List languages",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			summaries := []LanguageSummary{}
			var rows []table.Row
			for i, l := range s.project.Languages.All() {
				sum := summarize(i, l)
				summaries = append(summaries, sum)
				ancestor := "-"
				if l.Ancestor != nil {
					ancestor = languageName(s.project, *l.Ancestor)
				}
				rows = append(rows, table.Row{i, l.Name, ancestor, sum.Words, sum.Surface, sum.Phonetic, sum.Categories, sum.SoundChanges})
			}
			return s.out.Table(table.Row{"#", "Name", "Ancestor", "Words", "Surface", "Phonetic", "Categories", "Changes"}, rows, summaries)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "ancestry <language>",
		Short: "Show a language's ancestor chain",
		Long: `Walk the ancestor pointers from a language up to its root.

Fails with ANCESTOR_CYCLE if the chain loops.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			idx, _, err := s.language(args[0])
			if err != nil {
				return err
			}
			chain, err := engine.Ancestry(s.project, idx)
			if err != nil {
				return s.fail("failed to walk ancestry", err)
			}
			var rows []table.Row
			for depth, l := range chain {
				rows = append(rows, table.Row{depth, l, languageName(s.project, l)})
			}
			return s.out.Table(table.Row{"Depth", "#", "Name"}, rows, chain)
		}),
	})

	return cmd
}

// checkLanguageName rejects empty names and names already in use.
func (s *session) checkLanguageName(name string) error {
	if name == "" {
		return s.out.Fail(ErrCodeBadArgument, "invalid language name", fmt.Errorf("name is empty"))
	}
	if _, taken := s.project.LanguageByName(name); taken {
		return s.out.Fail(ErrCodeBadArgument, "invalid language name", fmt.Errorf("language %q already exists", name))
	}
	return nil
}
