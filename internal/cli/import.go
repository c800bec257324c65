package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/babel/internal/compiler"
	"github.com/roach88/babel/internal/ir"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Create bool
}

// ImportedLanguage reports one rulebook applied by import.
type ImportedLanguage struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Created bool   `json:"created"`
	Morphed int    `json:"morphed"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <rulebook.cue>",
		Short: "Replace languages' rules from a CUE rulebook",
		Long: `Load a CUE rulebook and replace the surface rules, phonetic rules,
categories and sound changes of every language it names, then recompute
their words' forms.

The rulebook is compiled in full before anything changes; a bad rule in any
language aborts the import.

  language: Proto: {
  	categories: {C: "ptk", V: "aeiou"}
  	surface: [{pattern: "kh", replace: "x"}]
  	changes: [{target: "C", replace: "", env: "_#"}]
  }

Examples:
  babel import rules.cue
  babel import rules.cue --create`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			return runImport(opts, s, args[0])
		}),
	}

	cmd.Flags().BoolVar(&opts.Create, "create", false, "add languages the project does not have yet")

	return cmd
}

func runImport(opts *ImportOptions, s *session, path string) error {
	books, err := compiler.LoadRulebookFile(path)
	if err != nil {
		return s.out.Fail(ErrCodeLoadFailed, "failed to load rulebook", err)
	}

	imported := make([]ImportedLanguage, 0, len(books))
	for _, rb := range books {
		entry := ImportedLanguage{Name: rb.Name}
		idx, ok := s.project.LanguageByName(rb.Name)
		if !ok {
			if !opts.Create {
				return s.out.Fail(ErrCodeBadArgument, "invalid rulebook",
					fmt.Errorf("unknown language %q (use --create to add it)", rb.Name))
			}
			idx = s.project.Languages.Append(ir.NewLanguage(rb.Name))
			entry.Created = true
		}
		lang, err := s.project.Language(idx)
		if err != nil {
			return s.fail("failed to import rulebook", err)
		}
		rb.ApplyTo(lang)

		n, err := s.engine.MorphAll(idx)
		if err != nil {
			return s.fail("failed to recompute "+rb.Name, err)
		}
		entry.Index = idx
		entry.Morphed = n
		imported = append(imported, entry)
		s.out.VerboseLog("Imported %s: %d words updated", rb.Name, n)
	}

	return s.commit(fmt.Sprintf("Imported rules for %d language(s) from %s", len(imported), path), imported)
}
