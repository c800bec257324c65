package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMorphCommand creates the morph command.
func NewMorphCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "morph <language>",
		Short: "Recompute the surface and phonetic forms of every word",
		Long: `Recompute every live word's surface and phonetic forms from its
mnemonic with the language's current rules. All-or-nothing: if one word
fails, no word changes.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			lang, l, err := s.language(args[0])
			if err != nil {
				return err
			}
			n, err := s.engine.MorphAll(lang)
			if err != nil {
				return s.fail("failed to morph "+l.Name, err)
			}
			return s.commit(fmt.Sprintf("Morphed %d words of %s", n, l.Name), map[string]int{"morphed": n})
		}),
	}
}
