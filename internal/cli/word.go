package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/babel/internal/engine"
	"github.com/roach88/babel/internal/ir"
)

// WordOptions holds the authored-field flags of word add and word alt.
type WordOptions struct {
	Mnemonic     string
	Gloss        string
	PartOfSpeech string
	Note         string
	From         []string
}

// NewWordCommand creates the word command group.
func NewWordCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "word",
		Short: "Add, alter, remove, list and link words",
		Long: `Manage a language's vocabulary.

A word is authored as a mnemonic; its surface spelling and phonetic form are
computed by the language's surface and phonetic rules whenever the word is
added or altered. Words are addressed by index, and removing a word leaves an
empty slot so that coordinates into the vocabulary stay valid.

Coordinates are written language:word, e.g. 0:12.`,
	}

	cmd.AddCommand(newWordAddCommand(rootOpts))
	cmd.AddCommand(newWordAltCommand(rootOpts))
	cmd.AddCommand(newWordTryCommand(rootOpts))
	cmd.AddCommand(&cobra.Command{
		Use:           "rm <language> <word>",
		Short:         "Remove a word, keeping its slot",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			lang, _, err := s.language(args[0])
			if err != nil {
				return err
			}
			idx, err := s.index("word", args[1])
			if err != nil {
				return err
			}
			if err := s.engine.RemoveWord(lang, idx); err != nil {
				return s.fail("failed to remove word", err)
			}
			return s.commit(fmt.Sprintf("Removed word %d", idx), ir.Coordinate{Language: lang, Word: idx})
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "ls <language>",
		Short:         "List a language's words",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			_, lang, err := s.language(args[0])
			if err != nil {
				return err
			}
			items := []Indexed[ir.Word]{}
			var rows []table.Row
			for i, w := range lang.Vocabulary.All() {
				items = append(items, Indexed[ir.Word]{Index: i, Value: *w})
				rows = append(rows, table.Row{i, w.Mnemonic, w.Surface, w.Phonetic, w.Gloss, s.posAbbr(w.PartOfSpeech), formatCoordinates(w.Ancestors)})
			}
			return s.out.Table(table.Row{"#", "Mnemonic", "Surface", "Phonetic", "Gloss", "POS", "Ancestors"}, rows, items)
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "link <language> <word> [coordinate...]",
		Short: "Set a word's ancestors",
		Long: `Replace a word's ancestor coordinates.

One coordinate into the language's ancestor makes the word inherited: it is
refreshed by derive. One coordinate into any other language marks a loan,
several mark a blend, none makes it an original coinage. A word cannot point
into its own language.

Examples:
  babel word link Daughter 4 0:7
  babel word link Daughter 5 0:2 2:9
  babel word link Daughter 4`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			lang, _, err := s.language(args[0])
			if err != nil {
				return err
			}
			idx, err := s.index("word", args[1])
			if err != nil {
				return err
			}
			coords, err := s.coordinates(args[2:])
			if err != nil {
				return err
			}
			if err := s.engine.LinkWord(lang, idx, coords); err != nil {
				return s.fail("failed to link word", err)
			}
			return s.commit(fmt.Sprintf("Linked word %d to [%s]", idx, formatCoordinates(coords)), coords)
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "lineage <language> <word>",
		Short: "Resolve a word's ancestor coordinates",
		Long: `Show what each ancestor coordinate of a word points at.

Coordinates that no longer resolve (the ancestor word was removed, or the
language is gone) are listed with their error code instead of failing.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			_, lang, err := s.language(args[0])
			if err != nil {
				return err
			}
			idx, err := s.index("word", args[1])
			if err != nil {
				return err
			}
			w, err := lang.Word(idx)
			if err != nil {
				return s.fail("failed to read word", err)
			}

			type entry struct {
				Coordinate string   `json:"coordinate"`
				Word       *ir.Word `json:"word,omitempty"`
				Error      string   `json:"error,omitempty"`
			}
			entries := []entry{}
			var rows []table.Row
			for _, ln := range engine.Lineages(s.project, w) {
				e := entry{Coordinate: ln.Coordinate.String(), Word: ln.Word}
				if ln.Err != nil {
					e.Error = engine.ErrorCode(ln.Err)
					rows = append(rows, table.Row{e.Coordinate, languageName(s.project, ln.Coordinate.Language), "", "", e.Error})
				} else {
					rows = append(rows, table.Row{e.Coordinate, languageName(s.project, ln.Coordinate.Language), ln.Word.Mnemonic, ln.Word.Gloss, "ok"})
				}
				entries = append(entries, e)
			}
			return s.out.Table(table.Row{"Coordinate", "Language", "Mnemonic", "Gloss", "Status"}, rows, entries)
		}),
	})

	return cmd
}

func newWordAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WordOptions{}

	cmd := &cobra.Command{
		Use:   "add <language> <mnemonic> <gloss>",
		Short: "Add a word",
		Long: `Add a word and compute its surface and phonetic forms.

Examples:
  babel word add Proto kato cat --pos n
  babel word add Daughter ringo apple --from 2:14`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			lang, l, err := s.language(args[0])
			if err != nil {
				return err
			}
			pos := 0
			if opts.PartOfSpeech != "" {
				if pos, err = s.partOfSpeech(opts.PartOfSpeech); err != nil {
					return err
				}
			}
			w := ir.NewWord(args[1], args[2], pos, opts.Note)
			if len(opts.From) > 0 {
				if w.Ancestors, err = s.coordinates(opts.From); err != nil {
					return err
				}
			}
			idx, err := s.engine.AddWord(lang, w)
			if err != nil {
				return s.fail("failed to add word", err)
			}
			added, _ := l.Word(idx)
			return s.commit(fmt.Sprintf("Added word %d: %s [%s] %q", idx, added.Surface, added.Phonetic, added.Gloss),
				Indexed[ir.Word]{Index: idx, Value: *added})
		}),
	}

	cmd.Flags().StringVar(&opts.PartOfSpeech, "pos", "", "part of speech (abbreviation or index)")
	cmd.Flags().StringVar(&opts.Note, "note", "", "free-form note")
	cmd.Flags().StringSliceVar(&opts.From, "from", nil, "ancestor coordinates (language:word)")

	return cmd
}

func newWordAltCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WordOptions{}

	cmd := &cobra.Command{
		Use:   "alt <language> <word>",
		Short: "Alter a word's authored fields",
		Long: `Change the mnemonic, gloss, part of speech or note of a word and
recompute its forms. Only the given flags change; the ancestors are kept.

Example:
  babel word alt Proto 3 --mnemonic katto --gloss "house cat"`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = sessionCommand(rootOpts, func(s *session, args []string) error {
		lang, l, err := s.language(args[0])
		if err != nil {
			return err
		}
		idx, err := s.index("word", args[1])
		if err != nil {
			return err
		}
		cur, err := l.Word(idx)
		if err != nil {
			return s.fail("failed to alter word", err)
		}
		w := *cur
		flags := cmd.Flags()
		if flags.Changed("mnemonic") {
			w.Mnemonic = opts.Mnemonic
		}
		if flags.Changed("gloss") {
			w.Gloss = opts.Gloss
		}
		if flags.Changed("note") {
			w.Note = opts.Note
		}
		if flags.Changed("pos") {
			if w.PartOfSpeech, err = s.partOfSpeech(opts.PartOfSpeech); err != nil {
				return err
			}
		}
		if err := s.engine.AlterWord(lang, idx, w); err != nil {
			return s.fail("failed to alter word", err)
		}
		altered, _ := l.Word(idx)
		return s.commit(fmt.Sprintf("Altered word %d: %s [%s] %q", idx, altered.Surface, altered.Phonetic, altered.Gloss),
			Indexed[ir.Word]{Index: idx, Value: *altered})
	})

	cmd.Flags().StringVar(&opts.Mnemonic, "mnemonic", "", "new mnemonic")
	cmd.Flags().StringVar(&opts.Gloss, "gloss", "", "new gloss")
	cmd.Flags().StringVar(&opts.PartOfSpeech, "pos", "", "new part of speech (abbreviation or index)")
	cmd.Flags().StringVar(&opts.Note, "note", "", "new note")

	return cmd
}

// coordinates parses language:word arguments.
func (s *session) coordinates(args []string) ([]ir.Coordinate, error) {
	coords := make([]ir.Coordinate, 0, len(args))
	for _, a := range args {
		c, err := ir.ParseCoordinate(a)
		if err != nil {
			return nil, s.out.Fail(ErrCodeBadArgument, "invalid coordinate", err)
		}
		coords = append(coords, c)
	}
	return coords, nil
}

// posAbbr renders a part-of-speech index as its abbreviation.
func (s *session) posAbbr(idx int) string {
	if pos, err := s.project.PartOfSpeech(idx); err == nil {
		return pos.Abbr
	}
	return "?"
}

func formatCoordinates(coords []ir.Coordinate) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// WordPreview is the payload of word try.
type WordPreview struct {
	Mnemonic string `json:"mnemonic"`
	Surface  string `json:"surface"`
	Phonetic string `json:"phonetic"`
	Changed  string `json:"changed"` // mnemonic after the sound changes
}

func newWordTryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "try <language> <mnemonic>",
		Short: "Preview a mnemonic's forms without adding it",
		Long: `Run a mnemonic through the language's surface, phonetic and sound-change
rules and show the results. Nothing is saved.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			lang, _, err := s.language(args[0])
			if err != nil {
				return err
			}
			p, err := s.engine.Pipelines(lang)
			if err != nil {
				return s.fail("failed to compile rules", err)
			}
			w := ir.NewWord(args[1], "", 0, "")
			if err := p.Morph(&w); err != nil {
				return s.fail("failed to morph "+args[1], err)
			}
			changed, err := p.SoundChange.Run(args[1])
			if err != nil {
				return s.fail("failed to apply sound changes to "+args[1], err)
			}
			preview := WordPreview{Mnemonic: w.Mnemonic, Surface: w.Surface, Phonetic: w.Phonetic, Changed: changed}
			return s.report(fmt.Sprintf("%s: surface %s, phonetic [%s], after sound changes %s",
				preview.Mnemonic, preview.Surface, preview.Phonetic, preview.Changed), preview)
		}),
	}
}
