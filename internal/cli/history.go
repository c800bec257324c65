package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/babel/internal/store"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history [language]",
		Short: "List recorded derivations",
		Long: `List the derivations recorded in the --db log for this project, oldest
first, optionally only those of one language. Each record carries the
digest of the language's vocabulary right after the run, so two runs with
the same digest produced identical words.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			if s.cfg.DB == "" {
				return NewExitError(ExitCommandError, "history needs a derivation log (set --db or BABEL_DB)")
			}

			lang := -1
			if len(args) == 1 {
				idx, _, err := s.language(args[0])
				if err != nil {
					return err
				}
				lang = idx
			}

			st, err := store.Open(s.cfg.DB)
			if err != nil {
				return s.out.Fail(ErrCodeLoadFailed, "failed to open derivation log", err)
			}
			defer st.Close()

			records, err := st.ReadDerivations(s.cmd.Context(), s.project.ID, lang)
			if err != nil {
				return s.fail("failed to read derivations", err)
			}

			snap, found, err := st.LatestSnapshot(s.cmd.Context(), s.project.ID)
			if err != nil {
				return s.fail("failed to read snapshots", err)
			}
			if found {
				s.out.VerboseLog("Latest snapshot %d (%s)", snap.Seq, snap.Digest)
			}

			rows := make([]table.Row, 0, len(records))
			for _, r := range records {
				digest := r.Digest
				if len(digest) > 12 {
					digest = digest[:12]
				}
				rows = append(rows, table.Row{
					r.Seq,
					languageName(s.project, r.Language),
					languageName(s.project, r.Ancestor),
					r.Fused, r.Inherited, r.Preserved,
					digest,
				})
			}
			return s.out.Table(table.Row{"Seq", "Language", "Ancestor", "Fused", "Inherited", "Preserved", "Digest"}, rows, records)
		}),
	}
}
