package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/babel/internal/engine"
	"github.com/roach88/babel/internal/store"
)

// DeriveOutput is the payload of a successful derive.
type DeriveOutput struct {
	*engine.DeriveResult
	SnapshotSeq int64 `json:"snapshot_seq,omitempty"`
}

// NewDeriveCommand creates the derive command.
func NewDeriveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive <language> <ancestor>",
		Short: "Regenerate a language's inherited vocabulary from an ancestor",
		Long: `Run every live word of the ancestor through the language's sound changes.

Words of the language that already descend from a single ancestor word get
their mnemonic, surface and phonetic forms refreshed and keep their gloss,
part of speech and note. Ancestor words with no descendant yet are appended
as new words. Coinages, loans and blends are left alone.

The derivation is all-or-nothing: if any word fails (GHOST_WORD when a
descendant points at a removed ancestor word, NON_TERMINATING_RULE when a
rule never settles) the project is left untouched.

With --db, each successful run is recorded with a digest of the resulting
vocabulary, and a snapshot of the project is stored.

Exit codes:
  0 - Derivation succeeded
  1 - Derivation failed
  2 - Command error (unknown language, unreadable project, etc.)

Examples:
  babel derive Daughter Proto
  babel derive 1 0 --db babel.db --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDerive(rootOpts, cmd, args[0], args[1])
		},
	}

	return cmd
}

func runDerive(opts *RootOptions, cmd *cobra.Command, langArg, ancestorArg string) error {
	cfg := opts.settings()

	var st *store.Store
	if cfg.DB != "" {
		var err error
		st, err = store.Open(cfg.DB)
		if err != nil {
			return newFormatter(opts, cmd).Fail(ErrCodeLoadFailed, "failed to open derivation log", err)
		}
		defer st.Close()
	}

	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	lang, l, err := s.language(langArg)
	if err != nil {
		return err
	}
	anc, a, err := s.language(ancestorArg)
	if err != nil {
		return err
	}

	out, err := s.deriveAndLog(cmd.Context(), st, lang, anc)
	if err != nil {
		return err
	}
	return s.report(fmt.Sprintf("Derived %s from %s: %d fused, %d inherited, %d preserved",
		l.Name, a.Name, out.Fused, out.Inherited, out.Preserved), out)
}

// deriveAndLog derives lang from anc and saves the project. The run and a
// snapshot are appended to st only after the save succeeds. A nil st skips
// logging.
func (s *session) deriveAndLog(ctx context.Context, st *store.Store, lang, anc int) (*DeriveOutput, error) {
	res, err := s.engine.Derive(ctx, lang, anc)
	if err != nil {
		if idx, ok := engine.GhostWordIndex(err); ok {
			s.out.VerboseLog("word %d of %s points at a missing ancestor word", idx, s.languageName(lang))
		}
		return nil, s.fail(fmt.Sprintf("failed to derive %s from %s", s.languageName(lang), s.languageName(anc)), err)
	}
	if err := s.save(); err != nil {
		return nil, err
	}

	out := &DeriveOutput{DeriveResult: res}
	if st == nil {
		return out, nil
	}

	seq, err := st.RecordDerivation(ctx, res.Record(s.project.ID))
	if err != nil {
		return nil, s.fail("failed to record derivation", err)
	}
	res.Seq = seq

	body, err := store.SnapshotBody(s.project)
	if err != nil {
		return nil, s.fail("failed to encode snapshot", err)
	}
	snap, err := st.WriteSnapshot(ctx, s.project.ID, body)
	if err != nil {
		return nil, s.fail("failed to write snapshot", err)
	}
	out.SnapshotSeq = snap.Seq
	s.logger.Debug("stored snapshot", "seq", snap.Seq, "digest", snap.Digest)
	return out, nil
}
