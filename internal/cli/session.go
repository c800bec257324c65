package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/babel/internal/config"
	"github.com/roach88/babel/internal/engine"
	"github.com/roach88/babel/internal/ir"
	"github.com/roach88/babel/internal/store"
)

// session is one command's view of the project file: the loaded project, an
// engine over it and the output formatter.
type session struct {
	cfg     *config.Config
	cmd     *cobra.Command
	out     *OutputFormatter
	logger  *slog.Logger
	project *ir.Project
	engine  *engine.Engine
}

// newFormatter builds the formatter for cmd from the resolved options.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	cfg := opts.settings()
	return &OutputFormatter{
		Format:    cfg.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   cfg.Verbose,
	}
}

// openSession loads the configured project file and builds an engine over it.
func openSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	cfg := opts.settings()
	s := &session{
		cfg:    cfg,
		cmd:    cmd,
		out:    newFormatter(opts, cmd),
		logger: config.Logger(cmd.Context()),
	}

	p, err := store.LoadFile(cfg.Project)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, s.out.Fail(ErrCodeNotFound, "project file not found (run 'babel init')", err)
		}
		return nil, s.out.Fail(ErrCodeLoadFailed, "failed to load project", err)
	}
	s.project = p
	s.out.VerboseLog("Loaded project %s from %s", p.ID, cfg.Project)

	s.engine = engine.New(p,
		engine.WithMaxIterations(cfg.MaxIterations),
		engine.WithLogger(s.logger),
	)
	return s, nil
}

// save writes the project back to its file.
func (s *session) save() error {
	if err := store.SaveFile(s.cfg.Project, s.project); err != nil {
		return s.out.Fail(ErrCodeWriteFailed, "failed to save project", err)
	}
	s.logger.Debug("saved project", "path", s.cfg.Project)
	return nil
}

// commit saves the project, then reports text, or data in json mode.
func (s *session) commit(text string, data interface{}) error {
	if err := s.save(); err != nil {
		return err
	}
	return s.report(text, data)
}

// report writes text, or data in json mode.
func (s *session) report(text string, data interface{}) error {
	if s.out.Format == "json" {
		return s.out.Success(data)
	}
	return s.out.Success(text)
}

// fail reports a failed operation.
func (s *session) fail(message string, err error) error {
	return s.out.Fail(ErrCodeGeneric, message, err)
}

// language resolves a language argument (name or index).
func (s *session) language(ref string) (int, *ir.Language, error) {
	idx, err := s.project.LookupLanguage(ref)
	if err != nil {
		return 0, nil, s.out.Fail(ErrCodeBadArgument, "invalid language", err)
	}
	lang, err := s.project.Language(idx)
	if err != nil {
		return 0, nil, s.out.Fail(ErrCodeBadArgument, "invalid language", err)
	}
	return idx, lang, nil
}

// languageName returns the name of the language at idx, or the index itself
// when the slot is out of range or removed.
func (s *session) languageName(idx int) string {
	if l, err := s.project.Language(idx); err == nil {
		return l.Name
	}
	return strconv.Itoa(idx)
}

// partOfSpeech resolves a part-of-speech argument (abbreviation or index).
func (s *session) partOfSpeech(ref string) (int, error) {
	if idx, err := strconv.Atoi(ref); err == nil {
		if _, err := s.project.PartOfSpeech(idx); err != nil {
			return 0, s.out.Fail(ErrCodeBadArgument, "invalid part of speech", err)
		}
		return idx, nil
	}
	if idx, ok := s.project.PartOfSpeechByAbbr(ref); ok {
		return idx, nil
	}
	return 0, s.out.Fail(ErrCodeBadArgument, "invalid part of speech", fmt.Errorf("unknown abbreviation %q", ref))
}

// index parses a non-negative index argument.
func (s *session) index(what, arg string) (int, error) {
	return parseIndex(s.out, what, arg)
}

func parseIndex(out *OutputFormatter, what, arg string) (int, error) {
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 0 {
		return 0, out.Fail(ErrCodeBadArgument, "invalid "+what+" index", fmt.Errorf("%q is not a non-negative integer", arg))
	}
	return idx, nil
}

// languageName renders a language index as its name, or the bare index when
// the slot is dead.
func languageName(p *ir.Project, idx int) string {
	if lang, err := p.Language(idx); err == nil {
		return lang.Name
	}
	return strconv.Itoa(idx)
}

// sessionCommand wraps a session body as a cobra RunE.
func sessionCommand(opts *RootOptions, body func(s *session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession(opts, cmd)
		if err != nil {
			return err
		}
		return body(s, args)
	}
}

// Indexed pairs a list item with its index for JSON output.
type Indexed[T any] struct {
	Index int `json:"index"`
	Value T   `json:"value"`
}
