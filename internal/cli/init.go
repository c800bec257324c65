package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/babel/internal/ir"
	"github.com/roach88/babel/internal/store"
)

// InitOptions holds flags for the init command.
type InitOptions struct {
	*RootOptions
	Force bool
}

// InitResult is the payload of a successful init.
type InitResult struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// defaultPartsOfSpeech seeds a new project.
var defaultPartsOfSpeech = []ir.PartOfSpeech{
	{Name: "noun", Abbr: "n"},
	{Name: "verb", Abbr: "v"},
	{Name: "adjective", Abbr: "adj"},
	{Name: "adverb", Abbr: "adv"},
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty project file",
		Long: `Create a new project file with a fresh project ID and the common
parts of speech (noun, verb, adjective, adverb).

The file format follows the extension: .yaml/.yml for YAML, JSON otherwise.

Examples:
  babel init
  babel init --project family.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing project file")

	return cmd
}

func runInit(opts *InitOptions, cmd *cobra.Command) error {
	cfg := opts.settings()
	out := newFormatter(opts.RootOptions, cmd)

	if _, err := os.Stat(cfg.Project); err == nil && !opts.Force {
		return out.Fail(ErrCodeWriteFailed, "project file already exists (use --force to overwrite)",
			fmt.Errorf("%s exists", cfg.Project))
	}

	p := ir.NewProject()
	for _, pos := range defaultPartsOfSpeech {
		p.PartsOfSpeech.Append(pos)
	}
	if err := store.SaveFile(cfg.Project, p); err != nil {
		return out.Fail(ErrCodeWriteFailed, "failed to create project", err)
	}

	if out.Format == "json" {
		return out.Success(InitResult{ID: p.ID, Path: cfg.Project})
	}
	return out.Success(fmt.Sprintf("Created %s (project %s)", cfg.Project, p.ID))
}
