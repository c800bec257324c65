package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/babel/internal/config"
	"github.com/roach88/babel/internal/ir"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose       bool
	Format        string // "json" | "text"
	ConfigFile    string
	Project       string
	DB            string
	MaxIterations int

	// Config is the resolved configuration, set before any command runs.
	Config *config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the babel CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "babel",
		Short: "babel - constructed language workbench",
		Long: `Manage the languages of a constructed-language family.

Words are authored as mnemonics and turned into surface spellings and
phonetic transcriptions by per-language replace rules. Daughter languages
derive their vocabulary from an ancestor through category-based sound
changes, keeping every word's lineage.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag before anything else reads it
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			cfg, err := config.Load(opts.ConfigFile, cmd.Flags())
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid configuration", err)
			}
			opts.Config = cfg
			opts.Format = cfg.Format
			opts.Verbose = cfg.Verbose

			logger := config.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
			cmd.SetContext(config.WithLogger(cmd.Context(), logger))
			if cfg.ConfigFile != "" {
				logger.Debug("loaded config file", "path", cfg.ConfigFile)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", config.DefaultFormat, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default: babel.yaml in the working directory)")
	cmd.PersistentFlags().StringVarP(&opts.Project, "project", "p", config.DefaultProjectFile, "project file (.json, .yaml or .yml)")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "SQLite derivation log (empty disables logging)")
	cmd.PersistentFlags().IntVar(&opts.MaxIterations, "max-iterations", config.DefaultMaxIterations, "fixpoint iteration cap per rule")

	// Add subcommands
	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewLanguageCommand(opts))
	cmd.AddCommand(NewPartOfSpeechCommand(opts))
	cmd.AddCommand(NewWordCommand(opts))
	cmd.AddCommand(NewReplaceCommand(opts, ir.SurfaceRules))
	cmd.AddCommand(NewReplaceCommand(opts, ir.PhoneticRules))
	cmd.AddCommand(NewCategoryCommand(opts))
	cmd.AddCommand(NewSoundChangeCommand(opts))
	cmd.AddCommand(NewDeriveCommand(opts))
	cmd.AddCommand(NewMorphCommand(opts))
	cmd.AddCommand(NewInterpretCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// settings returns the resolved configuration, falling back to the flag
// values when the root pre-run did not execute (subcommands run standalone).
func (o *RootOptions) settings() *config.Config {
	if o.Config != nil {
		return o.Config
	}
	cfg := &config.Config{
		Project:       o.Project,
		DB:            o.DB,
		MaxIterations: o.MaxIterations,
		Format:        o.Format,
		Verbose:       o.Verbose,
	}
	if cfg.Project == "" {
		cfg.Project = config.DefaultProjectFile
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = config.DefaultMaxIterations
	}
	if cfg.Format == "" {
		cfg.Format = config.DefaultFormat
	}
	return cfg
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
