package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/babel/internal/compiler"
)

// CheckIssue is one validation problem, tagged with its language.
type CheckIssue struct {
	Language string `json:"language"`
	Severity string `json:"severity"` // "error" or "warning"
	compiler.ValidationError
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [language]",
		Short: "Compile every rule and report problems",
		Long: `Compile the surface rules, phonetic rules and sound changes of one
language, or of every language, and report all problems found.

Empty categories and correlated categories of different lengths are
warnings; everything else is an error.

Exit codes:
  0 - No errors (warnings allowed)
  1 - At least one error
  2 - Command error`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: sessionCommand(rootOpts, func(s *session, args []string) error {
			return runCheck(s, args)
		}),
	}
}

func runCheck(s *session, args []string) error {
	targets := map[int]bool{}
	if len(args) == 1 {
		idx, _, err := s.language(args[0])
		if err != nil {
			return err
		}
		targets[idx] = true
	}

	issues := []CheckIssue{}
	var rows []table.Row
	errCount := 0
	for i, l := range s.project.Languages.All() {
		if len(targets) > 0 && !targets[i] {
			continue
		}
		for _, ve := range compiler.ValidateLanguage(l) {
			issue := CheckIssue{Language: l.Name, Severity: "error", ValidationError: ve}
			if ve.IsWarning() {
				issue.Severity = "warning"
			} else {
				errCount++
			}
			issues = append(issues, issue)
			rule := "-"
			if ve.Rule >= 0 {
				rule = fmt.Sprint(ve.Rule)
			}
			rows = append(rows, table.Row{l.Name, issue.Severity, ve.Code, ve.Field, rule, ve.Message})
		}
	}

	if err := s.out.Table(table.Row{"Language", "Severity", "Code", "Field", "Rule", "Message"}, rows, issues); err != nil {
		return err
	}
	if errCount > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("[%s] %d rule error(s)", ErrCodeCheckFailed, errCount))
	}
	return nil
}
