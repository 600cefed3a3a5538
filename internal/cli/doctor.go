package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/benlindsay/keyup/internal/config"
	"github.com/benlindsay/keyup/internal/doctor"
	"github.com/benlindsay/keyup/internal/errors"
	"github.com/benlindsay/keyup/internal/provision"
	"github.com/benlindsay/keyup/internal/ui"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Fix        bool
	SSHDir     string
	ConfigPath string
	Out        io.Writer
}

// categoryOrder fixes the rendering order of check categories.
var categoryOrder = []string{"TOOLS", "KEYS", "SSHCFG"}

// Doctor runs the diagnostic checks and renders the results.
// Returns an error (nonzero exit) when any check fails.
func Doctor(settings *config.Settings, opts DoctorOptions) error {
	sshDir := opts.SSHDir
	if sshDir == "" {
		sshDir = settings.SSHDir
	}
	if sshDir == "" {
		sshDir = provision.DefaultSSHDir()
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = filepath.Join(sshDir, "config")
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	checks := doctor.NewProvisionChecks(settings, sshDir, configPath)
	grouped := doctor.GroupByCategory(checks)

	var allResults []doctor.CheckResult
	for _, category := range categoryOrder {
		categoryChecks, ok := grouped[category]
		if !ok {
			continue
		}

		fmt.Fprintf(out, "%s\n", ui.MutedStyle().Render(category))
		for _, check := range categoryChecks {
			result := check.Run()

			if opts.Fix && result.Fixable && result.Status != doctor.StatusPass {
				if err := check.Fix(); err == nil {
					result = check.Run()
				}
			}

			fmt.Fprintf(out, "  %s %s\n", statusSymbol(result.Status), result.Message)
			if result.Suggestion != "" && result.Status != doctor.StatusPass {
				fmt.Fprintf(out, "    %s\n", ui.MutedStyle().Render(result.Suggestion))
			}

			allResults = append(allResults, result)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, doctor.Summary(allResults))

	if fixable := doctor.FixableCount(allResults); fixable > 0 && !opts.Fix {
		fmt.Fprintf(out, "%d fixable; rerun with --fix\n", fixable)
	}

	if doctor.HasFailures(allResults) {
		return errors.New(errors.ErrExec,
			"Some checks failed",
			"Address the failures above and rerun 'keyup doctor'")
	}

	return nil
}

func statusSymbol(s doctor.CheckStatus) string {
	switch s {
	case doctor.StatusPass:
		return ui.SuccessStyle().Render(ui.SymbolSuccess)
	case doctor.StatusWarn:
		return ui.WarningStyle().Render(ui.SymbolSkipped)
	default:
		return ui.ErrorStyle().Render(ui.SymbolFail)
	}
}
