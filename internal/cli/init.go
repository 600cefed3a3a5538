package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/benlindsay/keyup/internal/config"
	"github.com/benlindsay/keyup/internal/errors"
	"github.com/benlindsay/keyup/internal/ui"
	"github.com/charmbracelet/huh"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Force          bool   // Overwrite existing settings without asking
	NonInteractive bool   // Skip prompts, write defaults
	Path           string // Settings file path override (tests)
}

// Init creates the global settings file.
func Init(opts InitOptions) error {
	path := opts.Path
	if path == "" {
		path = config.GlobalConfigPath()
	}

	// Check for existing settings
	if _, err := os.Stat(path); err == nil && !opts.Force {
		var overwrite bool

		if opts.NonInteractive || !isInteractive() {
			return errors.New(errors.ErrConfig,
				"Settings file already exists: "+path,
				"Use --force to overwrite")
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Settings file '%s' already exists. Overwrite?", path)).
					Value(&overwrite),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}

		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	settings := config.DefaultSettings()

	if !opts.NonInteractive && isInteractive() {
		keyTypeOptions := make([]huh.Option[string], len(config.SupportedKeyTypes))
		for i, kt := range config.SupportedKeyTypes {
			keyTypeOptions[i] = huh.NewOption(kt, kt)
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Git server hostname").
					Description("The Host/HostName written to ~/.ssh/config").
					Placeholder(settings.Hostname).
					Value(&settings.Hostname).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("hostname is required")
						}
						return nil
					}),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("SSH user").
					Description("Git hosting services usually authenticate as 'git'").
					Placeholder(settings.User).
					Value(&settings.User),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Key file prefix").
					Description("Keys are named <prefix>-<address> in ~/.ssh").
					Placeholder(settings.KeyPrefix).
					Value(&settings.KeyPrefix).
					Validate(func(s string) error {
						if strings.ContainsAny(s, "/\\ \t") {
							return fmt.Errorf("prefix cannot contain path separators or whitespace")
						}
						return nil
					}),
			),
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Key type").
					Options(keyTypeOptions...).
					Value(&settings.KeyType),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --non-interactive")
		}
	}

	if err := config.Write(settings, path); err != nil {
		return err
	}

	fmt.Printf("%s Created %s\n\n", ui.SuccessStyle().Render(ui.SymbolSuccess), path)
	fmt.Println("Next steps:")
	fmt.Println("  keyup provision <address>  - Generate a key and register the host")
	fmt.Println("  keyup doctor               - Verify the setup")

	return nil
}
