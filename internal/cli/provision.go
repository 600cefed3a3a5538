package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/benlindsay/keyup/internal/config"
	"github.com/benlindsay/keyup/internal/errors"
	"github.com/benlindsay/keyup/internal/provision"
	"github.com/benlindsay/keyup/internal/ui"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ProvisionOptions holds options for the provision command.
type ProvisionOptions struct {
	Address        string // Naming/comment token for the key (required)
	KeyType        string // Key type override; empty uses settings
	Force          bool   // Overwrite an existing key without asking
	NonInteractive bool   // Never prompt; fail instead

	// SSHDir and ConfigPath override the key directory and client config
	// path. Empty means the settings/defaults. Tests point these at temp
	// directories.
	SSHDir     string
	ConfigPath string

	// Out receives all command output. Nil means os.Stdout.
	Out io.Writer
}

// Provision runs the full provisioning sequence: directory bootstrap, key
// generation (with overwrite confirmation), config entry registration, and
// public key display. The first fatal error aborts; there are no retries
// and no rollback beyond the config backup.
func Provision(settings *config.Settings, opts ProvisionOptions) error {
	if err := config.ValidateAddress(opts.Address); err != nil {
		return err
	}

	keyType := opts.KeyType
	if keyType == "" {
		keyType = settings.KeyType
	}
	if !config.IsSupportedKeyType(keyType) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("'%s' isn't a valid key type", keyType),
			"Pick from: ed25519 (recommended), rsa, ecdsa")
	}

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

	fmt.Fprintf(out, "Provisioning SSH access to '%s' for %s\n\n", settings.Hostname, opts.Address)

	// Step 1: directory bootstrap
	if err := provision.EnsureSSHDir(sshDir); err != nil {
		return err
	}

	pair := provision.DeriveKeyPair(sshDir, settings.KeyPrefix, opts.Address)

	// Step 2: overwrite confirmation
	if pair.Exists() {
		if !opts.Force {
			if opts.NonInteractive || !isInteractive() {
				return errors.New(errors.ErrKeygen,
					"There's already a key at "+pair.PrivatePath,
					"Rerun with --force to replace it")
			}

			var overwrite bool
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Key '%s' already exists. Replace it?", pair.Name())).
						Description("The old key stops working everywhere it is registered").
						Value(&overwrite),
				),
			)

			if err := form.Run(); err != nil {
				return errors.WrapWithCode(err, errors.ErrKeygen,
					"Failed to get user input",
					"Rerun with --force to replace the key without asking")
			}

			if !overwrite {
				return errors.NewAborted("Keeping the existing key at " + pair.PrivatePath)
			}
		}

		if err := pair.Remove(); err != nil {
			return err
		}
	}

	// Step 3: key generation
	spinner := ui.NewSpinner("Generating " + keyType + " key")
	spinner.SetOutput(func(s string) { fmt.Fprint(out, s) })
	spinner.Start()

	if err := provision.Generate(pair, keyType); err != nil {
		spinner.Fail()
		return err
	}
	spinner.Success()

	// Step 4: config entry
	if err := registerHostEntry(settings, pair, configPath, out); err != nil {
		return err
	}

	// Step 5: show the public key for copy-paste
	pub, err := provision.ReadPublicKey(pair.PublicPath)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	if fp, algo, err := provision.Fingerprint(pub); err == nil {
		fmt.Fprintf(out, "Public key (%s, %s):\n\n", algo, fp)
	} else {
		fmt.Fprint(out, "Public key:\n\n")
	}
	fmt.Fprintln(out, pub)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Paste it at: https://%s/settings/keys\n", settings.Hostname)

	return nil
}

// registerHostEntry appends the host block unless one already exists.
// An existing block only gets a warning: rewriting a block the user may
// have edited by hand is worse than a stale IdentityFile.
func registerHostEntry(settings *config.Settings, pair provision.KeyPair, configPath string, out io.Writer) error {
	exists, err := provision.HasHostEntry(configPath, settings.Hostname)
	if err != nil {
		return err
	}

	if exists {
		fmt.Fprintf(out, "%s Entry for %s already in %s; leaving it alone\n",
			ui.WarningStyle().Render(ui.SymbolSkipped), settings.Hostname, configPath)
		fmt.Fprintf(out, "  If it points at an old key, update its IdentityFile line by hand\n")
		return nil
	}

	backup, err := provision.BackupConfig(configPath)
	if err != nil {
		return err
	}

	block := provision.HostBlock{
		Host:           settings.Hostname,
		HostName:       settings.Hostname,
		User:           settings.User,
		IdentityFile:   pair.PrivatePath,
		IdentitiesOnly: settings.IdentitiesOnly,
	}

	if err := provision.AppendHostBlock(configPath, block); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s Added entry for %s to %s\n",
		ui.SuccessStyle().Render(ui.SymbolSuccess), settings.Hostname, configPath)
	if backup != "" {
		fmt.Fprintf(out, "  %s\n", ui.MutedStyle().Render("previous config saved as "+filepath.Base(backup)))
	}

	return nil
}

// isInteractive reports whether stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
