package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/benlindsay/keyup/internal/config"
	"github.com/benlindsay/keyup/internal/errors"
	"github.com/benlindsay/keyup/internal/provision"
	"github.com/benlindsay/keyup/internal/ui"
)

// ShowOptions holds options for the show command.
type ShowOptions struct {
	Address string // Empty opens the interactive picker
	SSHDir  string
	Out     io.Writer
}

// Show prints the public key for a provisioned address.
func Show(settings *config.Settings, opts ShowOptions) error {
	sshDir := opts.SSHDir
	if sshDir == "" {
		sshDir = settings.SSHDir
	}
	if sshDir == "" {
		sshDir = provision.DefaultSSHDir()
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	address := opts.Address
	if address == "" {
		if !isInteractive() {
			return errors.New(errors.ErrKeygen,
				"No address specified",
				"Usage: keyup show <address>")
		}

		picked, err := pickProvisionedKey(settings, sshDir)
		if err != nil {
			return err
		}
		if picked == "" {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
		address = picked
	}

	pair := provision.DeriveKeyPair(sshDir, settings.KeyPrefix, address)
	pub, err := provision.ReadPublicKey(pair.PublicPath)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrKeygen,
			fmt.Sprintf("No provisioned key for '%s'", address),
			"Run 'keyup list' to see what exists, or 'keyup provision' to create one")
	}

	fmt.Fprintln(out, pub)
	return nil
}

// pickProvisionedKey opens the interactive picker and returns the chosen
// address, or empty string on cancel.
func pickProvisionedKey(settings *config.Settings, sshDir string) (string, error) {
	pairs, err := provision.ListKeyPairs(sshDir, settings.KeyPrefix)
	if err != nil {
		return "", err
	}

	choices := make([]ui.KeyChoice, 0, len(pairs))
	for _, pair := range pairs {
		choice := ui.KeyChoice{
			Address: pair.Address,
			Path:    pair.PrivatePath,
		}
		if pub, err := provision.ReadPublicKey(pair.PublicPath); err == nil {
			if fp, algo, err := provision.Fingerprint(pub); err == nil {
				choice.Fingerprint = fp
				choice.Algorithm = algo
			}
		}
		choices = append(choices, choice)
	}

	picked, err := ui.PickKey(choices)
	if err != nil {
		return "", err
	}
	if picked == nil {
		return "", nil
	}
	return picked.Address, nil
}
