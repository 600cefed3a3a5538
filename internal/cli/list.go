package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/benlindsay/keyup/internal/config"
	"github.com/benlindsay/keyup/internal/provision"
	"github.com/benlindsay/keyup/internal/ui"
	"github.com/benlindsay/keyup/pkg/sshcfg"
	"github.com/charmbracelet/bubbles/table"
)

// ListOptions holds options for the list command.
type ListOptions struct {
	SSHDir     string
	ConfigPath string
	Out        io.Writer
}

// List prints the provisioned key pairs and the config entry status.
func List(settings *config.Settings, opts ListOptions) error {
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

	pairs, err := provision.ListKeyPairs(sshDir, settings.KeyPrefix)
	if err != nil {
		return err
	}

	entry, err := sshcfg.FindHost(configPath, settings.Hostname)
	if err != nil {
		return err
	}

	if len(pairs) == 0 {
		fmt.Fprintf(out, "No provisioned keys in %s\n", sshDir)
		fmt.Fprintln(out, "Run 'keyup provision <address>' to create one")
		return nil
	}

	rows := make([]table.Row, 0, len(pairs))
	for _, pair := range pairs {
		algo := "-"
		fp := "-"
		if pub, err := provision.ReadPublicKey(pair.PublicPath); err == nil {
			if f, a, err := provision.Fingerprint(pub); err == nil {
				algo, fp = a, f
			}
		}

		inConfig := ""
		if entry != nil && entry.IdentityFile == pair.PrivatePath {
			inConfig = ui.SymbolSuccess
		}

		rows = append(rows, table.Row{pair.Address, algo, fp, inConfig})
	}

	t := ui.NewTable([]ui.TableColumn{
		{Title: "ADDRESS", Width: 28},
		{Title: "TYPE", Width: 12},
		{Title: "FINGERPRINT", Width: 50},
		{Title: "CONFIG", Width: 6},
	}, rows)

	fmt.Fprintln(out, t.View())

	if entry == nil {
		fmt.Fprintf(out, "\nNo entry for %s in %s\n", settings.Hostname, configPath)
	} else {
		fmt.Fprintf(out, "\n%s: %s\n", settings.Hostname, entry.Description())
	}

	return nil
}
