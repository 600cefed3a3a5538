package cli

import (
	"os"

	"github.com/benlindsay/keyup/internal/config"
	"github.com/benlindsay/keyup/internal/errors"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	provisionTypeFlag    string
	provisionForce       bool
	provisionNonInteract bool
	doctorFix            bool
	initForce            bool
)

// provisionCmd generates a key pair and registers the host entry
var provisionCmd = &cobra.Command{
	Use:   "provision <address>",
	Short: "Generate an SSH key and register the host entry",
	Long: `Generate an SSH key pair for the given address and register a host
entry in ~/.ssh/config for your Git server.

The address is only a naming and comment token (usually your email or
username); it is embedded in the key file name and the key comment so
you can tell your keys apart later.

An existing key for the same address is only replaced after
confirmation. An existing host entry is never rewritten; keyup warns
and leaves it alone.

Examples:
  keyup provision jane@example.com
  keyup provision jane@example.com --type rsa
  keyup provision jane@example.com --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadOrDefault(configFlag)
		if err != nil {
			return err
		}
		return Provision(settings, ProvisionOptions{
			Address:        args[0],
			KeyType:        provisionTypeFlag,
			Force:          provisionForce,
			NonInteractive: provisionNonInteract,
		})
	},
}

// listCmd shows provisioned keys and the config entry status
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List provisioned keys and the config entry",
	Long: `List the key pairs keyup has provisioned and whether the host entry
in ~/.ssh/config exists and which key it points at.

Examples:
  keyup list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadOrDefault(configFlag)
		if err != nil {
			return err
		}
		return List(settings, ListOptions{})
	},
}

// showCmd prints the public key for an address
var showCmd = &cobra.Command{
	Use:   "show [address]",
	Short: "Print the public key for an address",
	Long: `Print the public key for a provisioned address, ready to paste into
the Git server's key settings page.

With no address in an interactive terminal, opens a picker over the
provisioned keys.

Examples:
  keyup show jane@example.com
  keyup show`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadOrDefault(configFlag)
		if err != nil {
			return err
		}
		opts := ShowOptions{}
		if len(args) > 0 {
			opts.Address = args[0]
		}
		return Show(settings, opts)
	},
}

// doctorCmd diagnoses provisioning issues
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose key and config issues",
	Long: `Run diagnostic checks to identify common setup issues.

Checks:
  - ssh-keygen availability
  - SSH directory permissions
  - Key pair integrity
  - Config file permissions
  - Host entry and its IdentityFile

Examples:
  keyup doctor
  keyup doctor --fix`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadOrDefault(configFlag)
		if err != nil {
			return err
		}
		return Doctor(settings, DoctorOptions{Fix: doctorFix})
	},
}

// initCmd writes the global settings file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the keyup settings file",
	Long: `Create the global settings file (~/.config/keyup/config.yaml) with
interactive prompts.

keyup works without a settings file; run init only when the defaults
(hostname, user, key prefix, key type) don't fit.

Examples:
  keyup init
  keyup init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(InitOptions{Force: initForce})
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for keyup.

Examples:
  # Bash
  keyup completion bash > /etc/bash_completion.d/keyup

  # Zsh
  keyup completion zsh > "${fpath[1]}/_keyup"

  # Fish
  keyup completion fish > ~/.config/fish/completions/keyup.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrExec,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// provision command flags
	provisionCmd.Flags().StringVar(&provisionTypeFlag, "type", "", "key type (ed25519, rsa, ecdsa)")
	provisionCmd.Flags().BoolVarP(&provisionForce, "force", "f", false, "overwrite an existing key without asking")
	provisionCmd.Flags().BoolVar(&provisionNonInteract, "non-interactive", false, "never prompt; fail instead")

	// doctor command flags
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "attempt to fix fixable issues")

	// init command flags
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing settings file")

	// Register all commands
	rootCmd.AddCommand(provisionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}
