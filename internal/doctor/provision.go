package doctor

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/benlindsay/keyup/internal/config"
	"github.com/benlindsay/keyup/internal/provision"
	"github.com/benlindsay/keyup/pkg/sshcfg"
)

// KeygenToolCheck verifies that ssh-keygen is available on PATH.
type KeygenToolCheck struct{}

func (c *KeygenToolCheck) Name() string     { return "ssh_keygen" }
func (c *KeygenToolCheck) Category() string { return "TOOLS" }

func (c *KeygenToolCheck) Run() CheckResult {
	path, err := exec.LookPath("ssh-keygen")
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "ssh-keygen not found on PATH",
			Suggestion: "Install OpenSSH client tools",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "ssh-keygen: " + path,
	}
}

func (c *KeygenToolCheck) Fix() error { return nil }

// SSHDirCheck verifies the key storage directory exists with 0700 permissions.
type SSHDirCheck struct {
	Dir string
}

func (c *SSHDirCheck) Name() string     { return "ssh_dir" }
func (c *SSHDirCheck) Category() string { return "KEYS" }

func (c *SSHDirCheck) Run() CheckResult {
	info, err := os.Stat(c.Dir)
	if os.IsNotExist(err) {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    c.Dir + " does not exist",
			Suggestion: "It is created on first provision; run 'keyup provision <address>'",
			Fixable:    true,
		}
	}
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: fmt.Sprintf("Cannot access %s: %v", c.Dir, err),
		}
	}

	if !info.IsDir() {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    c.Dir + " exists but is not a directory",
			Suggestion: "Move the file out of the way",
		}
	}

	if perm := info.Mode().Perm(); perm != 0700 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("%s has mode %o, want 700", c.Dir, perm),
			Suggestion: "Run: chmod 700 " + c.Dir,
			Fixable:    true,
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: c.Dir + " (mode 700)",
	}
}

func (c *SSHDirCheck) Fix() error {
	return provision.EnsureSSHDir(c.Dir)
}

// ConfigPermsCheck verifies the SSH client config file has 0600 permissions.
type ConfigPermsCheck struct {
	ConfigPath string
}

func (c *ConfigPermsCheck) Name() string     { return "config_perms" }
func (c *ConfigPermsCheck) Category() string { return "SSHCFG" }

func (c *ConfigPermsCheck) Run() CheckResult {
	info, err := os.Stat(c.ConfigPath)
	if os.IsNotExist(err) {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "No config file yet",
		}
	}
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: fmt.Sprintf("Cannot access %s: %v", c.ConfigPath, err),
		}
	}

	if perm := info.Mode().Perm(); perm&0077 != 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("%s has mode %o, want 600", c.ConfigPath, perm),
			Suggestion: "Run: chmod 600 " + c.ConfigPath,
			Fixable:    true,
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: c.ConfigPath + " (mode 600)",
	}
}

func (c *ConfigPermsCheck) Fix() error {
	if _, err := os.Stat(c.ConfigPath); os.IsNotExist(err) {
		return nil
	}
	return os.Chmod(c.ConfigPath, 0600)
}

// HostEntryCheck verifies the host entry exists and its IdentityFile
// resolves to a key that is actually on disk.
type HostEntryCheck struct {
	ConfigPath string
	Host       string
}

func (c *HostEntryCheck) Name() string     { return "host_entry" }
func (c *HostEntryCheck) Category() string { return "SSHCFG" }

func (c *HostEntryCheck) Run() CheckResult {
	entry, err := sshcfg.FindHost(c.ConfigPath, c.Host)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Cannot parse %s: %v", c.ConfigPath, err),
			Suggestion: "Check the file for syntax errors: ssh -G " + c.Host,
		}
	}

	if entry == nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("No entry for %s", c.Host),
			Suggestion: "Run 'keyup provision <address>' to add one",
		}
	}

	if entry.IdentityFile == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Entry for %s has no IdentityFile", c.Host),
			Suggestion: "Add an IdentityFile line pointing at your key",
		}
	}

	if _, err := os.Stat(entry.IdentityFile); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Entry for %s points at missing key %s", c.Host, entry.IdentityFile),
			Suggestion: "Regenerate the key, or fix the IdentityFile line by hand",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%s -> %s", c.Host, entry.IdentityFile),
	}
}

func (c *HostEntryCheck) Fix() error { return nil }

// KeyPairsCheck looks for private keys missing their public half.
type KeyPairsCheck struct {
	Dir    string
	Prefix string
}

func (c *KeyPairsCheck) Name() string     { return "key_pairs" }
func (c *KeyPairsCheck) Category() string { return "KEYS" }

func (c *KeyPairsCheck) Run() CheckResult {
	pairs, err := provision.ListKeyPairs(c.Dir, c.Prefix)
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: fmt.Sprintf("Cannot list keys: %v", err),
		}
	}

	var orphaned []string
	for _, pair := range pairs {
		if _, err := os.Stat(pair.PublicPath); err != nil {
			orphaned = append(orphaned, pair.Name())
		}
	}

	if len(orphaned) > 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Private keys without a public half: %v", orphaned),
			Suggestion: "Recover with: ssh-keygen -y -f <private-key> > <private-key>.pub",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%d key pair%s intact", len(pairs), pluralize(len(pairs))),
	}
}

func (c *KeyPairsCheck) Fix() error { return nil }

// NewProvisionChecks creates the full check set for the given settings.
func NewProvisionChecks(settings *config.Settings, sshDir, configPath string) []Check {
	return []Check{
		&KeygenToolCheck{},
		&SSHDirCheck{Dir: sshDir},
		&KeyPairsCheck{Dir: sshDir, Prefix: settings.KeyPrefix},
		&ConfigPermsCheck{ConfigPath: configPath},
		&HostEntryCheck{ConfigPath: configPath, Host: settings.Hostname},
	}
}
