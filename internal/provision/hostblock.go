package provision

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/benlindsay/keyup/internal/errors"
	"github.com/benlindsay/keyup/internal/logger"
	"github.com/benlindsay/keyup/pkg/sshcfg"
)

// HostBlock is the SSH config entry keyup appends for the target host.
type HostBlock struct {
	Host           string // Host alias (same as the hostname for Git servers)
	HostName       string // Actual host to connect to
	User           string // SSH user (usually "git")
	IdentityFile   string // Private key path
	IdentitiesOnly bool
}

// Render produces the config file text for the block. The identity path is
// written in ~/ form when it sits under the home directory, matching what
// people write by hand.
func (b HostBlock) Render() string {
	var sb strings.Builder
	sb.WriteString("Host " + b.Host + "\n")
	sb.WriteString("    HostName " + b.HostName + "\n")
	sb.WriteString("    User " + b.User + "\n")
	sb.WriteString("    IdentityFile " + contractHome(b.IdentityFile) + "\n")
	if b.IdentitiesOnly {
		sb.WriteString("    IdentitiesOnly yes\n")
	}
	return sb.String()
}

// HasHostEntry reports whether the config file already contains a block for
// the host. An existing block is never rewritten, even when its
// IdentityFile points at a different key; callers warn and leave the fix to
// the user.
func HasHostEntry(configPath, host string) (bool, error) {
	ok, err := sshcfg.HasHost(configPath, host)
	if err != nil {
		return false, errors.WrapWithCode(err, errors.ErrSSHCfg,
			"Failed to parse "+configPath,
			"Check the file for syntax errors: ssh -G "+host)
	}
	return ok, nil
}

// BackupConfig copies the config file aside with a timestamp suffix before
// it gets modified. Returns the backup path, or empty string when there was
// nothing to back up.
func BackupConfig(configPath string) (string, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.WrapWithCode(err, errors.ErrSSHCfg,
			"Failed to read "+configPath,
			"Check file permissions")
	}

	backupPath := fmt.Sprintf("%s.%s.bak", configPath, time.Now().Format("20060102-150405"))
	if err := os.WriteFile(backupPath, data, 0600); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrSSHCfg,
			"Failed to write backup: "+backupPath,
			"Check permissions on "+filepath.Dir(configPath))
	}

	logger.Default().Debug("backed up %s to %s", configPath, backupPath)
	return backupPath, nil
}

// AppendHostBlock appends the block to the config file, creating the file
// if needed, and tightens the file mode to 0600. The caller is responsible
// for checking HasHostEntry first; this function appends unconditionally.
func AppendHostBlock(configPath string, block HostBlock) error {
	existing, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return errors.WrapWithCode(err, errors.ErrSSHCfg,
			"Failed to read "+configPath,
			"Check file permissions")
	}

	var sb strings.Builder
	sb.Write(existing)
	if len(existing) > 0 {
		if !strings.HasSuffix(string(existing), "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(block.Render())

	if err := os.WriteFile(configPath, []byte(sb.String()), 0600); err != nil {
		return errors.WrapWithCode(err, errors.ErrSSHCfg,
			"Failed to write "+configPath,
			"Check permissions on "+filepath.Dir(configPath))
	}

	// WriteFile only applies the mode on create; an existing file keeps its
	// old bits.
	if err := os.Chmod(configPath, 0600); err != nil {
		return errors.WrapWithCode(err, errors.ErrSSHCfg,
			"Failed to tighten permissions on "+configPath,
			"Run: chmod 600 "+configPath)
	}

	logger.Default().Debug("appended host block for %s to %s", block.Host, configPath)
	return nil
}

func contractHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+string(os.PathSeparator)) {
		return "~/" + filepath.ToSlash(strings.TrimPrefix(path, home+string(os.PathSeparator)))
	}
	return path
}
