package provision

import (
	"os"
	"path/filepath"

	"github.com/benlindsay/keyup/internal/errors"
)

// DefaultSSHDir returns the per-user SSH directory.
func DefaultSSHDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.Getenv("HOME"), ".ssh")
	}
	return filepath.Join(home, ".ssh")
}

// EnsureSSHDir creates the key storage directory with mode 0700 if it does
// not exist, and tightens the permissions if an existing directory is more
// permissive. The SSH client refuses keys in group-readable directories.
func EnsureSSHDir(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return errors.WrapWithCode(err, errors.ErrKeygen,
				"Failed to create SSH directory: "+dir,
				"Check permissions on "+filepath.Dir(dir))
		}
		return nil
	}
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrKeygen,
			"Cannot access SSH directory: "+dir,
			"Check permissions on "+filepath.Dir(dir))
	}

	if !info.IsDir() {
		return errors.New(errors.ErrKeygen,
			dir+" exists but is not a directory",
			"Move the file out of the way and rerun")
	}

	if info.Mode().Perm() != 0700 {
		if err := os.Chmod(dir, 0700); err != nil {
			return errors.WrapWithCode(err, errors.ErrKeygen,
				"Failed to tighten permissions on "+dir,
				"Run: chmod 700 "+dir)
		}
	}

	return nil
}
