package cli

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/benlindsay/keyup/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctor_HealthySetup(t *testing.T) {
	if _, err := exec.LookPath("ssh-keygen"); err != nil {
		t.Skip("ssh-keygen not available")
	}

	settings := config.DefaultSettings()
	opts, _ := provisionEnv(t, "alice")
	require.NoError(t, Provision(settings, opts))

	out := &bytes.Buffer{}
	err := Doctor(settings, DoctorOptions{
		SSHDir:     opts.SSHDir,
		ConfigPath: opts.ConfigPath,
		Out:        out,
	})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Everything looks good")
	assert.Contains(t, out.String(), "TOOLS")
	assert.Contains(t, out.String(), "KEYS")
	assert.Contains(t, out.String(), "SSHCFG")
}

func TestDoctor_BrokenIdentityFileFails(t *testing.T) {
	settings := config.DefaultSettings()
	sshDir := t.TempDir()
	configPath := filepath.Join(sshDir, "config")

	content := "Host github.ibm.com\n    IdentityFile " + filepath.Join(sshDir, "ghe-gone") + "\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0600))

	out := &bytes.Buffer{}
	err := Doctor(settings, DoctorOptions{
		SSHDir:     sshDir,
		ConfigPath: configPath,
		Out:        out,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Some checks failed")
	assert.Contains(t, out.String(), "missing key")
}

func TestDoctor_FixTightensPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}

	settings := config.DefaultSettings()
	sshDir := filepath.Join(t.TempDir(), ".ssh")
	require.NoError(t, os.Mkdir(sshDir, 0755))

	configPath := filepath.Join(sshDir, "config")
	require.NoError(t, os.WriteFile(configPath, []byte("# empty\n"), 0644))

	out := &bytes.Buffer{}
	_ = Doctor(settings, DoctorOptions{
		Fix:        true,
		SSHDir:     sshDir,
		ConfigPath: configPath,
		Out:        out,
	})

	dirInfo, err := os.Stat(sshDir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), dirInfo.Mode().Perm())

	cfgInfo, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), cfgInfo.Mode().Perm())
}

func TestDoctor_ReportsFixableCount(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}

	settings := config.DefaultSettings()
	sshDir := filepath.Join(t.TempDir(), ".ssh")
	require.NoError(t, os.Mkdir(sshDir, 0755))

	out := &bytes.Buffer{}
	_ = Doctor(settings, DoctorOptions{
		SSHDir:     sshDir,
		ConfigPath: filepath.Join(sshDir, "config"),
		Out:        out,
	})

	assert.Contains(t, out.String(), "rerun with --fix")
}
