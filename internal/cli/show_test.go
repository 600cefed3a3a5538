package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/benlindsay/keyup/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShow_PrintsKeyVerbatim(t *testing.T) {
	settings := config.DefaultSettings()
	sshDir := t.TempDir()

	pubContent := "ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIFakeKeyData alice@example.com"
	require.NoError(t, os.WriteFile(
		filepath.Join(sshDir, "ghe-alice.pub"), []byte(pubContent+"\n"), 0600))

	out := &bytes.Buffer{}
	err := Show(settings, ShowOptions{
		Address: "alice",
		SSHDir:  sshDir,
		Out:     out,
	})

	require.NoError(t, err)
	assert.Equal(t, pubContent+"\n", out.String())
}

func TestShow_UnknownAddress(t *testing.T) {
	settings := config.DefaultSettings()

	err := Show(settings, ShowOptions{
		Address: "nobody",
		SSHDir:  t.TempDir(),
		Out:     &bytes.Buffer{},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "No provisioned key for 'nobody'")
	assert.Contains(t, err.Error(), "keyup list")
}

func TestShow_NoAddressNonInteractive(t *testing.T) {
	// Test stdin is not a TTY, so the picker path is unreachable and the
	// empty address falls through to the usage error.
	settings := config.DefaultSettings()

	err := Show(settings, ShowOptions{
		SSHDir: t.TempDir(),
		Out:    &bytes.Buffer{},
	})

	if isInteractive() {
		t.Skip("stdin is a terminal")
	}

	require.Error(t, err)
	assert.Contains(t, err.Error(), "No address specified")
}
