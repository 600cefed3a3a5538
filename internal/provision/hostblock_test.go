package provision

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBlock(identityFile string) HostBlock {
	return HostBlock{
		Host:           "github.ibm.com",
		HostName:       "github.ibm.com",
		User:           "git",
		IdentityFile:   identityFile,
		IdentitiesOnly: true,
	}
}

func TestHostBlock_Render(t *testing.T) {
	block := testBlock("/tmp/keys/ghe-alice")
	rendered := block.Render()

	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	require.Len(t, lines, 5)

	assert.Equal(t, "Host github.ibm.com", lines[0])
	assert.Equal(t, "    HostName github.ibm.com", lines[1])
	assert.Equal(t, "    User git", lines[2])
	assert.Equal(t, "    IdentityFile /tmp/keys/ghe-alice", lines[3])
	assert.Equal(t, "    IdentitiesOnly yes", lines[4])
}

func TestHostBlock_Render_NoIdentitiesOnly(t *testing.T) {
	block := testBlock("/tmp/keys/ghe-alice")
	block.IdentitiesOnly = false

	rendered := block.Render()

	assert.NotContains(t, rendered, "IdentitiesOnly")
}

func TestHostBlock_Render_ContractsHomePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	block := testBlock(filepath.Join(home, ".ssh", "ghe-alice"))
	rendered := block.Render()

	assert.Contains(t, rendered, "IdentityFile ~/.ssh/ghe-alice")
}

func TestAppendHostBlock_CreatesFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config")
	block := testBlock("/tmp/keys/ghe-alice")

	require.NoError(t, AppendHostBlock(configPath, block))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, block.Render(), string(data))
}

func TestAppendHostBlock_Mode0600(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config")

	// An existing file with loose permissions gets tightened
	require.NoError(t, os.WriteFile(configPath, []byte("Host other\n"), 0644))
	require.NoError(t, AppendHostBlock(configPath, testBlock("/tmp/keys/ghe-alice")))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestAppendHostBlock_PreservesExistingContent(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config")

	existing := "Host example.com\n    User deploy\n"
	require.NoError(t, os.WriteFile(configPath, []byte(existing), 0600))

	block := testBlock("/tmp/keys/ghe-alice")
	require.NoError(t, AppendHostBlock(configPath, block))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), existing),
		"existing content should be untouched")
	assert.Contains(t, string(data), "Host github.ibm.com")
	assert.Contains(t, string(data), existing+"\nHost github.ibm.com",
		"blocks should be separated by a blank line")
}

func TestAppendHostBlock_AddsNewlineWhenMissing(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config")

	// No trailing newline
	require.NoError(t, os.WriteFile(configPath, []byte("Host example.com"), 0600))
	require.NoError(t, AppendHostBlock(configPath, testBlock("/tmp/keys/ghe-alice")))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Host example.com\n\nHost github.ibm.com")
}

func TestHasHostEntry(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config")

	ok, err := HasHostEntry(configPath, "github.ibm.com")
	require.NoError(t, err)
	assert.False(t, ok, "missing file means no entry")

	require.NoError(t, AppendHostBlock(configPath, testBlock("/tmp/keys/ghe-alice")))

	ok, err = HasHostEntry(configPath, "github.ibm.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = HasHostEntry(configPath, "github.com")
	require.NoError(t, err)
	assert.False(t, ok, "different host should not match")
}

func TestHasHostEntry_WildcardDoesNotCount(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config")

	require.NoError(t, os.WriteFile(configPath, []byte("Host *\n    User git\n"), 0600))

	ok, err := HasHostEntry(configPath, "github.ibm.com")
	require.NoError(t, err)
	assert.False(t, ok, "a wildcard block is not an entry for the host")
}

func TestBackupConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config")

	content := "Host example.com\n    User deploy\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0600))

	backupPath, err := BackupConfig(configPath)
	require.NoError(t, err)
	require.NotEmpty(t, backupPath)

	assert.True(t, strings.HasPrefix(backupPath, configPath+"."))
	assert.True(t, strings.HasSuffix(backupPath, ".bak"))

	data, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestBackupConfig_MissingFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config")

	backupPath, err := BackupConfig(configPath)
	require.NoError(t, err)
	assert.Empty(t, backupPath, "nothing to back up should not error")
}
