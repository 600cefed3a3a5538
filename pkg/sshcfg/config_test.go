package sshcfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestParseFile_MissingFile(t *testing.T) {
	entries, err := ParseFile("/nonexistent/config")

	assert.NoError(t, err, "missing file should parse as empty")
	assert.Nil(t, entries)
}

func TestParseFile_SingleEntry(t *testing.T) {
	path := writeConfig(t, `Host github.ibm.com
    HostName github.ibm.com
    User git
    IdentityFile /tmp/keys/ghe-alice
    IdentitiesOnly yes
`)

	entries, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "github.ibm.com", entry.Alias)
	assert.Equal(t, "github.ibm.com", entry.Hostname)
	assert.Equal(t, "git", entry.User)
	assert.Equal(t, "/tmp/keys/ghe-alice", entry.IdentityFile)
	assert.Equal(t, "yes", entry.IdentitiesOnly)
}

func TestParseFile_SkipsWildcards(t *testing.T) {
	path := writeConfig(t, `Host *
    ServerAliveInterval 60

Host bastion-?
    User ops

Host github.ibm.com
    User git
`)

	entries, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "github.ibm.com", entries[0].Alias)
}

func TestParseFile_SortedByAlias(t *testing.T) {
	path := writeConfig(t, `Host zebra.example.com
    User git

Host apple.example.com
    User git
`)

	entries, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "apple.example.com", entries[0].Alias)
	assert.Equal(t, "zebra.example.com", entries[1].Alias)
}

func TestParseFile_ExpandsTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	path := writeConfig(t, `Host github.ibm.com
    IdentityFile ~/.ssh/ghe-alice
`)

	entries, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Join(home, ".ssh", "ghe-alice"), entries[0].IdentityFile)
}

func TestFindHost(t *testing.T) {
	path := writeConfig(t, `Host github.ibm.com
    HostName github.ibm.com
    User git
`)

	entry, err := FindHost(path, "github.ibm.com")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "git", entry.User)

	entry, err = FindHost(path, "gitlab.com")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestHasHost(t *testing.T) {
	path := writeConfig(t, `Host github.ibm.com
    User git
`)

	ok, err := HasHost(path, "github.ibm.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = HasHost(path, "github.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasHost_MissingFile(t *testing.T) {
	ok, err := HasHost("/nonexistent/config", "github.ibm.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEntry_Description(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  string
	}{
		{
			name: "full entry",
			entry: Entry{
				Alias:        "ghe",
				Hostname:     "github.ibm.com",
				User:         "git",
				IdentityFile: "/home/user/.ssh/ghe-alice",
			},
			want: "github.ibm.com, user: git, ghe-alice",
		},
		{
			name: "hostname same as alias omitted",
			entry: Entry{
				Alias:    "github.ibm.com",
				Hostname: "github.ibm.com",
				User:     "git",
			},
			want: "user: git",
		},
		{
			name:  "bare alias",
			entry: Entry{Alias: "github.ibm.com"},
			want:  "github.ibm.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.Description())
		})
	}
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()

	assert.Contains(t, path, ".ssh")
	assert.Equal(t, "config", filepath.Base(path))
}
