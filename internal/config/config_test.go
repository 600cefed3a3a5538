package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, CurrentConfigVersion, s.Version)
	assert.Equal(t, "github.ibm.com", s.Hostname)
	assert.Equal(t, "git", s.User)
	assert.Equal(t, "ghe", s.KeyPrefix)
	assert.Equal(t, "ed25519", s.KeyType)
	assert.Empty(t, s.SSHDir, "empty means ~/.ssh")
	assert.True(t, s.IdentitiesOnly)
}

func TestDefaultSettings_Valid(t *testing.T) {
	assert.NoError(t, Validate(DefaultSettings()),
		"built-in defaults must pass their own validation")
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	content := `version: 1
hostname: git.example.com
user: git
key_prefix: work
key_type: rsa
identities_only: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "git.example.com", s.Hostname)
	assert.Equal(t, "work", s.KeyPrefix)
	assert.Equal(t, "rsa", s.KeyType)
	assert.False(t, s.IdentitiesOnly)
}

func TestLoad_PartialFileGetsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	require.NoError(t, os.WriteFile(path, []byte("hostname: git.example.com\n"), 0644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "git.example.com", s.Hostname)
	assert.Equal(t, "git", s.User, "unset fields fall back to defaults")
	assert.Equal(t, "ghe", s.KeyPrefix)
	assert.Equal(t, "ed25519", s.KeyType)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	require.NoError(t, os.WriteFile(path, []byte("hostname: [unclosed\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidSettings(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	require.NoError(t, os.WriteFile(path, []byte("key_type: dsa\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "isn't a valid key type")
}

func TestFind_ExplicitMissing(t *testing.T) {
	_, err := Find("/nonexistent/config.yaml")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFind_ExplicitExists(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hostname: git.example.com\n"), 0644))

	found, err := Find(path)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestLoadOrDefault_NoFile(t *testing.T) {
	// Point HOME at an empty directory so the global path doesn't exist
	t.Setenv("HOME", t.TempDir())

	s, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestWrite_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	s := DefaultSettings()
	s.Hostname = "git.example.com"
	s.KeyPrefix = "work"

	require.NoError(t, Write(s, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestWrite_RejectsInvalidSettings(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	s := DefaultSettings()
	s.Hostname = ""

	err := Write(s, path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "hostname must not be empty")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "invalid settings should never hit disk")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(s *Settings) {},
		},
		{
			name:    "empty hostname",
			mutate:  func(s *Settings) { s.Hostname = "" },
			wantErr: "hostname must not be empty",
		},
		{
			name:    "whitespace hostname",
			mutate:  func(s *Settings) { s.Hostname = "   " },
			wantErr: "hostname must not be empty",
		},
		{
			name:    "empty user",
			mutate:  func(s *Settings) { s.User = "" },
			wantErr: "user must not be empty",
		},
		{
			name:    "prefix with slash",
			mutate:  func(s *Settings) { s.KeyPrefix = "a/b" },
			wantErr: "path separators or whitespace",
		},
		{
			name:    "prefix with space",
			mutate:  func(s *Settings) { s.KeyPrefix = "a b" },
			wantErr: "path separators or whitespace",
		},
		{
			name:    "prefix starts with dot",
			mutate:  func(s *Settings) { s.KeyPrefix = ".ghe" },
			wantErr: "must not start with a dot",
		},
		{
			name:    "unsupported key type",
			mutate:  func(s *Settings) { s.KeyType = "dsa" },
			wantErr: "isn't a valid key type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)

			err := Validate(s)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{name: "plain username", address: "alice", wantErr: false},
		{name: "email address", address: "alice@example.com", wantErr: false},
		{name: "with dots and dashes", address: "alice.b-c", wantErr: false},
		{name: "empty", address: "", wantErr: true},
		{name: "whitespace only", address: "   ", wantErr: true},
		{name: "contains slash", address: "a/b", wantErr: true},
		{name: "contains backslash", address: `a\b`, wantErr: true},
		{name: "contains space", address: "a b", wantErr: true},
		{name: "contains tab", address: "a\tb", wantErr: true},
		{name: "leading dot", address: ".alice", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.address)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsSupportedKeyType(t *testing.T) {
	assert.True(t, IsSupportedKeyType("ed25519"))
	assert.True(t, IsSupportedKeyType("rsa"))
	assert.True(t, IsSupportedKeyType("ecdsa"))
	assert.False(t, IsSupportedKeyType("dsa"))
	assert.False(t, IsSupportedKeyType(""))
}

func TestGlobalConfigPath(t *testing.T) {
	path := GlobalConfigPath()

	assert.Contains(t, path, ".config")
	assert.Contains(t, path, "keyup")
	assert.Equal(t, "config.yaml", filepath.Base(path))
}
