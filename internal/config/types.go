package config

// CurrentConfigVersion is the schema version for the settings file.
// Increment when making breaking changes to the settings structure.
const CurrentConfigVersion = 1

// Settings represents the complete keyup configuration.
// Every field has a default, so the tool works with no settings file at all.
type Settings struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Hostname is the Host/HostName used in the SSH config entry.
	Hostname string `yaml:"hostname" mapstructure:"hostname"`

	// User is the SSH user for the config entry. Git hosting services
	// authenticate everyone as a shared user (usually "git").
	User string `yaml:"user" mapstructure:"user"`

	// KeyPrefix is prepended to the address when deriving key file names,
	// e.g. prefix "ghe" and address "jane@example.com" yields
	// ~/.ssh/ghe-jane@example.com.
	KeyPrefix string `yaml:"key_prefix" mapstructure:"key_prefix"`

	// KeyType is the ssh-keygen algorithm (ed25519, rsa, ecdsa).
	KeyType string `yaml:"key_type" mapstructure:"key_type"`

	// SSHDir overrides the key storage directory. Empty means ~/.ssh.
	SSHDir string `yaml:"ssh_dir" mapstructure:"ssh_dir"`

	// IdentitiesOnly controls the IdentitiesOnly flag in the config entry.
	// Keeping it on stops the agent from offering unrelated keys.
	IdentitiesOnly bool `yaml:"identities_only" mapstructure:"identities_only"`
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Version:        CurrentConfigVersion,
		Hostname:       "github.ibm.com",
		User:           "git",
		KeyPrefix:      "ghe",
		KeyType:        "ed25519",
		IdentitiesOnly: true,
	}
}
