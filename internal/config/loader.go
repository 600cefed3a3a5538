package config

import (
	"os"
	"path/filepath"

	"github.com/benlindsay/keyup/internal/errors"
	"github.com/spf13/viper"
)

const (
	// GlobalConfigDir is the directory for the settings file, under $HOME.
	GlobalConfigDir = ".config/keyup"
	// GlobalConfigFile is the settings file name.
	GlobalConfigFile = "config.yaml"
)

// GlobalConfigPath returns the full path of the settings file.
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(GlobalConfigDir, GlobalConfigFile)
	}
	return filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
}

// Find locates the settings file using the search order:
//  1. Explicit path (from --config flag)
//  2. ~/.config/keyup/config.yaml
//
// Returns the path to the settings file, or empty string if not found.
// An empty result is not an error; defaults apply.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	global := GlobalConfigPath()
	if _, err := os.Stat(global); err == nil {
		return global, nil
	}

	return "", nil
}

// Load reads settings from the specified path, applying defaults for
// anything the file does not set.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'keyup init' to create one, or specify a path with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to parse config file",
			"Check the YAML structure matches the documented settings")
	}

	if err := Validate(&s); err != nil {
		return nil, err
	}

	return &s, nil
}

// LoadOrDefault resolves the settings to use for a command: the explicit
// --config path, the global settings file, or built-in defaults when
// neither exists.
func LoadOrDefault(explicit string) (*Settings, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return DefaultSettings(), nil
	}
	return Load(path)
}

func setDefaults(v *viper.Viper) {
	d := DefaultSettings()
	v.SetDefault("version", d.Version)
	v.SetDefault("hostname", d.Hostname)
	v.SetDefault("user", d.User)
	v.SetDefault("key_prefix", d.KeyPrefix)
	v.SetDefault("key_type", d.KeyType)
	v.SetDefault("ssh_dir", d.SSHDir)
	v.SetDefault("identities_only", d.IdentitiesOnly)
}
