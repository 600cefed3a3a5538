package config

import (
	"os"
	"path/filepath"

	"github.com/benlindsay/keyup/internal/errors"
	"gopkg.in/yaml.v3"
)

// configHeader is prepended to generated settings files.
const configHeader = `# keyup configuration
# Run 'keyup provision <address>' to generate a key and register the host.
# Delete this file to fall back to the built-in defaults.

`

// Write marshals settings to YAML and writes them to path, creating parent
// directories as needed.
func Write(s *Settings, path string) error {
	if err := Validate(s); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to create config directory: "+dir,
			"Check permissions on "+filepath.Dir(dir))
	}

	content := configHeader + string(data)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file: "+path,
			"Check directory permissions")
	}

	return nil
}
