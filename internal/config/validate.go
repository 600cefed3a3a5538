package config

import (
	"fmt"
	"strings"

	"github.com/benlindsay/keyup/internal/errors"
)

// SupportedKeyTypes lists the ssh-keygen algorithms keyup will drive.
var SupportedKeyTypes = []string{"ed25519", "rsa", "ecdsa"}

// IsSupportedKeyType reports whether t is a key type keyup can generate.
func IsSupportedKeyType(t string) bool {
	for _, kt := range SupportedKeyTypes {
		if t == kt {
			return true
		}
	}
	return false
}

// Validate checks settings for values that would produce broken key files
// or config entries.
func Validate(s *Settings) error {
	if strings.TrimSpace(s.Hostname) == "" {
		return errors.New(errors.ErrConfig,
			"hostname must not be empty",
			"Set 'hostname' to the Git server you are provisioning access for")
	}

	if strings.TrimSpace(s.User) == "" {
		return errors.New(errors.ErrConfig,
			"user must not be empty",
			"Git hosting services usually authenticate as 'git'")
	}

	if err := checkNameToken("key_prefix", s.KeyPrefix); err != nil {
		return err
	}

	if !IsSupportedKeyType(s.KeyType) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("'%s' isn't a valid key type", s.KeyType),
			"Pick from: ed25519 (recommended), rsa, ecdsa")
	}

	return nil
}

// ValidateAddress checks the address argument. The address is only a naming
// and comment token, never dialed, so the rules are about filename safety.
func ValidateAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return errors.New(errors.ErrConfig,
			"address must not be empty",
			"Pass the email or username the key should be labeled with")
	}
	return checkNameToken("address", address)
}

func checkNameToken(field, value string) error {
	if value == "" {
		return errors.New(errors.ErrConfig,
			field+" must not be empty",
			"")
	}
	if strings.ContainsAny(value, "/\\ \t\n") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s '%s' contains path separators or whitespace", field, value),
			"Key file names are derived from this value; keep it to a plain token")
	}
	if strings.HasPrefix(value, ".") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s '%s' must not start with a dot", field, value),
			"Dotfiles in ~/.ssh are easy to lose track of")
	}
	return nil
}
