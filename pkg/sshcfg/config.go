// Package sshcfg reads the user's SSH client configuration.
//
// It wraps github.com/kevinburke/ssh_config with the small amount of
// normalization keyup needs: listing concrete host entries and answering
// whether a block for a given hostname already exists.
package sshcfg

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kevinburke/ssh_config"
)

// Entry represents a parsed host entry from SSH config.
type Entry struct {
	Alias          string // The Host pattern (alias)
	Hostname       string // The HostName value (actual host to connect to)
	User           string // The User value
	IdentityFile   string // The IdentityFile value, tilde-expanded
	IdentitiesOnly string // The IdentitiesOnly value ("yes"/"no" or empty)
}

// Description returns a user-friendly description of the entry.
func (e Entry) Description() string {
	parts := []string{}

	if e.Hostname != "" && e.Hostname != e.Alias {
		parts = append(parts, e.Hostname)
	}

	if e.User != "" {
		parts = append(parts, "user: "+e.User)
	}

	if e.IdentityFile != "" {
		parts = append(parts, filepath.Base(e.IdentityFile))
	}

	if len(parts) == 0 {
		return e.Alias
	}

	return strings.Join(parts, ", ")
}

// DefaultPath returns the per-user SSH client config path.
func DefaultPath() string {
	return filepath.Join(homeDir(), ".ssh", "config")
}

// Parse parses ~/.ssh/config and returns all concrete host entries.
func Parse() ([]Entry, error) {
	return ParseFile(DefaultPath())
}

// ParseFile parses the specified SSH config file. A missing file is not an
// error; it parses as no entries.
func ParseFile(path string) ([]Entry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	cfg, err := ssh_config.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	var entries []Entry
	seen := make(map[string]bool)

	for _, host := range cfg.Hosts {
		for _, pattern := range host.Patterns {
			alias := pattern.String()

			// Skip wildcards and special patterns
			if strings.Contains(alias, "*") || strings.Contains(alias, "?") {
				continue
			}

			if seen[alias] {
				continue
			}
			seen[alias] = true

			entry := Entry{Alias: alias}

			if hostname, _ := cfg.Get(alias, "HostName"); hostname != "" {
				entry.Hostname = hostname
			}

			if user, _ := cfg.Get(alias, "User"); user != "" {
				entry.User = user
			}

			if identity, _ := cfg.Get(alias, "IdentityFile"); identity != "" {
				entry.IdentityFile = expandPath(identity)
			}

			if only, _ := cfg.Get(alias, "IdentitiesOnly"); only != "" {
				entry.IdentitiesOnly = only
			}

			entries = append(entries, entry)
		}
	}

	// Sort by alias for consistent ordering
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Alias < entries[j].Alias
	})

	return entries, nil
}

// FindHost returns the entry whose alias matches host exactly, or nil.
func FindHost(path, host string) (*Entry, error) {
	entries, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].Alias == host {
			return &entries[i], nil
		}
	}
	return nil, nil
}

// HasHost reports whether the config file already contains a block whose
// Host pattern matches host exactly. Wildcard patterns don't count: the
// provisioning flow only ever writes exact aliases, and a `Host *` block
// is not the entry it is looking for.
func HasHost(path, host string) (bool, error) {
	entry, err := FindHost(path, host)
	if err != nil {
		return false, err
	}
	return entry != nil, nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}
