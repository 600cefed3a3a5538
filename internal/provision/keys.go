package provision

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/benlindsay/keyup/internal/errors"
	"golang.org/x/crypto/ssh"
)

// KeyPair identifies a provisioned key pair on disk. The file name is
// derived deterministically from the configured prefix and the address the
// user supplied, so the same address always maps to the same files.
type KeyPair struct {
	Address     string // Naming/comment token the pair was generated for
	PrivatePath string // Full path to private key
	PublicPath  string // Path to public key
}

// DeriveKeyPair computes the key pair paths for an address.
func DeriveKeyPair(sshDir, prefix, address string) KeyPair {
	name := prefix + "-" + address
	private := filepath.Join(sshDir, name)
	return KeyPair{
		Address:     address,
		PrivatePath: private,
		PublicPath:  private + ".pub",
	}
}

// Name returns the base file name of the private key.
func (k KeyPair) Name() string {
	return filepath.Base(k.PrivatePath)
}

// Exists reports whether either half of the pair is already on disk.
func (k KeyPair) Exists() bool {
	if _, err := os.Stat(k.PrivatePath); err == nil {
		return true
	}
	if _, err := os.Stat(k.PublicPath); err == nil {
		return true
	}
	return false
}

// Remove deletes both halves of the pair. Missing files are not an error;
// Remove is the pre-overwrite cleanup step.
func (k KeyPair) Remove() error {
	for _, path := range []string{k.PrivatePath, k.PublicPath} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.WrapWithCode(err, errors.ErrKeygen,
				"Failed to remove existing key: "+path,
				"Check file permissions in "+filepath.Dir(path))
		}
	}
	return nil
}

// Generate creates the key pair using ssh-keygen with an empty passphrase
// and the address as the key comment.
func Generate(pair KeyPair, keyType string) error {
	if keyType == "" {
		keyType = "ed25519"
	}

	validTypes := map[string]bool{
		"ed25519": true,
		"rsa":     true,
		"ecdsa":   true,
	}
	if !validTypes[keyType] {
		return errors.New(errors.ErrKeygen,
			fmt.Sprintf("'%s' isn't a valid key type", keyType),
			"Pick from: ed25519 (recommended), rsa, ecdsa")
	}

	args := []string{
		"-t", keyType,
		"-f", pair.PrivatePath,
		"-N", "", // Empty passphrase (user can add one later with ssh-keygen -p)
		"-C", pair.Address,
	}

	// For RSA, specify key size
	if keyType == "rsa" {
		args = append(args, "-b", "4096")
	}

	cmd := exec.Command("ssh-keygen", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrKeygen,
			fmt.Sprintf("Failed to generate SSH key: %s", strings.TrimSpace(string(output))),
			"Ensure ssh-keygen is installed and accessible")
	}

	// Verify the key was created
	if _, err := os.Stat(pair.PrivatePath); err != nil {
		return errors.New(errors.ErrKeygen,
			"Key generation completed but key file not found",
			"Check disk space and permissions")
	}

	return nil
}

// ReadPublicKey reads the contents of a public key file.
func ReadPublicKey(pubPath string) (string, error) {
	data, err := os.ReadFile(pubPath)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrKeygen,
			"Failed to read public key: "+pubPath,
			"Check that the file exists and is readable")
	}
	return strings.TrimSpace(string(data)), nil
}

// Fingerprint returns the SHA256 fingerprint of a public key in
// authorized_keys format, plus the key's algorithm name.
func Fingerprint(pubKey string) (fingerprint, algorithm string, err error) {
	parsed, _, _, _, err := ssh.ParseAuthorizedKey([]byte(pubKey))
	if err != nil {
		return "", "", errors.WrapWithCode(err, errors.ErrKeygen,
			"Public key doesn't parse",
			"The key file may be corrupted; regenerate with 'keyup provision'")
	}
	return ssh.FingerprintSHA256(parsed), parsed.Type(), nil
}

// ListKeyPairs returns the key pairs in sshDir whose names carry the given
// prefix, sorted by address. Private keys without a public half are
// included; doctor flags those separately.
func ListKeyPairs(sshDir, prefix string) ([]KeyPair, error) {
	entries, err := os.ReadDir(sshDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapWithCode(err, errors.ErrKeygen,
			"Failed to read key directory: "+sshDir,
			"Check permissions on "+sshDir)
	}

	var pairs []KeyPair
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix+"-") || strings.HasSuffix(name, ".pub") {
			continue
		}
		address := strings.TrimPrefix(name, prefix+"-")
		pairs = append(pairs, DeriveKeyPair(sshDir, prefix, address))
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Address < pairs[j].Address
	})

	return pairs, nil
}
