// Package provision handles SSH key and client config provisioning for keyup.
//
// The package covers the three filesystem concerns of the tool: deriving and
// generating key pairs, bootstrapping the ~/.ssh directory, and maintaining
// the host entry in the SSH client config. It wraps the standard ssh-keygen
// tool rather than generating keys in-process, so the resulting files are
// byte-for-byte what developers are used to.
//
// # Key Pairs
//
// Key file names are derived from a configured prefix and the address the
// user supplied:
//
//	pair := provision.DeriveKeyPair(sshDir, "ghe", "jane@example.com")
//	// pair.PrivatePath == sshDir + "/ghe-jane@example.com"
//
// Generate() shells out to ssh-keygen with an empty passphrase and the
// address as the key comment. Existing pairs are never overwritten here;
// the CLI confirms with the user and calls Remove() first.
//
// # Host Blocks
//
// HostBlock renders the appended config entry:
//
//	Host github.ibm.com
//	    HostName github.ibm.com
//	    User git
//	    IdentityFile ~/.ssh/ghe-jane@example.com
//	    IdentitiesOnly yes
//
// HasHostEntry() checks for an existing block (via pkg/sshcfg) so the entry
// stays unique; AppendHostBlock() appends and tightens the file to 0600.
// BackupConfig() copies the file aside with a timestamp suffix before any
// modification.
package provision
