// Package cli implements the keyup command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to a workflow function for the actual work. The general
// structure follows a clean separation between:
//
//   - Command definitions (cobra.Command instances in commands.go)
//   - Workflow orchestration (Provision, List, Show, Doctor, Init)
//   - Implementation details (in other internal packages)
//
// # Command Structure
//
// The root command is "keyup" with subcommands for different operations:
//
//	keyup provision <address>  - Generate a key and register the host entry
//	keyup list                 - Show provisioned keys
//	keyup show [address]       - Print a public key
//	keyup doctor               - Diagnose setup issues
//	keyup init                 - Create the settings file
//	keyup version              - Print version information
//	keyup completion           - Generate shell completions
//
// # The Provision Workflow
//
// Provision is a strictly sequential pipeline; the first fatal error
// aborts with a nonzero exit and nothing is retried:
//
//  1. Bootstrap the SSH directory (0700)
//  2. Confirm overwrite if the derived key already exists
//  3. Generate the key pair via ssh-keygen
//  4. Register the host entry unless one exists (warning only)
//  5. Print the public key for copy-paste
//
// Declining the overwrite confirmation also exits nonzero so wrapping
// scripts can tell "did nothing" from "provisioned".
//
// # Flag Handling
//
// Global flags (--config, --no-color) are defined on the root command and
// available to all subcommands. Command-specific flags like --force and
// --type are defined on individual commands.
//
// Workflow option structs accept SSHDir/ConfigPath/Out overrides so tests
// can run the full pipeline against temp directories and buffers.
package cli
