// Package ui provides terminal UI components for keyup's CLI output.
//
// The package includes spinners, tables, and styled text output using the
// Lip Gloss library for consistent terminal styling across all commands.
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Successful operations
//	ColorError     (red)    - Failures and errors
//	ColorWarning   (yellow) - Warnings and skipped items
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text, timing info
//	ColorSecondary (blue)   - In-progress indicators
//
// Use DisableColors() to switch to monochrome output (for --no-color flag).
//
// # Spinner Usage
//
// The Spinner type provides an animated indicator for operations:
//
//	s := ui.NewSpinner("Generating key")
//	s.Start()
//	// ... do work ...
//	s.Success() // or s.Fail() or s.Skip()
//
// The spinner handles terminal output, clearing lines, and timing display.
//
// # Bubble Tea Components
//
// PickKey runs an interactive list picker over provisioned keys, used by
// 'keyup show' when no address is given. NewTable builds a Bubbles table
// model whose static View() renders the 'keyup list' output.
package ui
