package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette using ANSI color codes for terminal compatibility.

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// GradientColors cycles through the spinner animation.
var GradientColors = []lipgloss.Color{
	"13", // Pink
	"5",  // Purple
	"6",  // Cyan
	"2",  // Green
}

// SuccessStyle returns the style for success messages.
func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorSuccess)
}

// ErrorStyle returns the style for error messages.
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorError)
}

// WarningStyle returns the style for warning messages.
func WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorWarning)
}

// MutedStyle returns the style for secondary text.
func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorMuted)
}

// DisableColors switches all styled output to monochrome (for --no-color).
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
