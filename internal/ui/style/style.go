// Package style provides shared UI styling primitives for gitres output.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "·"
)

// Text styles used by human-readable command output.
var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(Iris)
	Label = lipgloss.NewStyle().Foreground(Slate)
	Value = lipgloss.NewStyle().Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Slate).Faint(true)
)
