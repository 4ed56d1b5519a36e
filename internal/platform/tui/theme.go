package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the lipgloss styles of the login form and scoreboard.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Label       lipgloss.Style
	LabelActive lipgloss.Style
	Prompt      lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
	Help        lipgloss.Style
	Frame       lipgloss.Style
	Muted       lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Subtitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10),
		LabelActive: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true).Width(10),
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3),
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}

// MonochromeTheme returns a grayscale theme for terminals with poor colour.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Title = lipgloss.NewStyle().Bold(true)
	theme.Subtitle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.Prompt = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Underline(true)
	theme.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	return theme
}
