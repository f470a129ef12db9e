package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ValidThemes is the list of supported theme names.
var ValidThemes = []string{
	"tosemver",
	"base",
	"base16",
	"catppuccin",
	"charm",
	"dracula",
}

// IsValidTheme returns true if the given theme name is valid.
func IsValidTheme(name string) bool {
	return slices.Contains(ValidThemes, name)
}

// GetTheme returns the huh.Theme for the given theme name.
// Returns nil if the theme name is not recognized.
func GetTheme(name string) *huh.Theme {
	switch name {
	case "tosemver":
		return defaultTheme()
	case "base":
		return huh.ThemeBase()
	case "base16":
		return huh.ThemeBase16()
	case "catppuccin":
		return huh.ThemeCatppuccin()
	case "charm":
		return huh.ThemeCharm()
	case "dracula":
		return huh.ThemeDracula()
	default:
		return nil
	}
}

// defaultTheme uses the same ANSI palette as the printer package so prompts
// and command output look alike.
func defaultTheme() *huh.Theme {
	t := huh.ThemeBase()

	var (
		cyan  = lipgloss.Color("6")
		green = lipgloss.Color("2")
		red   = lipgloss.Color("1")
		faint = lipgloss.Color("8")
	)

	t.Focused.Base = t.Focused.Base.BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cyan)
	t.Focused.Title = t.Focused.Title.Foreground(cyan).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(faint)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.FocusedButton = lipgloss.NewStyle().Padding(0, 1).MarginRight(1).Bold(true).
		Foreground(lipgloss.Color("0")).Background(green)
	t.Focused.BlurredButton = lipgloss.NewStyle().Padding(0, 1).MarginRight(1).
		Foreground(lipgloss.Color("7")).Background(lipgloss.Color("0"))

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())

	t.Help = help.New().Styles
	t.Help.ShortKey = t.Help.ShortKey.Foreground(cyan)
	t.Help.FullKey = t.Help.FullKey.Foreground(cyan)
	t.Help.ShortDesc = t.Help.ShortDesc.Foreground(faint)
	t.Help.FullDesc = t.Help.FullDesc.Foreground(faint)

	return t
}
