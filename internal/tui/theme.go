package tui

import (
	"github.com/charmbracelet/huh"
)

// currentTheme holds the configured theme for prompts.
// When nil, currentThemeOrDefault() returns the default theme.
var currentTheme *huh.Theme

// SetTheme sets the current theme by name.
// Empty or unknown names select the default theme.
func SetTheme(name string) {
	currentTheme = GetTheme(name)
}

func currentThemeOrDefault() *huh.Theme {
	if currentTheme == nil {
		return defaultTheme()
	}
	return currentTheme
}

func resetTheme() {
	currentTheme = nil
}
