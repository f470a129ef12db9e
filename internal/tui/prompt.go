package tui

import (
	"context"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// Confirm shows a yes/no confirmation prompt. It defaults to "No".
func Confirm(title, description string) (bool, error) {
	var ok bool
	field := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)

	form := huh.NewForm(huh.NewGroup(field)).WithTheme(currentThemeOrDefault())
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}

// RunWithSpinner runs action while a spinner with the given title is shown.
// Outside an interactive terminal the action runs directly.
func RunWithSpinner(ctx context.Context, title string, action func(context.Context) error) error {
	if !IsInteractive() {
		return action(ctx)
	}

	var actionErr error
	err := spinner.New().
		Title(title).
		Context(ctx).
		Action(func() { actionErr = action(ctx) }).
		Run()
	if err != nil {
		return err
	}
	return actionErr
}
