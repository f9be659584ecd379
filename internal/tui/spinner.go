package tui

import (
	"github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner runs fn behind a spinner titled title. Outside an
// interactive terminal fn runs directly.
func RunWithSpinner(title string, fn func() error) error {
	if !IsInteractive() {
		return fn()
	}

	var fnErr error
	err := spinner.New().
		Title(title).
		Action(func() { fnErr = fn() }).
		Run()
	if err != nil {
		return err
	}
	return fnErr
}
