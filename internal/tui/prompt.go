package tui

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// ErrCanceled is returned when the user aborts a prompt.
var ErrCanceled = errors.New("prompt canceled")

// Prompter asks the user questions. Commands depend on this interface so they
// can run unattended in tests.
type Prompter interface {
	Confirm(title, description string) (bool, error)
	// MultiSelect returns the indexes of the chosen options. Every option
	// starts selected.
	MultiSelect(title, description string, options []string) ([]int, error)
}

// HuhPrompter implements Prompter with charmbracelet/huh forms.
type HuhPrompter struct {
	// Accessible switches huh into its screen-reader friendly mode.
	Accessible bool
}

// Verify HuhPrompter implements Prompter.
var _ Prompter = (*HuhPrompter)(nil)

// NewHuhPrompter creates a HuhPrompter.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{}
}

func (p *HuhPrompter) Confirm(title, description string) (bool, error) {
	confirmed := true
	field := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)

	if err := p.run(field); err != nil {
		return false, err
	}
	return confirmed, nil
}

func (p *HuhPrompter) MultiSelect(title, description string, options []string) ([]int, error) {
	opts := make([]huh.Option[int], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, i).Selected(true)
	}

	var selected []int
	field := huh.NewMultiSelect[int]().
		Title(title).
		Description(description).
		Options(opts...).
		Value(&selected)

	if err := p.run(field); err != nil {
		return nil, err
	}
	return selected, nil
}

func (p *HuhPrompter) run(field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(bvTheme()).
		WithKeyMap(bvKeyMap()).
		WithAccessible(p.Accessible)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCanceled
		}
		return err
	}
	return nil
}

// MockPrompter is a Prompter for tests. Unset functions confirm and select everything.
type MockPrompter struct {
	ConfirmFn     func(title, description string) (bool, error)
	MultiSelectFn func(title, description string, options []string) ([]int, error)
}

var _ Prompter = (*MockPrompter)(nil)

func (m *MockPrompter) Confirm(title, description string) (bool, error) {
	if m.ConfirmFn != nil {
		return m.ConfirmFn(title, description)
	}
	return true, nil
}

func (m *MockPrompter) MultiSelect(title, description string, options []string) ([]int, error) {
	if m.MultiSelectFn != nil {
		return m.MultiSelectFn(title, description, options)
	}
	all := make([]int, len(options))
	for i := range options {
		all[i] = i
	}
	return all, nil
}
