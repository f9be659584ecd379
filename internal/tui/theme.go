package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	bvAccent       = lipgloss.AdaptiveColor{Light: "#4f46e5", Dark: "#818cf8"}
	bvAccentStrong = lipgloss.AdaptiveColor{Light: "#3730a3", Dark: "#a5b4fc"}
	bvTextNormal   = lipgloss.AdaptiveColor{Light: "#1f2937", Dark: "#e5e7eb"}
	bvTextMuted    = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	bvButtonText   = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#111827"}
	bvButtonMuted  = lipgloss.AdaptiveColor{Light: "#e5e7eb", Dark: "#374151"}
)

// bvTheme returns the huh theme used by every bv prompt.
func bvTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(bvAccent)
	t.Focused.Title = t.Focused.Title.Foreground(bvAccentStrong).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(bvTextMuted)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(bvAccent)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(bvAccent)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(bvAccentStrong)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(bvAccent)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(bvTextNormal)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(bvButtonText).
		Background(bvAccent).
		Bold(true).
		Padding(0, 1)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(bvTextNormal).
		Background(bvButtonMuted).
		Padding(0, 1)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())

	t.Help.ShortKey = t.Help.ShortKey.Foreground(bvAccent)
	t.Help.ShortDesc = t.Help.ShortDesc.Foreground(bvTextMuted)
	t.Help.FullKey = t.Help.FullKey.Foreground(bvAccent)
	t.Help.FullDesc = t.Help.FullDesc.Foreground(bvTextMuted)

	return t
}

// bvKeyMap is huh's default key map with esc added as a way to cancel.
func bvKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "cancel"),
	)
	return km
}
