package printer

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Style definitions for consistent console output across the application.
var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // Red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // Yellow
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // Cyan
)

// detectedProfile is the color profile lipgloss picked for this terminal.
var detectedProfile = lipgloss.ColorProfile()

// SetNoColor switches styled output off (ASCII profile) or back to the
// detected terminal profile.
func SetNoColor(disabled bool) {
	if disabled {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(detectedProfile)
}

// Render functions return styled strings without printing.

// Faint returns text with faint styling.
func Faint(text string) string {
	return faintStyle.Render(text)
}

// Bold returns text with bold styling.
func Bold(text string) string {
	return boldStyle.Render(text)
}

// Success returns text with success (green) styling.
func Success(text string) string {
	return successStyle.Render(text)
}

// Error returns text with error (red) styling.
func Error(text string) string {
	return errorStyle.Render(text)
}

// Warning returns text with warning (yellow) styling.
func Warning(text string) string {
	return warningStyle.Render(text)
}

// Info returns text with info (cyan) styling.
func Info(text string) string {
	return infoStyle.Render(text)
}

// Printer writes styled lines to a writer. Commands get one bound to the
// CLI's output so tests can capture it.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Println writes text unstyled.
func (p *Printer) Println(text string) {
	_, _ = fmt.Fprintln(p.w, text)
}

// Successf writes a formatted success line prefixed with a check mark.
func (p *Printer) Successf(format string, args ...any) {
	p.Println(Success("✓ " + fmt.Sprintf(format, args...)))
}

// Warningf writes a formatted warning line.
func (p *Printer) Warningf(format string, args ...any) {
	p.Println(Warning("! " + fmt.Sprintf(format, args...)))
}

// Errorf writes a formatted error line prefixed with a cross.
func (p *Printer) Errorf(format string, args ...any) {
	p.Println(Error("✗ " + fmt.Sprintf(format, args...)))
}

// Infof writes a formatted info line.
func (p *Printer) Infof(format string, args ...any) {
	p.Println(Info(fmt.Sprintf(format, args...)))
}

// Faintf writes a formatted faint line.
func (p *Printer) Faintf(format string, args ...any) {
	p.Println(Faint(fmt.Sprintf(format, args...)))
}
