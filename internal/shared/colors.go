// Package shared provides shared terminal styling for all githooks commands.
package shared

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Standard color definitions.
var (
	Red     = lipgloss.Color("#f38ba8")
	Green   = lipgloss.Color("#a6e3a1")
	Yellow  = lipgloss.Color("#f9e2af")
	Blue    = lipgloss.Color("#89b4fa")
	Cyan    = lipgloss.Color("#94e2d5")
	Magenta = lipgloss.Color("#cba6f7")
	Muted   = lipgloss.Color("#6c7086")
)

// Styles for common output.
var (
	ErrorStyle   = lipgloss.NewStyle().Foreground(Red)
	SuccessStyle = lipgloss.NewStyle().Foreground(Green)
	WarningStyle = lipgloss.NewStyle().Foreground(Yellow)
	InfoStyle    = lipgloss.NewStyle().Foreground(Blue)
	DebugStyle   = lipgloss.NewStyle().Foreground(Cyan)
	DimStyle     = lipgloss.NewStyle().Foreground(Muted)
)

// Prefixes for one-line status messages.
var (
	SuccessPrefix = SuccessStyle.Render("✓")
	WarningPrefix = WarningStyle.Bold(true).Render("Warning:")
	ErrorPrefix   = ErrorStyle.Bold(true).Render("Error:")
)

// Colorize renders v's fmt representation in colour c.
func Colorize(c lipgloss.Color, v any) string {
	return lipgloss.NewStyle().Foreground(c).Render(fmt.Sprint(v))
}

// Echo writes msg and a newline to w when verbosity reaches level.
func Echo(w io.Writer, verbosity, level int, msg string) {
	if verbosity < level {
		return
	}
	_, _ = fmt.Fprintln(w, msg)
}

// Warnf writes a styled warning line to w.
func Warnf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "%s %s\n", WarningPrefix, fmt.Sprintf(format, args...))
}

// Errorf writes a styled error line to w.
func Errorf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "%s %s\n", ErrorPrefix, fmt.Sprintf(format, args...))
}

// Successf writes a styled success line to w.
func Successf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "%s %s\n", SuccessPrefix, fmt.Sprintf(format, args...))
}
