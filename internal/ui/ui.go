// Package ui renders CLI output. Styled output is used only on a TTY;
// pipes and redirects get plain text.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	refStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
)

// Writer provides formatted output for the CLI.
type Writer struct {
	out   io.Writer
	color bool
}

// New creates a writer for out, enabling color when out is a terminal.
func New(out io.Writer) *Writer {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Writer{out: out, color: color}
}

// Plain creates a writer that never styles.
func Plain(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) render(style lipgloss.Style, s string) string {
	if !w.color {
		return s
	}
	return style.Render(s)
}

// Printf writes formatted plain output.
func (w *Writer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(w.out, format, args...)
}

// Successf writes a highlighted success line.
func (w *Writer) Successf(format string, args ...any) {
	_, _ = fmt.Fprintln(w.out, w.render(successStyle, fmt.Sprintf(format, args...)))
}

// Warnf writes a warning line.
func (w *Writer) Warnf(format string, args ...any) {
	_, _ = fmt.Fprintln(w.out, w.render(warnStyle, fmt.Sprintf(format, args...)))
}

// Errorf writes an error line.
func (w *Writer) Errorf(format string, args ...any) {
	_, _ = fmt.Fprintln(w.out, w.render(errorStyle, fmt.Sprintf(format, args...)))
}

// Dimf writes a de-emphasized line.
func (w *Writer) Dimf(format string, args ...any) {
	_, _ = fmt.Fprintln(w.out, w.render(dimStyle, fmt.Sprintf(format, args...)))
}

// Ref renders a chunk ref.
func (w *Writer) Ref(ref string) string {
	return w.render(refStyle, ref)
}
