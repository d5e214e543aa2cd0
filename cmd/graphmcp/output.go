package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/qraqula/graphmcp/internal/failure"
)

var (
	colorAccent = lipgloss.Color("#d75f00")
	colorSubtle = lipgloss.Color("#8a8a8a")
	colorError  = lipgloss.Color("#ff0000")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	idStyle    = lipgloss.NewStyle().Foreground(colorSubtle)
	metaStyle  = lipgloss.NewStyle().Foreground(colorSubtle).Italic(true)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	kindStyle  = lipgloss.NewStyle().Foreground(colorError)
)

// paint renders text in style only when color output was requested.
func (g *globals) paint(style lipgloss.Style, text string) string {
	if !g.color {
		return text
	}
	return style.Render(text)
}

// printError writes err with its kind. Errors without a declared kind are
// printed plainly.
func printError(w io.Writer, err error) {
	var k failure.Kinder
	if !errors.As(err, &k) {
		fmt.Fprintln(w, errorStyle.Render("error:"), err)
		return
	}
	fmt.Fprintln(w, errorStyle.Render("error:"), kindStyle.Render("["+k.Kind()+"]"), err)
}
