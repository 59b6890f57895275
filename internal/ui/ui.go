// Package ui holds the interactive pieces of the command line surface.
package ui

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/suteru-cli/suteru/internal/ui/confirm"
)

// Confirm shows prompt and waits for a y/n answer, resolving on the
// first matching keypress. When stdin is not a terminal it denies
// immediately so scripted runs never hang on a prompt.
func Confirm(prompt string) bool {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return false
	}

	m := confirm.New()
	m.Prompt = prompt
	m.Default = confirm.Denied

	if _, err := tea.NewProgram(&m).Run(); err != nil {
		slog.Error("confirm prompt failed", "error", err)
		return false
	}
	return m.Selected().IsAccepted()
}
