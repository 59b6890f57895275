package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/suteru-cli/suteru/internal/trash"
)

var (
	verbStyle   = lipgloss.NewStyle().Bold(true)
	targetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)

	errPrefix = color.New(color.FgRed, color.Bold).SprintFunc()
)

// renderMove formats one relocation as a "Moving A to B" line.
func renderMove(from, to string) string {
	return fmt.Sprintf("%s %s %s %s",
		verbStyle.Render("Moving"),
		targetStyle.Render(from),
		verbStyle.Render("to"),
		targetStyle.Render(to),
	)
}

// renderPlan renders a computed move, flagging relocations that cannot be a
// plain rename because source and target sit on different filesystems.
func renderPlan(p trash.Plan) string {
	line := renderMove(p.From, p.To)
	if p.CrossDevice {
		note := " (copy across filesystems"
		if p.Mount != "" {
			note += " from " + p.Mount
		}
		note += ")"
		line += noteStyle.Render(note)
	}
	return line
}

func explainBanner() string {
	return bannerStyle.Render("Explain mode - No actions will be taken")
}

// errorf prints a per-item failure to stderr without aborting the run.
func (c CLI) errorf(format string, a ...any) {
	fmt.Fprintln(os.Stderr, errPrefix(c.version.AppName+" error:")+" "+fmt.Sprintf(format, a...))
}

// renderPersistFailure prints a moved-but-unrecorded batch loudly. These
// entries are invisible to --undo, so the console copy is the only record
// the user gets.
func (c CLI) renderPersistFailure(pe *trash.PersistError) {
	red := color.New(color.FgHiRed, color.Bold)
	red.Fprintln(os.Stderr, "history update failed; the following entries are no longer tracked:")
	for _, item := range pe.Batch.Items {
		fmt.Fprintf(os.Stderr, "  %s (moved from %s)\n", item.To, item.From)
	}
	fmt.Fprintln(os.Stderr, "recover them manually, --undo cannot see them")
}
