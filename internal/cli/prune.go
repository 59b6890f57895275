package cli

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/suteru-cli/suteru/internal/duration"
	"github.com/suteru-cli/suteru/internal/fs"
	"github.com/suteru-cli/suteru/internal/history"
	"github.com/suteru-cli/suteru/internal/trash"
	"github.com/suteru-cli/suteru/internal/ui"
)

// Prune removes stale records from the history. "orphans" selects records
// whose holding-area entry vanished, typically after the temp directory was
// cleared on reboot. An age like "30d" selects whole batches older than
// that and deletes their holding entries too. Deletion is permanent, so it
// is shown first and confirmed unless -f is given.
func (c CLI) Prune(target string) error {
	slog.Debug("cli.prune started", "target", target)
	defer slog.Debug("cli.prune finished")

	var entries []trash.Entry
	switch target {
	case "orphans":
		entries = c.engine.Orphans()
	default:
		age, err := duration.Parse(target)
		if err != nil {
			return fmt.Errorf("unknown prune target %q (want \"orphans\" or an age like 30d): %w", target, err)
		}
		entries = c.engine.OlderThan(age)
	}

	if len(entries) == 0 {
		fmt.Println("Nothing to prune.")
		return nil
	}

	printPruneTable(entries)

	if !c.option.Rm.Force {
		if !ui.Confirm(fmt.Sprintf("Permanently remove %d records?", len(entries))) {
			fmt.Println("Pruning canceled.")
			return nil
		}
	}

	items := lo.Map(entries, func(e trash.Entry, _ int) history.Item {
		return e.Item
	})
	report, err := c.engine.Purge(items)
	if err != nil {
		return err
	}

	for _, ie := range report.Failed {
		c.errorf("unable to prune %s", ie.Error())
	}
	fmt.Printf("Removed %d records.\n", len(report.Removed))
	return nil
}

// printPruneTable lists the selected records before asking for confirmation.
func printPruneTable(entries []trash.Entry) {
	green := color.New(color.FgHiGreen).SprintfFunc()
	white := color.New(color.FgWhite).SprintfFunc()

	fmt.Printf("%s %s %s\n",
		green("%-20s", "Deleted At"),
		green("%-10s", "Size"),
		green("%-30s", "Original Path"),
	)

	for _, e := range entries {
		size := "-"
		if n, err := fs.DirSize(e.Item.To); err == nil {
			size = humanize.Bytes(uint64(n))
		}
		fmt.Printf("%s %s %s\n",
			white("%-20s", e.DeletedAt.Format("2006-01-02 15:04:05")),
			white("%-10s", size),
			white("%-30s", e.Item.From),
		)
	}
	fmt.Println()
}
