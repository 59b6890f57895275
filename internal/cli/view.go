package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/suteru-cli/suteru/internal/fs"
)

// View prints the recorded history, newest batch first, with the configured
// include and exclude rules applied. Batch #1 is what --undo restores next.
func (c CLI) View() error {
	slog.Debug("cli.view started")
	defer slog.Debug("cli.view finished")

	batches := c.engine.FilteredHistory()
	if len(batches) == 0 {
		fmt.Println("No deleted files found.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Deleted", "Size", "Name", "Original Path"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for i := len(batches) - 1; i >= 0; i-- {
		batch := batches[i]
		num := strconv.Itoa(len(batches) - i)
		for _, item := range batch.Items {
			size := "-"
			if n, err := fs.DirSize(item.To); err == nil {
				size = humanize.Bytes(uint64(n))
			}
			table.Append([]string{
				num,
				humanize.Time(batch.Timestamp),
				size,
				item.Name,
				item.From,
			})
		}
	}
	table.Render()
	return nil
}
