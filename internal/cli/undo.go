package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/suteru-cli/suteru/internal/trash"
)

// Undo restores the most recently recorded batch. Items that cannot be
// restored stay recorded under the same batch, so running undo again
// retries exactly those.
func (c CLI) Undo() error {
	slog.Debug("cli.undo started")
	defer slog.Debug("cli.undo finished")

	if c.option.Explain {
		fmt.Println(explainBanner())
	}

	report, err := c.engine.Undo(trash.UndoOptions{Explain: c.option.Explain})
	if err != nil {
		return err
	}

	if report.NothingToUndo {
		c.errorf("no history found")
		return nil
	}

	if report.Explain {
		for _, plan := range report.Plans {
			fmt.Println(renderPlan(plan))
		}
		return nil
	}

	if c.verbose() {
		for _, item := range report.Restored {
			fmt.Println(renderMove(item.To, item.From))
		}
	}

	for _, ie := range report.Failed {
		c.errorf("unable to move %s", ie.Error())
	}

	if report.Persist != nil {
		c.renderPersistFailure(report.Persist)
		return report.Persist
	}

	if n := len(report.Failed); n > 0 {
		fmt.Fprintf(os.Stderr, "%d entries stay recorded; run undo again to retry them\n", n)
		if len(report.Restored) == 0 {
			return errors.New("nothing was restored")
		}
	}
	return nil
}
