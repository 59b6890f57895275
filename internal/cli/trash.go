package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/suteru-cli/suteru/internal/trash"
)

// Trash expands the arguments and relocates every match into the holding
// area. Per-item failures go to stderr as they come; the run only counts as
// failed when nothing at all was trashed.
func (c CLI) Trash(args []string) error {
	slog.Debug("cli.trash started")
	defer slog.Debug("cli.trash finished")

	if len(args) == 0 {
		return errors.New("too few arguments")
	}

	if c.option.Explain {
		fmt.Println(explainBanner())
	}

	paths := expandArgs(args, c.engine.Roots().HistoryPath)
	report := c.engine.Trash(paths, trash.TrashOptions{
		Explain:       c.option.Explain,
		Verbose:       c.verbose(),
		IgnoreMissing: c.option.Rm.Force,
	})

	switch {
	case report.Explain:
		for _, plan := range report.Plans {
			fmt.Println(renderPlan(plan))
		}
	case c.verbose():
		for _, item := range report.Trashed {
			fmt.Println(renderMove(item.From, item.To))
		}
	}

	for _, ie := range report.Failed {
		c.errorf("unable to move %s", ie.Error())
	}

	if report.Persist != nil {
		c.renderPersistFailure(report.Persist)
		return report.Persist
	}

	succeeded := len(report.Trashed)
	if report.Explain {
		succeeded = len(report.Plans)
	}
	if len(report.Failed) > 0 && succeeded == 0 {
		return errors.New("nothing was trashed")
	}
	return nil
}
