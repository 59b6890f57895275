package trash

import (
	"fmt"
	"time"

	"github.com/suteru-cli/suteru/internal/history"
)

// Plan records where a single entry would move, or did move. Explain runs
// return plans without touching the filesystem.
type Plan struct {
	From        string
	To          string
	IsDir       bool
	CrossDevice bool
	Mount       string
}

// ItemError couples a failed path with the error that stopped it.
type ItemError struct {
	Path string
	Err  error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// Entry couples a recorded item with the timestamp of the batch it belongs
// to. Listings and prune selections work on entries because the recorded
// item itself carries no time.
type Entry struct {
	Item      history.Item
	DeletedAt time.Time
}

func (e Entry) GetName() string         { return e.Item.Name }
func (e Entry) GetPath() string         { return e.Item.To }
func (e Entry) GetDeletedAt() time.Time { return e.DeletedAt }

// TrashReport describes one trash invocation. Failed entries never abort
// their siblings, so a report can carry both moved items and errors.
type TrashReport struct {
	RunID   string
	Plans   []Plan
	Trashed []history.Item
	Failed  []ItemError

	// Batch is the recorded batch, nil when nothing moved or when
	// recording failed
	Batch *history.Batch

	// Explain marks a dry run, nothing was moved
	Explain bool

	// Persist is set when entries moved but recording them failed
	Persist *PersistError
}

// UndoReport describes one undo invocation.
type UndoReport struct {
	Batch    *history.Batch
	Plans    []Plan
	Restored []history.Item
	Failed   []ItemError

	// NothingToUndo is set when the history holds no batches. It is a
	// report outcome, not an error
	NothingToUndo bool

	// Explain marks a dry run, the batch stays in the history
	Explain bool

	// Persist is set when failed restores could not be re-recorded
	Persist *PersistError
}

// PruneReport describes one prune invocation over the history.
type PruneReport struct {
	Removed []history.Item
	Failed  []ItemError
}
