package trash

import (
	"errors"
	"fmt"

	"github.com/suteru-cli/suteru/internal/history"
)

var (
	// ErrProtectedPath is returned when a path matches the protected list
	ErrProtectedPath = errors.New("cannot trash protected path")

	// ErrUnsafePath is returned for arguments like ".", ".." or "/"
	ErrUnsafePath = errors.New("refusing to trash unsafe path")
)

// SetupError reports a failure to prepare the holding area or the history
// location. It is fatal: no engine operation can proceed without the roots.
type SetupError struct {
	// Op is the setup step that failed (e.g. "create_dir", "probe_writable")
	Op string

	// Path is the location that could not be prepared
	Path string

	// Err is the underlying error
	Err error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("setup failed: %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// ValidationError reports a single argument that cannot be trashed. It never
// affects sibling arguments of the same invocation.
type ValidationError struct {
	// Path is the argument as given by the caller
	Path string

	// Err is the underlying error
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// PersistError reports that files were relocated but the history update
// failed. The moves are NOT rolled back: the batch carried here is the only
// remaining record of what moved where, so callers must surface it.
type PersistError struct {
	// Batch holds the items that were moved but not recorded
	Batch history.Batch

	// Err is the underlying error
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("files were moved but recording them failed: %v", e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
