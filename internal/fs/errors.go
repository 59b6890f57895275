package fs

import (
	"errors"
	"fmt"
)

var (
	// ErrDestinationExists indicates that the destination path already exists
	ErrDestinationExists = errors.New("destination already exists")

	// ErrSourceNotFound indicates that the source file does not exist
	ErrSourceNotFound = errors.New("source file not found")

	// ErrInvalidPath indicates an empty or malformed path
	ErrInvalidPath = errors.New("invalid path specified")

	// ErrRestoreTarget indicates that the restore destination could not be
	// prepared, e.g. the original parent directory can no longer be created
	ErrRestoreTarget = errors.New("restore target unavailable")

	// ErrVerifyFailed indicates that a copied tree did not match its source
	ErrVerifyFailed = errors.New("copy verification failed")
)

// MoveError represents an error that occurred during a move operation
type MoveError struct {
	Op  string // Operation being performed
	Src string // Source path
	Dst string // Destination path
	Err error  // Underlying error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move operation failed: %s from %q to %q: %v", e.Op, e.Src, e.Dst, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// NewMoveError creates a new MoveError
func NewMoveError(op, src, dst string, err error) error {
	return &MoveError{
		Op:  op,
		Src: src,
		Dst: dst,
		Err: err,
	}
}

// IsDestinationExists checks if the error indicates the destination exists
func IsDestinationExists(err error) bool {
	return errors.Is(err, ErrDestinationExists)
}

// IsRestoreTarget checks if the error indicates an unavailable restore target
func IsRestoreTarget(err error) bool {
	return errors.Is(err, ErrRestoreTarget)
}
