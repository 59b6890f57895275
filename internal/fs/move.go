package fs

import (
	"fmt"
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"
)

// Options specifies options for move operations
type Options struct {
	// Force overwrites the destination if it already exists
	Force bool

	// RecreateParent rebuilds a missing parent chain for the destination.
	// This is the restore direction: the original directory may have been
	// removed after the file was trashed. A failure to rebuild it is
	// reported as ErrRestoreTarget.
	RecreateParent bool
}

// Move relocates a file or directory from src to dst. It tries rename(2)
// first and falls back to a verified copy-and-delete when src and dst live
// on different partitions. The source is never removed before the copy has
// been checked against it.
func Move(src, dst string, opts Options) error {
	if err := validatePaths(src, dst); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		if opts.RecreateParent {
			return &MoveError{
				Op:  "recreate_parent",
				Src: src,
				Dst: dst,
				Err: fmt.Errorf("%w: %v", ErrRestoreTarget, err),
			}
		}
		return &MoveError{
			Op:  "create_parent",
			Src: src,
			Dst: dst,
			Err: err,
		}
	}

	if !opts.Force {
		if _, err := os.Lstat(dst); err == nil {
			return &MoveError{
				Op:  "check_destination",
				Src: src,
				Dst: dst,
				Err: ErrDestinationExists,
			}
		}
	}

	// Same device: a plain rename is atomic and cheap
	if sameDevice, _ := SamePartition(src, dst); sameDevice {
		if err := os.Rename(src, dst); err == nil {
			return nil
		}
	}

	return copyAndDelete(src, dst)
}

// copyAndDelete copies a file or directory and then deletes the original.
// The original is kept intact unless the copy matches it in entry count
// and total byte size.
func copyAndDelete(src, dst string) error {
	opts := cp.Options{
		AddPermission: 0,
		OnSymlink: func(src string) cp.SymlinkAction {
			// Relocate the link itself, never its target
			return cp.Shallow
		},
		PreserveTimes: true,
		PreserveOwner: true,
		OnDirExists:   nil,
		Sync:          true,
	}

	if err := cp.Copy(src, dst, opts); err != nil {
		return &MoveError{
			Op:  "copy",
			Src: src,
			Dst: dst,
			Err: err,
		}
	}

	if err := verifyCopy(src, dst); err != nil {
		// Drop the bad copy, keep the source untouched
		_ = os.RemoveAll(dst)
		return &MoveError{
			Op:  "verify",
			Src: src,
			Dst: dst,
			Err: err,
		}
	}

	// Copy is verified, remove source
	if err := os.RemoveAll(src); err != nil {
		// Try to clean up destination on failure so exactly one copy survives
		if rmErr := os.RemoveAll(dst); rmErr != nil {
			return &MoveError{
				Op:  "cleanup",
				Src: src,
				Dst: dst,
				Err: fmt.Errorf("failed to remove both source and destination: %v, %v", err, rmErr),
			}
		}
		return &MoveError{
			Op:  "remove_source",
			Src: src,
			Dst: dst,
			Err: err,
		}
	}

	return nil
}

// verifyCopy compares entry counts and total regular-file bytes between the
// source tree and its copy.
func verifyCopy(src, dst string) error {
	srcSize, srcEntries, err := treeStats(src)
	if err != nil {
		return fmt.Errorf("%w: stat source: %v", ErrVerifyFailed, err)
	}

	dstSize, dstEntries, err := treeStats(dst)
	if err != nil {
		return fmt.Errorf("%w: stat copy: %v", ErrVerifyFailed, err)
	}

	if srcEntries != dstEntries {
		return fmt.Errorf("%w: entry count mismatch: source has %d, copy has %d",
			ErrVerifyFailed, srcEntries, dstEntries)
	}
	if srcSize != dstSize {
		return fmt.Errorf("%w: size mismatch: source is %d bytes, copy is %d bytes",
			ErrVerifyFailed, srcSize, dstSize)
	}

	return nil
}

// validatePaths performs basic path validation
func validatePaths(src, dst string) error {
	if src == "" || dst == "" {
		return ErrInvalidPath
	}

	if _, err := os.Lstat(src); err != nil {
		if os.IsNotExist(err) {
			return ErrSourceNotFound
		}
		return err
	}

	return nil
}

// CreateExclusive creates a new file with O_EXCL flag to ensure atomic creation.
// Returns error if the file already exists.
func CreateExclusive(path string, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
}
