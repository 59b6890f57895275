package fs

import (
	"os"
	"path/filepath"
)

// DirSize returns the total size in bytes of the tree rooted at path.
// Symbolic links are counted as entries but never followed.
func DirSize(path string) (int64, error) {
	size, _, err := treeStats(path)
	return size, err
}

// treeStats walks the tree rooted at path and returns the total size of
// regular files plus the number of entries, the root included.
func treeStats(path string) (size int64, entries int, err error) {
	err = filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		entries++
		if info.Mode().IsRegular() {
			size += info.Size()
		}
		return nil
	})
	return size, entries, err
}
