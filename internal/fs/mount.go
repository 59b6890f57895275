package fs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/moby/sys/mountinfo"
)

// MountPoint returns the mount point holding the given path. It is a
// best-effort lookup: platforms without mount table support report an error
// and callers should degrade gracefully.
func MountPoint(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	mounts, err := mountinfo.GetMounts(nil)
	if err != nil {
		return "", fmt.Errorf("failed to get mount info: %w", err)
	}

	// Find the longest matching mount point
	var longest string
	for _, m := range mounts {
		if m.Mountpoint == "/" || absPath == m.Mountpoint || strings.HasPrefix(absPath, m.Mountpoint+"/") {
			if len(m.Mountpoint) > len(longest) {
				longest = m.Mountpoint
			}
		}
	}

	if longest == "" {
		// If no mount point matched, the path must be on the root filesystem
		return "/", nil
	}

	return longest, nil
}
