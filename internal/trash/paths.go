package trash

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/suteru-cli/suteru/internal/config"
)

const (
	holdDirName     = "suteru"
	historyFileName = "history.json"
)

// Config configures the engine. Empty roots fall back to the OS defaults,
// which keeps the engine testable without touching the real home directory.
type Config struct {
	// HomeRoot overrides the user home lookup
	HomeRoot string

	// TempRoot overrides the system temp lookup
	TempRoot string

	// Protected lists path globs that must never be trashed
	Protected []string

	// History holds the include/exclude rules applied when listing
	History config.History

	// RunID tags reports and log records of this invocation
	RunID string
}

// Roots are the resolved on-disk locations the engine works with.
type Roots struct {
	// Home is the resolved home root, itself a protected path
	Home string

	// Hold is the holding area directory for trashed entries
	Hold string

	// HistoryPath is the canonical history file
	HistoryPath string
}

// ResolveRoots derives the holding area and history locations from cfg and
// prepares them on disk. This is the only place OS path policy lives; every
// failure here is fatal for the invocation.
func ResolveRoots(cfg Config) (*Roots, error) {
	homeRoot := cfg.HomeRoot
	if homeRoot == "" {
		var err error
		homeRoot, err = os.UserHomeDir()
		if err != nil {
			return nil, &SetupError{Op: "resolve_home", Path: "", Err: err}
		}
	}

	tempRoot := cfg.TempRoot
	if tempRoot == "" {
		tempRoot = os.TempDir()
	}

	roots := &Roots{
		Home: homeRoot,
		Hold: filepath.Join(tempRoot, holdDirName),
	}
	historyDir := filepath.Join(homeRoot, ".config", "suteru")
	roots.HistoryPath = filepath.Join(historyDir, historyFileName)

	for _, dir := range []string{roots.Hold, historyDir} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, &SetupError{Op: "create_dir", Path: dir, Err: err}
		}
		if err := probeWritable(dir); err != nil {
			return nil, &SetupError{Op: "probe_writable", Path: dir, Err: err}
		}
	}

	return roots, nil
}

// probeWritable verifies a directory accepts new entries by creating and
// removing a throwaway file.
func probeWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

// isUnsafePath checks if the given path is unsafe to trash
func isUnsafePath(path string) (bool, error) {
	// Check the original path before any normalization so inputs like "."
	// or ".." keep their meaning
	originalBase := filepath.Base(path)
	if originalBase == "." || originalBase == ".." {
		return true, nil
	}

	// Clean the path to check for normalized root paths
	cleaned := filepath.Clean(path)

	// Check root path
	if cleaned == "/" {
		return true, nil
	}

	// Check double slashes and similar patterns
	if strings.HasPrefix(path, "//") {
		return true, nil
	}

	return false, nil
}
