package cli

import (
	"log/slog"
	"path/filepath"
)

// expandArgs treats every argument as a glob pattern and expands it against
// the filesystem. There is no reliable way to tell a literal name from an
// unexpanded pattern, so all arguments get both treatments: a pattern that
// matches nothing (or is malformed) is kept as given, and the engine reports
// it the way rm would.
//
// Matches pointing at the history file are dropped. Sweeping a glob through
// the config directory must not eat the record of everything else.
func expandArgs(args []string, historyPath string) []string {
	var paths []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil || len(matches) == 0 {
			paths = append(paths, arg)
			continue
		}
		for _, m := range matches {
			if abs, err := filepath.Abs(m); err == nil && abs == historyPath {
				slog.Debug("dropping history file from glob matches", "pattern", arg, "path", m)
				continue
			}
			paths = append(paths, m)
		}
	}
	return paths
}
