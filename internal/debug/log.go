// Package debug exposes the contents of the debug log file, either as a
// one-shot dump or as a live tail.
package debug

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/nxadm/tail"
	"github.com/suteru-cli/suteru/internal/config"
	"github.com/suteru-cli/suteru/internal/env"
)

// Logs displays logs either by showing existing content or following new entries
func Logs(w io.Writer, cfg *config.LoggingConfig, live bool) error {
	if live {
		return tailLiveLogs(w, cfg)
	}
	return showExistingLogs(w, cfg)
}

// tailLiveLogs follows log entries in real-time
func tailLiveLogs(w io.Writer, cfg *config.LoggingConfig) error {
	if !cfg.Enabled {
		return fmt.Errorf("logging is not enabled in config: enable logging in config for live debugging")
	}

	shouldFollow := isatty.IsTerminal(os.Stdout.Fd())
	tailConfig := tail.Config{
		ReOpen: shouldFollow,
		Follow: shouldFollow,
		Poll:   true,
		Logger: tail.DiscardingLogger,
		Location: &tail.SeekInfo{
			Offset: 0,
			Whence: io.SeekEnd,
		},
	}

	t, err := tail.TailFile(env.SUTERU_LOG_PATH, tailConfig)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("log file does not exist: try running some commands with logging enabled")
		}
		return err
	}

	for line := range t.Lines {
		fmt.Fprintln(w, line.Text)
	}

	return nil
}

// showExistingLogs displays the current content of the log file
func showExistingLogs(w io.Writer, cfg *config.LoggingConfig) error {
	if _, err := os.Stat(env.SUTERU_LOG_PATH); os.IsNotExist(err) {
		if !cfg.Enabled {
			return fmt.Errorf("logging is not enabled in config: enable logging to create log files")
		}
		return fmt.Errorf("no log file exists yet: try running some commands first")
	}

	f, err := os.Open(env.SUTERU_LOG_PATH)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fmt.Fprintln(w, scanner.Text())
	}

	return scanner.Err()
}
