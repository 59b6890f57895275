// Package log wires the process-wide slog default: structured records go
// to a rotated debug log file, and a colored copy goes to stderr when the
// DEBUG environment variable is set.
package log

import (
	"io"
	"log/slog"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"
	"github.com/suteru-cli/suteru/internal/config"
)

func Init(cfg config.LoggingConfig, runID string) {
	var fw io.Writer = io.Discard
	if cfg.Enabled {
		if w, err := NewRotateWriter(&cfg); err == nil {
			fw = w
		}
	}

	var cw io.Writer = io.Discard
	if os.Getenv("DEBUG") != "" {
		cw = os.Stderr
	}

	level := charmlog.DebugLevel
	if l, err := charmlog.ParseLevel(cfg.Level); err == nil {
		level = l
	}

	fileLogger := charmlog.NewWithOptions(fw, charmlog.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           level,
		Formatter:       charmlog.JSONFormatter,
	})

	handler := NewWrapHandler(fileLogger, func() []slog.Attr {
		return []slog.Attr{
			slog.String("run_id", runID),
		}
	})

	slog.SetDefault(slog.New(
		slogmulti.Fanout(
			handler,
			tint.NewHandler(cw, &tint.Options{
				Level:      slog.LevelDebug,
				TimeFormat: time.Kitchen,
			}),
		),
	))
}
