// Package cli is the command line surface: flag parsing, glob expansion,
// dispatch, and rendering of engine reports. Everything that moves files
// lives in internal/trash; everything printed lives here.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/jessevdk/go-flags"
	"github.com/rs/xid"
	"github.com/suteru-cli/suteru/internal/config"
	"github.com/suteru-cli/suteru/internal/debug"
	"github.com/suteru-cli/suteru/internal/log"
	"github.com/suteru-cli/suteru/internal/trash"
)

type Option struct {
	Undo    bool   `short:"u" long:"undo" description:"Undo the last removal"`
	Explain bool   `short:"e" long:"explain" description:"Do not take action, only explain what would occur"`
	View    bool   `short:"w" long:"view" description:"View removal history"`
	Verbose bool   `short:"v" long:"verbose" description:"Show full output detailing all moves"`
	Prune   string `long:"prune" description:"Remove stale records (\"orphans\" or an age like 30d)" value-name:"TARGET"`
	Config  string `long:"config" description:"Path to config file" default:""`

	Meta MetaOption `group:"Meta Options"`
	Rm   RmOption   `group:"Compatible (rm) Options"`
}

type MetaOption struct {
	Version bool   `short:"V" long:"version" description:"Show version"`
	Logs    string `long:"logs" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
}

// RmOption provides compatibility with rm command options. Only -f changes
// behavior, the rest exist so shell habits and aliases keep working.
type RmOption struct {
	Interactive bool `short:"i" description:"(dummy) prompt before every removal"`
	Recursive   bool `short:"r" long:"recursive" description:"(dummy) remove directories and their contents recursively"`
	Recursive2  bool `short:"R" description:"(dummy) same as -r"`
	Force       bool `short:"f" long:"force" description:"ignore nonexistent files, never prompt"`
	Directory   bool `short:"d" long:"dir" description:"(dummy) remove empty directories"`
}

type CLI struct {
	version Version
	option  Option
	config  config.Config
	runID   string
	engine  *trash.Engine
}

var runID = sync.OnceValue(func() string {
	id := xid.New().String()
	return id
})

func Run(v Version) error {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Name = v.AppName
	parser.Usage = "[-u | files...]"
	args, err := parser.Parse()
	if err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	// Bootstrap logging with defaults so config parsing itself gets logged,
	// then reinitialize once the real config is known.
	log.Init(config.NewDefaultConfig().Core.Logging, runID())

	defer slog.Debug("main function finished\n\n\n")
	slog.Debug("main function started", "version", v.Version, "revision", v.Revision, "buildDate", v.BuildDate)

	cfg, err := config.Parse(opt.Config)
	if err != nil {
		return err
	}
	log.Init(cfg.Core.Logging, runID())

	engine, err := trash.NewEngine(trash.Config{
		HomeRoot:  cfg.Core.HomeRoot,
		TempRoot:  cfg.Core.TempRoot,
		Protected: cfg.Core.Protected,
		History:   cfg.History,
		RunID:     runID(),
	})
	if err != nil {
		return err
	}

	cli := CLI{
		version: v,
		option:  opt,
		config:  cfg,
		runID:   runID(),
		engine:  engine,
	}

	if err := cli.Run(args); err != nil {
		slog.Error("exit", "error", fmt.Errorf("cli.run failed: %w", err))
		return err
	}
	return nil
}

func (c CLI) Run(args []string) error {
	switch {
	case c.option.Meta.Version:
		fmt.Fprint(os.Stdout, c.version.Print())
		return nil

	case c.option.Meta.Logs != "":
		return debug.Logs(os.Stdout, &c.config.Core.Logging, c.option.Meta.Logs == "live")

	case c.option.Undo:
		return c.Undo()

	case c.option.View:
		return c.View()

	case c.option.Prune != "":
		return c.Prune(c.option.Prune)

	default:
		return c.Trash(args)
	}
}

// verbose combines the flag with the config default.
func (c CLI) verbose() bool {
	return c.option.Verbose || c.config.Core.Verbose
}
