package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/suteru-cli/suteru/internal/cli"
)

const appName = "suteru"

// These variables are set in build step
var (
	version   = "unset"
	revision  = "unset"
	buildDate = "unknown"
)

func main() {
	if err := cli.Run(cli.Version{
		AppName:   appName,
		Version:   version,
		Revision:  revision,
		BuildDate: buildDate,
	}); err != nil {
		slog.Error("failed to run cli", "error", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}
