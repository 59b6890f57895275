package env

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

var (
	// SUTERU_CONFIG_PATH is where the YAML config is looked up, overridable
	// with the environment variable of the same name
	SUTERU_CONFIG_PATH string

	// SUTERU_LOG_PATH is where debug logs are written, overridable with the
	// environment variable of the same name
	SUTERU_LOG_PATH string
)

func init() {
	// https://github.com/charmbracelet/log/issues/35
	os.Setenv("CLICOLOR_FORCE", "1")

	if e := os.Getenv("SUTERU_CONFIG_PATH"); e != "" {
		SUTERU_CONFIG_PATH = e
	} else {
		SUTERU_CONFIG_PATH = filepath.Join(xdg.ConfigHome, "suteru", "config.yaml")
	}

	if e := os.Getenv("SUTERU_LOG_PATH"); e != "" {
		SUTERU_LOG_PATH = e
	} else {
		path, err := xdg.CacheFile("suteru/debug.log")
		if err != nil {
			path = "suteru.log"
		}
		SUTERU_LOG_PATH = path
	}
}
