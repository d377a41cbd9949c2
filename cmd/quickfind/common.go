package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/nkvale/quickfind/internal/config"
	"github.com/nkvale/quickfind/internal/core"
)

var version = "dev"

// colorEnabled mirrors the common CLI idiom: color only on a real terminal,
// never when stdout is redirected or NO_COLOR is set.
var colorEnabled = isatty.IsTerminal(os.Stdout.Fd()) && os.Getenv("NO_COLOR") == ""

func init() {
	color.NoColor = !colorEnabled
}

// openEngine loads config from configPath, or from $QUICKFIND_CONFIG when
// configPath is empty (neither set means all defaults), fills in
// ~/.quickfind/ paths when index_dir is unset, and opens the core engine.
func openEngine(configPath string) (*core.Engine, error) {
	if configPath == "" {
		configPath = os.Getenv("QUICKFIND_CONFIG")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.IndexDir == "" {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return nil, fmt.Errorf("resolve home directory: %w", herr)
		}
		cfg.IndexDir = home + "/.quickfind/index.bleve"
		cfg.StateDBPath = home + "/.quickfind/state.db"
		cfg.PrefsPath = home + "/.quickfind/prefs.json"
	}
	return core.Open(cfg)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// unixToTime converts the int64 unix-seconds mtime carried on types.Hit
// into a time.Time for display formatting.
func unixToTime(unixSeconds int64) time.Time {
	return time.Unix(unixSeconds, 0)
}
