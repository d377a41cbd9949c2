package main

import (
	"context"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/pflag"

	"github.com/nkvale/quickfind/pkg/types"
)

func runIndex(args []string) {
	fs := pflag.NewFlagSet("index", pflag.ExitOnError)
	full := fs.Bool("full", false, "perform a full rebuild crawl instead of incremental")
	configPath := fs.String("config", "", "path to config file")
	if err := fs.Parse(args); err != nil {
		fatalf("index: %v", err)
	}

	roots := fs.Args()
	if len(roots) == 0 {
		fatalf("index: at least one root path is required")
	}

	engine, err := openEngine(*configPath)
	if err != nil {
		fatalf("index: %v", err)
	}
	defer func() { _ = engine.Close() }()

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("indexing"),
		progressbar.OptionShowCount(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		if *full {
			done <- engine.ResetAndStart(ctx, roots)
		} else {
			done <- engine.StartCrawl(ctx, roots, types.ModeIncremental, types.PhaseInitial, false)
		}
	}()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	var lastIndexed int64
	for {
		select {
		case err := <-done:
			_ = bar.Finish()
			if err != nil {
				fatalf("index: %v", err)
			}
			st := engine.Status()
			color.New(color.FgGreen).Printf("done: %d files indexed (status=%s)\n", st.FilesIndexed, st.Status)
			return
		case <-ticker.C:
			st := engine.Status()
			if st.FilesIndexed > lastIndexed {
				_ = bar.Add64(st.FilesIndexed - lastIndexed)
				lastIndexed = st.FilesIndexed
			}
		}
	}
}
