package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/nkvale/quickfind/pkg/types"
)

func runSearch(args []string) {
	fs := pflag.NewFlagSet("search", pflag.ExitOnError)
	scopeFlag := fs.String("scope", "both", "search scope: name|content|both")
	glob := fs.String("glob", "", "post-match glob filter on path")
	limit := fs.Int32("limit", 50, "maximum number of results")
	sortByModified := fs.Bool("sort-modified", false, "sort results by modification time instead of score")
	configPath := fs.String("config", "", "path to config file")
	if err := fs.Parse(args); err != nil {
		fatalf("search: %v", err)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fatalf("search: a query string is required")
	}
	text := rest[0]
	for _, w := range rest[1:] {
		text += " " + w
	}

	scope, err := types.ParseScope(*scopeFlag)
	if err != nil {
		fatalf("search: %v", err)
	}

	engine, err := openEngine(*configPath)
	if err != nil {
		fatalf("search: %v", err)
	}
	defer func() { _ = engine.Close() }()

	hits, err := engine.Search(types.Query{
		Text:           text,
		Glob:           *glob,
		Scope:          scope,
		Limit:          *limit,
		SortByModified: *sortByModified,
	})
	if err != nil {
		fatalf("search: %v", err)
	}

	printHits(hits)
}

func printHits(hits []types.Hit) {
	if len(hits) == 0 {
		fmt.Println("no matches")
		return
	}
	pathColor := color.New(color.FgCyan)
	dimColor := color.New(color.FgHiBlack)
	for _, h := range hits {
		pathColor.Print(h.Path)
		dimColor.Printf("  %s  %s  score=%.3f\n",
			humanize.Bytes(h.Size),
			humanize.Time(unixToTime(h.MTime)),
			h.Score,
		)
	}
}
