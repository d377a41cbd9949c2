package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/pflag"

	"github.com/nkvale/quickfind/internal/core"
	"github.com/nkvale/quickfind/pkg/types"
)

const replHistoryFile = ".quickfind_history"

func runRepl(args []string) {
	fs := pflag.NewFlagSet("repl", pflag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	if err := fs.Parse(args); err != nil {
		fatalf("repl: %v", err)
	}

	engine, err := openEngine(*configPath)
	if err != nil {
		fatalf("repl: %v", err)
	}
	defer func() { _ = engine.Close() }()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := historyFilePath()
	if f, err := os.Open(historyPath); err == nil {
		_, _ = line.ReadHistory(f)
		_ = f.Close()
	}

	scope := types.ScopeBoth
	fmt.Println("quickfind repl — type a query, or :scope name|content|both, :quit to exit")

	for {
		input, err := line.Prompt("quickfind> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			break
		}
		if err != nil {
			fatalf("repl: %v", err)
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		switch {
		case input == ":quit" || input == ":q":
			saveHistory(line, historyPath)
			return
		case strings.HasPrefix(input, ":scope "):
			s, err := types.ParseScope(strings.TrimSpace(strings.TrimPrefix(input, ":scope ")))
			if err != nil {
				fmt.Println(err)
				continue
			}
			scope = s
			fmt.Printf("scope set to %s\n", scope)
		default:
			runReplQuery(engine, input, scope)
		}
	}
	saveHistory(line, historyPath)
}

func runReplQuery(engine *core.Engine, text string, scope types.Scope) {
	hits, err := engine.Search(types.Query{Text: text, Scope: scope, Limit: 50})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	printHits(hits)
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return replHistoryFile
	}
	return home + "/" + replHistoryFile
}

func saveHistory(line *liner.State, path string) {
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = line.WriteHistory(f)
}
