package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "index":
		runIndex(args)
	case "search":
		runSearch(args)
	case "status":
		runStatus(args)
	case "repl":
		runRepl(args)
	case "--version", "version":
		fmt.Printf("quickfind %s\n", version)
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `quickfind — local file search

Usage:
  quickfind index [--full] <root> [<root>...]
  quickfind search [--scope name|content|both] [--glob PATTERN] [--limit N] <query>
  quickfind status
  quickfind repl
  quickfind version`)
}
