package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/pflag"
)

func runStatus(args []string) {
	fs := pflag.NewFlagSet("status", pflag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	if err := fs.Parse(args); err != nil {
		fatalf("status: %v", err)
	}

	engine, err := openEngine(*configPath)
	if err != nil {
		fatalf("status: %v", err)
	}
	defer func() { _ = engine.Close() }()

	st := engine.Status()

	label := color.New(color.Bold)
	label.Print("status:       ")
	fmt.Println(st.Status)
	label.Print("phase:        ")
	fmt.Println(st.Phase)
	label.Print("running:      ")
	fmt.Println(st.IsRunning)
	label.Print("files indexed:")
	fmt.Printf(" %s\n", humanize.Comma(st.FilesIndexed))
	label.Print("last completed:")
	if st.LastCompletedAt.IsZero() {
		fmt.Println(" never")
	} else {
		fmt.Printf(" %s\n", humanize.Time(st.LastCompletedAt))
	}
	if len(st.CloudPlaceholders) > 0 {
		label.Print("cloud placeholders skipped:")
		fmt.Printf(" %d\n", len(st.CloudPlaceholders))
		for _, p := range st.CloudPlaceholders {
			fmt.Printf("  - %s\n", p)
		}
	}
}
