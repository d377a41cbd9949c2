// Package qflog wraps the standard library's log.Logger with a component
// prefix (crawler:, store:, query:) while giving tests a way to capture
// output by swapping the destination io.Writer.
package qflog

import (
	"io"
	"log"
	"os"
)

// Logger tags every line with a component name.
type Logger struct {
	*log.Logger
}

// New returns a Logger writing to w (os.Stderr by default) with lines
// prefixed "component: ".
func New(component string, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{Logger: log.New(w, component+": ", log.LstdFlags)}
}

// Default returns a Logger for component writing to os.Stderr, keeping
// stdout free for the MCP protocol stream.
func Default(component string) *Logger {
	return New(component, os.Stderr)
}
