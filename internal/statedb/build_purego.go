//go:build !cgo_sqlite
// +build !cgo_sqlite

package statedb

// This file is compiled by default, without CGO or the cgo_sqlite tag.
//
// Build command:
//   CGO_ENABLED=0 go build ./...
//
// Driver used: modernc.org/sqlite

import (
	_ "modernc.org/sqlite"
)

const (
	// DriverName is the SQLite driver to use.
	DriverName = "sqlite"

	// BuildMode describes the current build configuration.
	BuildMode = "purego"
)
