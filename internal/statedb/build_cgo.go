//go:build cgo_sqlite
// +build cgo_sqlite

package statedb

// This file is compiled when building with CGO and the cgo_sqlite tag.
// The state database holds the dedup cache, bucket-progress map, and
// last-completed-at timestamp; it has no use for a vector extension,
// only the faster cgo driver.
//
// Build command:
//   CGO_ENABLED=1 go build -tags "cgo_sqlite" ./...
//
// Driver used: github.com/mattn/go-sqlite3

import (
	_ "github.com/mattn/go-sqlite3"
)

const (
	// DriverName is the SQLite driver to use.
	DriverName = "sqlite3"

	// BuildMode describes the current build configuration.
	BuildMode = "cgo"
)
