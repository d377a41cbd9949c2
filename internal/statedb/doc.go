// Package statedb persists the crawl pipeline's state outside the search
// index: the identity/dedup cache fingerprint map, the
// per-root bucket-progress resume cursor, and scalar state like
// last_completed_at. It uses a SQLite dual-driver build-tag pattern
// (build_cgo.go/build_purego.go) and hand-rolled semver-versioned
// migrations (migrations.go) over a small schema.
package statedb
