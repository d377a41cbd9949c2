// Package prefs persists small user-facing preference toggles — currently
// schedule_window_enabled — as a flat file written with
// github.com/natefinch/atomic so a crash mid-write never leaves a torn,
// half-written file behind. This complements, not replaces, internal/statedb:
// statedb owns the dedup cache and bucket-progress map, this package owns
// the one piece of state better modeled as a flat file than a database row.
package prefs
