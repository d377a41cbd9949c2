// Package core wires schema, indexstore, statedb, sampler, crawler, and
// query into the six-operation API surface (init_index,
// should_reindex, add_or_update, commit_and_refresh, search, free_results),
// plus a supplemental Status() convenience operation beyond that core set.
//
// Engine is a single struct owning every collaborator, constructed once per
// process and safe for concurrent use by the CLI and MCP surfaces.
package core
