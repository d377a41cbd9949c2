// Package crawler drives the ingest loop: enumerate roots,
// bucket entries by recency, run the initial/background phase split with
// an enumeration cap and commit cadence, dedup via internal/statedb, sample
// via internal/sampler, and stage writes through internal/indexstore.
//
// Concurrency is an errgroup.WithContext fan-out with a semaphore channel
// bounding worker count over batches of enumerated filesystem entries. The
// single-flight guard is an atomic-CAS IndexLock serializing
// start/reset_and_start. Each run is tagged with a google/uuid correlation
// ID so overlapping phases and the scheduled-window timer can be
// distinguished in logs.
package crawler
