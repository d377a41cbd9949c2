// Package schedule implements the deferred-scheduling window: incremental
// crawls triggered outside the 02:00-04:00 local-time window are deferred
// to a single-shot wall-clock timer armed for the next 02:00. The timer is
// owned here, independent of the crawl worker's lifecycle, and can be
// cleared without affecting an in-flight crawl.
package schedule
