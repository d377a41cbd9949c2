// Package observe publishes the crawl pipeline's observable state record
// (design notes: is_running, status, files_indexed,
// last_completed_at, cloud_placeholders) through a single mutable snapshot
// plus a subscribe/unsubscribe change-notification channel. Mutation is
// confined to the pipeline; readers get consistent snapshots.
package observe
