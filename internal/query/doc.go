// Package query implements the Query Planner: parsing the
// compact query grammar, expanding free terms and phrases into weighted
// disjunctions over name/content fields, applying the post-score glob
// filter, and assembling ranked, paginated hits.
//
// This domain has no vector leg or RRF step, so bleve's own BM25 scoring
// stands in directly rather than feeding a hybrid fusion step. The LRU
// result cache (hashicorp/golang-lru) is purged wholesale on every index
// commit rather than scoped per project.
package query
