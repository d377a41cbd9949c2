// Package types provides shared type definitions for the quickfind search core.
//
// This package defines the domain types used across the crawl, index, and query
// packages: the Document model indexed per file, recency buckets used for crawl
// scheduling, the sampling policy that governs content extraction, and the hit
// records returned by search.
//
// # Core Types
//
// Document is the unit of indexing, one per file:
//
//	doc := &types.Document{
//	    Path:  "/home/user/Documents/report.txt",
//	    Name:  "report.txt",
//	    Ext:   "txt",
//	    MTime: time.Now().Unix(),
//	    Size:  2048,
//	}
//
// Hit is a ranked search result returned by the query planner:
//
//	hit := &types.Hit{
//	    Path:  doc.Path,
//	    Name:  doc.Name,
//	    MTime: doc.MTime,
//	    Size:  doc.Size,
//	    Score: 3.5,
//	}
//
// # Validation
//
// Document implements a validation method to ensure data integrity before it
// reaches the index store. The caller passes the effective sampling cap so
// a deployment-configured max_bytes above the default isn't rejected:
//
//	if err := doc.Validate(policy.MaxBytes); err != nil {
//	    log.Printf("skipping %s: %v", doc.Path, err)
//	}
package types
