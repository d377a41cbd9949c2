package types

import "time"

// Bucket is a recency class assigned to a file by its age at crawl time.
type Bucket int

const (
	Bucket90Days Bucket = iota
	Bucket180Days
	Bucket365Days
	BucketOlder
)

func (b Bucket) String() string {
	switch b {
	case Bucket90Days:
		return "<=90d"
	case Bucket180Days:
		return "<=180d"
	case Bucket365Days:
		return "<=365d"
	case BucketOlder:
		return "older"
	default:
		return "unknown"
	}
}

// BucketOrder lists buckets in the order the background phase processes them.
var BucketOrder = []Bucket{Bucket180Days, Bucket365Days, BucketOlder}

// BucketFor derives the recency bucket of mtime relative to now. Not persisted;
// it only drives crawl scheduling.
func BucketFor(now time.Time, mtime int64) Bucket {
	age := now.Sub(time.Unix(mtime, 0))
	switch {
	case age <= 90*24*time.Hour:
		return Bucket90Days
	case age <= 180*24*time.Hour:
		return Bucket180Days
	case age <= 365*24*time.Hour:
		return Bucket365Days
	default:
		return BucketOlder
	}
}
