package types

// CoverageCapBytes is the default hard ceiling on stored content per
// document (1.5 MiB).
const CoverageCapBytes = 1572864

// ContentSeparator joins head and tail slices when a file is sampled rather
// than read in full. U+2026 (HORIZONTAL ELLIPSIS) doubles as a hint to the
// index schema's tokenizer so phrase queries cannot straddle it.
const ContentSeparator = "\n…\n"

// Document is one indexed file. Path is the identity key: a later
// ingestion of the same Path replaces the prior document.
type Document struct {
	Path  string // absolute path, identity key
	Name  string // basename(Path)
	Ext   string // lower-cased extension without the dot, or ""
	Content string // optional UTF-8 text, full body or head+tail sample
	MTime int64  // modification time, seconds since epoch
	Size  uint64 // file size in bytes
	Inode uint64 // stored only, not indexed; 0 when unknown
	Dev   uint64 // stored only, not indexed; 0 when unknown

	// CloudPlaceholder marks a filesystem entry whose bytes are not locally
	// materialized. Such documents are indexed by name/path only.
	CloudPlaceholder bool
}

// Validate checks a document's shape before it reaches the store.
// maxContentBytes is the sampling policy's effective cap at ingest time
// (the configured max_bytes, not necessarily CoverageCapBytes) so a
// deployment that raises max_bytes above the default doesn't reject its
// own larger samples on every subsequent crawl.
func (d *Document) Validate(maxContentBytes uint64) error {
	if d.Path == "" {
		return ErrEmptyPath
	}
	if d.Name == "" {
		return ErrEmptyName
	}
	if d.MTime < 0 {
		return ErrInvalidMTime
	}
	if uint64(len(d.Content)) > maxContentBytes {
		return ErrContentTooLong
	}
	return nil
}

// Meta is the identity/dedup fingerprint of a file, independent of content.
// It mirrors the should_reindex/add_or_update wire shape.
type Meta struct {
	Path  string
	Name  string
	Ext   string
	MTime int64
	Size  uint64
	Inode uint64
	Dev   uint64
}
