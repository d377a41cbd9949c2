// Package schema owns the bleve index mapping for quickfind documents: the
// document's stored/indexed fields (path, name as name_tok and name_raw,
// ext, content, mtime, size, inode, dev) plus the two analyzer choices that implement the ranking
// weights (name_raw untokenized-lowercased vs. name_tok tokenized)
// and the content-separator decision (the ellipsis head/tail join
// character is a token boundary, not a word character).
package schema
