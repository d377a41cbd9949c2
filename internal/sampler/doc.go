// Package sampler implements the Content Sampler: given an
// open file handle, its size, and a sampling policy, decide whether to
// index the full decoded text, a head+tail slice, or nothing.
//
// Binary sniffing and UTF-8 decode-with-replacement are built entirely on
// unicode/utf8 and bytes/strings — no third-party library in the retrieval
// pack does either of those better than the standard library already does,
// so this package deliberately has no non-stdlib dependency (see DESIGN.md).
package sampler
