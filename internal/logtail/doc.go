// Package logtail reads and renders the tail of the debug log.
//
// # Overview
//
// The debug log holds structured JSON lines written by the wire-level
// logger. This package extracts the last N lines without loading the whole
// file and renders each line for terminal display, highlighting the level
// and field names.
//
// # Ring Buffer Algorithm
//
// Read uses a circular buffer of size maxLines:
//
//  1. Allocate ring buffer of size maxLines
//  2. For each line in file:
//     - Store line at current index
//     - Increment index (wrapping at maxLines)
//     - Track total lines seen
//  3. If total < maxLines, return the first 'count' entries
//  4. Otherwise return the buffer starting from the current index
//
// This keeps memory at O(maxLines) regardless of file size and returns
// lines in chronological order after a single pass.
//
// # Rendering
//
// ParseLine understands the production zap encoding: ts, level, msg, plus
// arbitrary context fields. caller and stacktrace are dropped as noise for
// interactive viewing. Lines that are not structured entries (or not JSON
// at all) pass through Render unchanged, so a partially written or foreign
// line never breaks the output.
//
// # Error Handling
//
// Read returns nil, nil for non-existent files. Other errors (permission
// denied, I/O errors) are returned wrapped.
package logtail
