// Package conv provides safe integer type conversion utilities.
//
// These functions perform bounds checking when converting between signed and
// unsigned or between bit widths, returning an error wrapping ErrOverflow
// instead of silently truncating. Snapshot headers and file sizes go through
// them; provably bounded values use direct casts.
package conv
