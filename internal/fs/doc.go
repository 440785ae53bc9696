// Package fs provides filesystem abstractions for testability and fault injection.
//
// The package defines two key interfaces:
//
//   - [File]: a file opened for writing
//   - [FileSystem]: the temp-file, rename and directory operations behind an
//     atomic file replace
//
// # Implementations
//
//   - [LocalFS]: Production implementation using standard os package
//   - [FaultyFS]: Test utility for fault injection (simulate I/O errors)
//
// Tests can inject [FaultyFS] to simulate failures:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("bitmaps/", fs.Fault{FailAfterBytes: -1, FailOnSync: true})
//
// This package intentionally does NOT take context.Context: local file
// operations are not interruptible at the syscall level.
package fs
