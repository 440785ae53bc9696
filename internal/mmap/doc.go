// Package mmap provides memory-mapped access to file descriptors.
//
// Read-only mappings back the local blob store's reads; shared read-write
// mappings back memfd bitmap buffers.
//
//	m, err := mmap.Open("bitmaps/users.bvsn")
//	if err != nil { ... }
//	defer m.Close()
//	data := m.Bytes()
//
// Unix uses mmap(2) and madvise(2). Windows supports read-only mappings via
// CreateFileMapping/MapViewOfFile; shared writable mappings return
// ErrUnsupported there.
//
// Close is idempotent. Callers must not touch Bytes() after Close returns.
package mmap
