// Package memfd creates anonymous, memory-backed file descriptors and maps
// them as bitmap buffers.
//
// A memfd has no path on any filesystem. The descriptor can be handed to
// another process (for example over a unix socket or by inheritance) which
// maps the same pages with FromFD; both sides then see one shared bitmap.
//
//	f, err := memfd.Create("seen-ids", 1<<20)
//	if err != nil { ... }
//	defer f.Close()
//
//	bm, _ := f.Bitmap(8 << 20)
//	_ = bm.Set(42)
//
// Only Linux provides memfd_create(2); elsewhere Create and FromFD return
// ErrUnsupported.
package memfd

import (
	"errors"
	"fmt"

	"github.com/hupe1980/bitview"
	"github.com/hupe1980/bitview/internal/closer"
	"github.com/hupe1980/bitview/internal/mmap"
)

var (
	// ErrUnsupported is returned on platforms without memfd_create.
	ErrUnsupported = errors.New("memfd: unsupported on this platform")
	// ErrInvalidSize is returned for negative sizes.
	ErrInvalidSize = errors.New("memfd: invalid size")
)

// File is a memory-backed descriptor together with a shared read-write
// mapping of its contents.
type File struct {
	name string
	fd   int
	m    *mmap.Mapping
}

// Create makes a new anonymous file of size bytes, zero-filled, and maps it.
// The descriptor is close-on-exec.
func Create(name string, size int) (f *File, err error) {
	if size < 0 {
		return nil, ErrInvalidSize
	}
	fd, err := create(name, size)
	if err != nil {
		return nil, fmt.Errorf("memfd: create %q: %w", name, err)
	}
	defer func() {
		if err != nil {
			_ = closer.CloseFD(fd)
		}
	}()

	m, err := mmap.MapShared(uintptr(fd), size)
	if err != nil {
		return nil, fmt.Errorf("memfd: map %q: %w", name, err)
	}
	return &File{name: name, fd: fd, m: m}, nil
}

// FromFD maps an existing memory-backed descriptor, typically one received
// from another process. The File takes ownership of fd.
func FromFD(fd int, name string) (f *File, err error) {
	size, err := fdSize(fd)
	if err != nil {
		return nil, fmt.Errorf("memfd: stat fd %d: %w", fd, err)
	}
	m, err := mmap.MapShared(uintptr(fd), size)
	if err != nil {
		return nil, fmt.Errorf("memfd: map fd %d: %w", fd, err)
	}
	return &File{name: name, fd: fd, m: m}, nil
}

// Name returns the debugging name passed to Create.
func (f *File) Name() string { return f.name }

// Fd returns the underlying descriptor.
func (f *File) Fd() int { return f.fd }

// Size returns the mapped size in bytes.
func (f *File) Size() int { return f.m.Size() }

// Bytes returns the shared mapping. It is invalid after Close.
func (f *File) Bytes() []byte { return f.m.Bytes() }

// Bitmap returns a checked view over the first nbits bits of the mapping.
func (f *File) Bitmap(nbits uint64) (*bitview.Bitmap, error) {
	return bitview.New(f.m.Bytes(), nbits)
}

// Close unmaps the buffer and closes the descriptor. Errors from both steps
// are joined.
func (f *File) Close() error {
	fd := f.fd
	f.fd = -1
	return closer.All(
		closer.Func(func() error { return closer.CloseFD(fd) }),
		f.m,
	)
}
