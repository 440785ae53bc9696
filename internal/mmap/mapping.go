package mmap

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/hupe1980/bitview/internal/conv"
)

// Mapping is a memory-mapped region backed by a file descriptor.
// It owns the mapped bytes and is responsible for unmapping them; the
// descriptor itself stays with the caller.
type Mapping struct {
	data     []byte
	writable bool
	closed   atomic.Bool
	unmap    func([]byte) error
}

// Open maps the file at path into memory as read-only.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	if fi.Size() < 0 {
		return nil, ErrInvalidSize
	}
	size, err := conv.Int64ToInt(fi.Size())
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return &Mapping{}, nil
	}

	data, unmap, err := osMap(f.Fd(), size, false)
	if err != nil {
		return nil, err
	}
	return &Mapping{data: data, unmap: unmap}, nil
}

// MapShared maps size bytes of fd read-write with MAP_SHARED, so writes are
// visible to every other mapping of the same descriptor.
func MapShared(fd uintptr, size int) (*Mapping, error) {
	if size < 0 {
		return nil, ErrInvalidSize
	}
	if size == 0 {
		return &Mapping{writable: true}, nil
	}
	data, unmap, err := osMap(fd, size, true)
	if err != nil {
		return nil, err
	}
	return &Mapping{data: data, writable: true, unmap: unmap}, nil
}

// Close unmaps the memory. It is idempotent.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	if m.unmap != nil && m.data != nil {
		return m.unmap(m.data)
	}
	return nil
}

// Bytes returns the mapped bytes.
// The slice is valid only until Close is called.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Size returns the size of the mapping in bytes.
func (m *Mapping) Size() int {
	return len(m.data)
}

// Writable reports whether the mapping was created read-write.
func (m *Mapping) Writable() bool {
	return m.writable
}

// Advise provides hints to the kernel about how the memory will be accessed.
func (m *Mapping) Advise(pattern AccessPattern) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if m.data == nil {
		return nil
	}
	return osAdvise(m.data, pattern)
}

// ReadAt implements io.ReaderAt.
func (m *Mapping) ReadAt(p []byte, off int64) (n int, err error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n = copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
