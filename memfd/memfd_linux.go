package memfd

import (
	"github.com/hupe1980/bitview/internal/conv"
	"golang.org/x/sys/unix"
)

func create(name string, size int) (int, error) {
	fd, err := unix.MemfdCreate(name, unix.MFD_CLOEXEC)
	if err != nil {
		return -1, err
	}
	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		_ = unix.Close(fd)
		return -1, err
	}
	return fd, nil
}

func fdSize(fd int) (int, error) {
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return 0, err
	}
	return conv.Int64ToInt(st.Size)
}
