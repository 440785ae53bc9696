//go:build unix

package closer

import "golang.org/x/sys/unix"

// CloseFD closes a raw descriptor. Negative descriptors are skipped.
func CloseFD(fd int) error {
	if fd < 0 {
		return nil
	}
	return unix.Close(fd)
}
