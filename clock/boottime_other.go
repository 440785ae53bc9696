//go:build freebsd || openbsd || netbsd || darwin

package clock

import "golang.org/x/sys/unix"

// Only Linux separates suspend time; elsewhere the monotonic clock stands in.
const boottimeID = unix.CLOCK_MONOTONIC
