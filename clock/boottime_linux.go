package clock

import "golang.org/x/sys/unix"

const boottimeID = unix.CLOCK_BOOTTIME
