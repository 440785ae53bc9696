//go:build linux || freebsd || openbsd || netbsd || darwin

package clock

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func clockID(id ID) (int32, error) {
	switch id {
	case Monotonic:
		return unix.CLOCK_MONOTONIC, nil
	case Realtime:
		return unix.CLOCK_REALTIME, nil
	case Boottime:
		return boottimeID, nil
	default:
		return 0, fmt.Errorf("clock: unknown clock id %d", id)
	}
}

func now(id ID) (uint64, error) {
	cid, err := clockID(id)
	if err != nil {
		return 0, err
	}
	var ts unix.Timespec
	if err := unix.ClockGettime(cid, &ts); err != nil {
		return 0, fmt.Errorf("clock: clock_gettime(%d): %w", cid, err)
	}
	sec, nsec := ts.Unix()
	return Micros(sec, nsec), nil
}
