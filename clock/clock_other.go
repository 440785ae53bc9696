//go:build !(linux || freebsd || openbsd || netbsd || darwin)

package clock

import (
	"fmt"
	"time"
)

func now(id ID) (uint64, error) {
	switch id {
	case Monotonic, Boottime:
		return uint64(time.Since(processStart) / time.Microsecond), nil
	case Realtime:
		return uint64(time.Now().UnixMicro()), nil
	default:
		return 0, fmt.Errorf("clock: unknown clock id %d", id)
	}
}
