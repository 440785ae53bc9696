// Package clock reads system clocks as microsecond counts.
package clock

import (
	"time"
)

// ID selects the clock to read.
type ID int

const (
	// Monotonic never jumps backwards; only differences are meaningful.
	Monotonic ID = iota
	// Realtime is wall-clock time since the Unix epoch.
	Realtime
	// Boottime is monotonic but also counts time spent suspended.
	Boottime
)

const (
	usecPerSec  = uint64(time.Second / time.Microsecond)
	nsecPerUsec = uint64(time.Microsecond / time.Nanosecond)
)

var processStart = time.Now()

// Micros converts a seconds/nanoseconds pair to microseconds.
// Negative components are treated as zero.
func Micros(sec, nsec int64) uint64 {
	if sec < 0 {
		sec = 0
	}
	if nsec < 0 {
		nsec = 0
	}
	return uint64(sec)*usecPerSec + uint64(nsec)/nsecPerUsec
}

// Now reads clock id in microseconds.
func Now(id ID) (uint64, error) {
	return now(id)
}

// MonotonicMicros reads the monotonic clock in microseconds.
//
// If the clock cannot be read it falls back to the Go runtime's monotonic
// reading relative to process start, which is still monotonic.
func MonotonicMicros() uint64 {
	us, err := now(Monotonic)
	if err != nil {
		return uint64(time.Since(processStart) / time.Microsecond)
	}
	return us
}

// RealtimeMicros returns wall-clock microseconds since the Unix epoch.
func RealtimeMicros() uint64 {
	us, err := now(Realtime)
	if err != nil {
		return uint64(time.Now().UnixMicro())
	}
	return us
}

// Since returns the elapsed duration between a MonotonicMicros reading and now.
func Since(startMicros uint64) time.Duration {
	cur := MonotonicMicros()
	if cur < startMicros {
		return 0
	}
	return time.Duration(cur-startMicros) * time.Microsecond
}
