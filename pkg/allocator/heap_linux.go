//go:build linux

package allocator

import (
	"math"

	"golang.org/x/sys/unix"
)

// systemMemory returns physical memory plus swap, or defaultHeapLimit when sysinfo fails.
func systemMemory() int {
	info := unix.Sysinfo_t{}
	if err := unix.Sysinfo(&info); err != nil {
		return defaultHeapLimit
	}
	unit := uint64(info.Unit)
	if unit == 0 {
		unit = 1
	}
	total := uint64(info.Totalram) + uint64(info.Totalswap)
	if total == 0 {
		return defaultHeapLimit
	}
	if total > math.MaxInt/unit {
		return math.MaxInt
	}
	return int(total * unit)
}
