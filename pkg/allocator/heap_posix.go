//go:build !linux

package allocator

func systemMemory() int {
	return defaultHeapLimit
}
