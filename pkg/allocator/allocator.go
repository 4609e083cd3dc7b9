// Package allocator provides the backing allocation disciplines used by elastic buffers.
//
// An Allocator hands out byte slices whose length is exactly the requested size.
// Memory obtained from an Allocator must be returned to the same Allocator.
package allocator

// Allocator
// 分配器，负责底层内存的申请、重新申请与释放。
//
// Reallocate must preserve the first min(len(b), size) bytes. On failure the
// original slice is left untouched and remains owned by the caller.
type Allocator interface {
	Allocate(size int) (b []byte, err error)
	Reallocate(b []byte, size int) (nb []byte, err error)
	Free(b []byte)
}

// Default is the allocator used when none is configured.
var Default Allocator = Heap{}
