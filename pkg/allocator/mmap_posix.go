//go:build !linux

package allocator

func (Mmap) Allocate(size int) (b []byte, err error) {
	return Heap{}.Allocate(size)
}

func (Mmap) Reallocate(b []byte, size int) (nb []byte, err error) {
	return Heap{}.Reallocate(b, size)
}

func (Mmap) Free(b []byte) {
	Heap{}.Free(b)
}
