package allocator

import (
	"fmt"
	"github.com/brickingsoft/errors"
)

// Heap allocates from the Go runtime heap. Free is a no-op and leaves the slice to the collector.
//
// The runtime aborts the process when it cannot satisfy a request, so Heap
// refuses any single request larger than the memory of the machine with
// ErrExceedsMemory.
type Heap struct{}

// defaultHeapLimit is used where the memory of the machine is unknown: 1 TiB on
// 64-bit platforms, 1 GiB on 32-bit ones.
const defaultHeapLimit = 1 << (30 + 10*(^uint(0)>>63))

// heapLimit is the largest single request Heap accepts.
var heapLimit = systemMemory()

func (Heap) Allocate(size int) (b []byte, err error) {
	if size < 0 {
		err = newError(errMetaOpAllocate, errors.From(ErrInvalidSize))
		return
	}
	if size == 0 {
		return
	}
	if size > heapLimit {
		err = newError(errMetaOpAllocate, errors.From(ErrExceedsMemory))
		return
	}
	b, err = makeBytes(size)
	if err != nil {
		err = newError(errMetaOpAllocate, err)
	}
	return
}

func (Heap) Reallocate(b []byte, size int) (nb []byte, err error) {
	if size < 0 {
		err = newError(errMetaOpReallocate, errors.From(ErrInvalidSize))
		return
	}
	if size == len(b) {
		nb = b
		return
	}
	if size == 0 {
		return
	}
	if size > heapLimit {
		err = newError(errMetaOpReallocate, errors.From(ErrExceedsMemory))
		return
	}
	// always copy, so a shrunk slice does not pin the old array
	nb, err = makeBytes(size)
	if err != nil {
		err = newError(errMetaOpReallocate, err)
		return
	}
	copy(nb, b)
	return
}

func (Heap) Free(_ []byte) {}

func makeBytes(size int) (b []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	b = make([]byte, size)
	return
}
