package elastic

// resize brings the allocation in line with a logical size of nsize bytes.
//
// The allocation doubles when it is too small, and drops to twice nsize once
// it exceeds four times nsize. A zero target releases the storage instead of
// reallocating to zero bytes. On failure nothing changes.
func (buf *Buffer) resize(nsize int) (err error) {
	nalloc := nextAllocation(buf.alloc, nsize)

	if nalloc == 0 {
		buf.release()
		buf.size = 0
		return
	}

	if nalloc != buf.alloc {
		nb, reallocateErr := buf.allocator.Reallocate(buf.b, nalloc)
		if reallocateErr != nil {
			buf.observer.ReallocateFailed(buf.alloc, nalloc, reallocateErr)
			err = reallocateErr
			return
		}
		buf.observer.Reallocated(buf.alloc, nalloc)
		buf.b = nb
		buf.alloc = nalloc
	}

	if buf.zero && nsize < buf.size {
		clear(buf.b[nsize:min(buf.size, buf.alloc)])
	}
	buf.size = nsize
	return
}

// nextAllocation returns the allocation size wanted for nsize bytes of content
// given the current allocation.
func nextAllocation(alloc int, nsize int) int {
	if alloc < nsize {
		if alloc > maxInt/2 {
			return nsize
		}
		return max(alloc*2, nsize)
	}
	if nsize <= maxInt/4 && alloc > nsize*4 {
		return nsize * 2
	}
	return alloc
}
