package allocator

import (
	"github.com/brickingsoft/errors"
	"sync/atomic"
)

// NewLimited returns an allocator that refuses to hold more than quota bytes at once.
// A nil parent uses Default.
func NewLimited(parent Allocator, quota int64) *Limited {
	if parent == nil {
		parent = Default
	}
	return &Limited{
		parent: parent,
		quota:  quota,
	}
}

// Limited accounts live bytes handed out by its parent allocator.
// It may be shared between goroutines.
type Limited struct {
	parent Allocator
	quota  int64
	inuse  atomic.Int64
}

// InUse returns the number of bytes currently held by callers.
func (l *Limited) InUse() int64 {
	return l.inuse.Load()
}

func (l *Limited) Quota() int64 {
	return l.quota
}

func (l *Limited) Allocate(size int) (b []byte, err error) {
	if size < 0 {
		err = newError(errMetaOpAllocate, errors.From(ErrInvalidSize))
		return
	}
	if !l.reserve(int64(size)) {
		err = newError(errMetaOpAllocate, errors.From(ErrQuotaExceeded))
		return
	}
	b, err = l.parent.Allocate(size)
	if err != nil {
		l.inuse.Add(-int64(size))
	}
	return
}

func (l *Limited) Reallocate(b []byte, size int) (nb []byte, err error) {
	if size < 0 {
		err = newError(errMetaOpReallocate, errors.From(ErrInvalidSize))
		return
	}
	delta := int64(size) - int64(len(b))
	if delta > 0 && !l.reserve(delta) {
		err = newError(errMetaOpReallocate, errors.From(ErrQuotaExceeded))
		return
	}
	nb, err = l.parent.Reallocate(b, size)
	if err != nil {
		if delta > 0 {
			l.inuse.Add(-delta)
		}
		return
	}
	if delta < 0 {
		l.inuse.Add(delta)
	}
	return
}

func (l *Limited) Free(b []byte) {
	if len(b) == 0 {
		return
	}
	l.parent.Free(b)
	l.inuse.Add(-int64(len(b)))
}

func (l *Limited) reserve(n int64) bool {
	for {
		used := l.inuse.Load()
		if n > l.quota-used {
			return false
		}
		if l.inuse.CompareAndSwap(used, used+n) {
			return true
		}
	}
}
