//go:build linux

package allocator

import (
	"github.com/brickingsoft/errors"
	"golang.org/x/sys/unix"
	"os"
)

func (Mmap) Allocate(size int) (b []byte, err error) {
	if size < 0 {
		err = newError(errMetaOpAllocate, errors.From(ErrInvalidSize))
		return
	}
	if size == 0 {
		return
	}
	b, err = mmap(size)
	if err != nil {
		err = newError(errMetaOpAllocate, err)
	}
	return
}

func (m Mmap) Reallocate(b []byte, size int) (nb []byte, err error) {
	if size < 0 {
		err = newError(errMetaOpReallocate, errors.From(ErrInvalidSize))
		return
	}
	if size == len(b) {
		nb = b
		return
	}
	if len(b) == 0 {
		return m.Allocate(size)
	}
	if size == 0 {
		m.Free(b)
		return
	}
	nb, err = unix.Mremap(b[:cap(b)], size, unix.MREMAP_MAYMOVE)
	if err != nil {
		err = newError(errMetaOpReallocate, os.NewSyscallError("mremap", err))
		nb = nil
		return
	}
	return
}

func (Mmap) Free(b []byte) {
	if cap(b) == 0 {
		return
	}
	_ = unix.Munmap(b[:cap(b)])
}

func mmap(size int) ([]byte, error) {
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, os.NewSyscallError("mmap", err)
	}
	return b, nil
}
