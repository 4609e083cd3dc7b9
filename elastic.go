// Package elastic implements a growable buffer of fixed-length records kept in
// one contiguous backing allocation.
//
// Records are opaque byte spans. The buffer stores no record length: every
// operation that interprets the content as records takes the length as an
// argument, and callers are expected to use one length per buffer. Records
// wraps a Buffer with a fixed length for callers that want that enforced.
//
// The backing allocation grows to at least twice its size when it runs out of
// room and is shrunk to twice the logical size once it exceeds four times the
// logical size, so a sequence of single-record appends or removals costs
// amortized O(1) per record.
//
// A Buffer is not safe for concurrent use.
package elastic

import (
	"github.com/brickingsoft/elastic/pkg/allocator"
	"math"
	"unsafe"
)

const maxInt = math.MaxInt

// New
// 创建一个包含 nrec 个长度为 reclen 的记录（内容未初始化）的 Buffer。
//
// reclen must be positive and nrec must not be negative. On failure nothing is
// allocated and the returned error satisfies IsOverflow or IsAllocate.
func New(nrec int, reclen int, options ...Option) (buf *Buffer, err error) {
	mustRecords(nrec, reclen)
	opts, optsErr := newOptions(options)
	if optsErr != nil {
		err = optsErr
		return
	}
	b := &Buffer{
		allocator: opts.Allocator,
		observer:  opts.Observer,
		zero:      opts.ZeroOnRelease,
	}
	nsize, ok := mul(nrec, reclen)
	if !ok {
		err = newError(errMetaOpNew, ErrOverflow, nil)
		return
	}
	if resizeErr := b.resize(nsize); resizeErr != nil {
		b.release()
		err = newError(errMetaOpNew, ErrAllocate, resizeErr)
		return
	}
	buf = b
	return
}

// Buffer is an elastic array of records backed by a single allocation.
//
// The zero value is not usable; create buffers with New or Acquire.
type Buffer struct {
	size      int
	alloc     int
	b         []byte
	allocator allocator.Allocator
	observer  Observer
	zero      bool
	released  bool
	pool      *Pool
}

// Size returns the number of bytes holding content.
func (buf *Buffer) Size() int {
	return buf.size
}

// Allocated returns the number of bytes reserved by the backing allocation.
func (buf *Buffer) Allocated() int {
	return buf.alloc
}

// Bytes returns the content. The slice is valid until the next call that changes the buffer.
func (buf *Buffer) Bytes() []byte {
	if buf.size == 0 {
		return nil
	}
	return buf.b[:buf.size:buf.size]
}

// Len returns the number of whole records of length reclen.
//
// A trailing partial record, possible only when the buffer was addressed with
// different record lengths, is not counted.
func (buf *Buffer) Len(reclen int) int {
	mustRecordLength(reclen)
	return buf.size / reclen
}

// Resize sets the buffer to hold nrec records of length reclen.
// Records exposed by growing are uninitialized. On failure the buffer is unchanged.
func (buf *Buffer) Resize(nrec int, reclen int) (err error) {
	mustRecords(nrec, reclen)
	if buf.released {
		err = newError(errMetaOpResize, ErrReleased, nil)
		return
	}
	nsize, ok := mul(nrec, reclen)
	if !ok {
		err = newError(errMetaOpResize, ErrOverflow, nil)
		return
	}
	if resizeErr := buf.resize(nsize); resizeErr != nil {
		err = newError(errMetaOpResize, ErrAllocate, resizeErr)
		return
	}
	return
}

// Append copies nrec records of length reclen from p to the end of the buffer.
//
// p must hold at least nrec*reclen bytes and must not alias the buffer's own
// storage. On failure the buffer is unchanged.
func (buf *Buffer) Append(p []byte, nrec int, reclen int) (err error) {
	mustRecords(nrec, reclen)
	if buf.released {
		err = newError(errMetaOpAppend, ErrReleased, nil)
		return
	}
	n, ok := mul(nrec, reclen)
	if !ok || n > maxInt-buf.size {
		err = newError(errMetaOpAppend, ErrOverflow, nil)
		return
	}
	if len(p) < n {
		panic("elastic: append source is shorter than nrec*reclen")
	}
	pos := buf.size
	if resizeErr := buf.resize(pos + n); resizeErr != nil {
		err = newError(errMetaOpAppend, ErrAllocate, resizeErr)
		return
	}
	if n > 0 {
		copy(buf.b[pos:pos+n], p[:n])
	}
	return
}

// Shrink removes the last nrec records of length reclen, or every record if
// fewer than nrec are held.
//
// Shrink never fails. When the allocator cannot shrink the backing allocation
// the logical size is still reduced and the larger allocation is kept, so the
// buffer may then hold more than four times its content until a later resize
// succeeds.
func (buf *Buffer) Shrink(nrec int, reclen int) {
	mustRecords(nrec, reclen)
	if buf.released {
		return
	}
	nsize := 0
	if n, ok := mul(nrec, reclen); ok && n <= buf.size {
		nsize = buf.size - n
	}
	if buf.zero {
		clear(buf.b[nsize:buf.size])
	}
	if err := buf.resize(nsize); err != nil {
		buf.size = nsize
	}
}

// Truncate releases spare capacity so that the allocation is exactly the content size.
// On failure the buffer is unchanged.
func (buf *Buffer) Truncate() (err error) {
	if buf.released {
		err = newError(errMetaOpTruncate, ErrReleased, nil)
		return
	}
	if truncateErr := buf.truncate(); truncateErr != nil {
		err = newError(errMetaOpTruncate, ErrAllocate, truncateErr)
	}
	return
}

// Get returns record i of length reclen, or ErrOutOfRange.
//
// The returned slice aliases the storage and is valid until the next call that
// changes the buffer.
func (buf *Buffer) Get(i int, reclen int) (p []byte, err error) {
	mustRecordLength(reclen)
	if buf.released {
		err = newError(errMetaOpGet, ErrReleased, nil)
		return
	}
	if i < 0 || i >= buf.Len(reclen) {
		err = newError(errMetaOpGet, ErrOutOfRange, nil)
		return
	}
	off := i * reclen
	p = buf.b[off : off+reclen : off+reclen]
	return
}

// UnsafeGet returns record i of length reclen without any bounds check.
//
// The caller guarantees 0 <= i < Len(reclen); anything else is undefined behaviour.
func (buf *Buffer) UnsafeGet(i int, reclen int) []byte {
	ptr := unsafe.Add(unsafe.Pointer(unsafe.SliceData(buf.b)), i*reclen)
	return unsafe.Slice((*byte)(ptr), reclen)
}

// Iterate calls fn for every record of length reclen in ascending order.
//
// The number of records visited is fixed when Iterate is called. fn must not
// shrink the buffer.
func (buf *Buffer) Iterate(reclen int, fn func(record []byte)) {
	n := buf.Len(reclen)
	for i := 0; i < n; i++ {
		off := i * reclen
		fn(buf.b[off : off+reclen : off+reclen])
	}
}

// Reset drops the content but keeps the backing allocation for reuse.
func (buf *Buffer) Reset() {
	if buf.released {
		return
	}
	if buf.zero {
		clear(buf.b[:buf.size])
	}
	buf.size = 0
}

// Free releases the backing allocation. The buffer must not be used afterwards.
// Calling Free on a nil or already released buffer does nothing.
func (buf *Buffer) Free() {
	if buf == nil || buf.released {
		return
	}
	buf.release()
	buf.size = 0
	buf.released = true
}

// Export truncates the buffer and hands its storage over to the returned
// Exported, which holds the current number of records of length reclen.
//
// On success the buffer is consumed and must not be used again; the storage is
// owned by the caller and is returned with Exported.Release. If truncation
// fails the buffer is unchanged and still owned by the caller.
func (buf *Buffer) Export(reclen int) (exported *Exported, err error) {
	mustRecordLength(reclen)
	if buf.released {
		err = newError(errMetaOpExport, ErrReleased, nil)
		return
	}
	if truncateErr := buf.truncate(); truncateErr != nil {
		err = newError(errMetaOpExport, ErrAllocate, truncateErr)
		return
	}
	exported = &Exported{
		b:         buf.b,
		nrec:      buf.size / reclen,
		allocator: buf.allocator,
	}
	buf.b = nil
	buf.alloc = 0
	buf.size = 0
	buf.released = true
	return
}

// ExportCopy returns a copy of the content as an Exported holding the current
// number of records of length reclen. The buffer itself is untouched.
func (buf *Buffer) ExportCopy(reclen int) (exported *Exported, err error) {
	mustRecordLength(reclen)
	if buf.released {
		err = newError(errMetaOpExportCopy, ErrReleased, nil)
		return
	}
	exported = &Exported{
		nrec:      buf.size / reclen,
		allocator: buf.allocator,
	}
	if buf.size == 0 {
		return
	}
	p, allocateErr := buf.allocator.Allocate(buf.size)
	if allocateErr != nil {
		exported = nil
		err = newError(errMetaOpExportCopy, ErrAllocate, allocateErr)
		return
	}
	copy(p, buf.b[:buf.size])
	exported.b = p
	return
}

func (buf *Buffer) truncate() (err error) {
	if buf.size == 0 {
		buf.release()
		return
	}
	if buf.alloc > buf.size {
		nb, reallocateErr := buf.allocator.Reallocate(buf.b, buf.size)
		if reallocateErr != nil {
			buf.observer.ReallocateFailed(buf.alloc, buf.size, reallocateErr)
			err = reallocateErr
			return
		}
		buf.observer.Reallocated(buf.alloc, buf.size)
		buf.b = nb
		buf.alloc = buf.size
	}
	return
}

func (buf *Buffer) release() {
	if buf.alloc == 0 {
		return
	}
	if buf.zero {
		clear(buf.b)
	}
	released := buf.alloc
	buf.allocator.Free(buf.b)
	buf.b = nil
	buf.alloc = 0
	buf.observer.Released(released)
}

func mul(nrec int, reclen int) (n int, ok bool) {
	if nrec > maxInt/reclen {
		return
	}
	n, ok = nrec*reclen, true
	return
}

func mustRecordLength(reclen int) {
	if reclen <= 0 {
		panic("elastic: record length must be positive")
	}
}

func mustRecords(nrec int, reclen int) {
	mustRecordLength(reclen)
	if nrec < 0 {
		panic("elastic: record count must not be negative")
	}
}
