package elastic

import (
	"sort"
	"sync"
	"sync/atomic"
)

const (
	minBitSize = 6
	steps      = 20

	minSize = 1 << minBitSize
	maxSize = 1 << (minBitSize + steps - 1)

	calibrateCallsThreshold = 42000
	maxPercentile           = 0.95
)

var defaultPool Pool

// Acquire returns a buffer holding nrec uninitialized records of length reclen from the default pool.
func Acquire(nrec int, reclen int) (*Buffer, error) { return defaultPool.Get(nrec, reclen) }

// Release hands a buffer obtained from Acquire back to the default pool.
func Release(buf *Buffer) { defaultPool.Put(buf) }

// NewPool returns a pool whose new buffers are created with options.
func NewPool(options ...Option) *Pool {
	return &Pool{options: options}
}

// Pool recycles buffers by allocation size class.
//
// Buffers are kept in power-of-two classes so that a buffer taken for a given
// size already has an allocation between one and four times that size and the
// first Resize does not reallocate. The largest retained size is calibrated
// from the content sizes seen by Put; larger buffers are freed.
//
// A Pool is safe for concurrent use. The zero value is ready to use.
type Pool struct {
	calls       [steps]uint64
	calibrating uint64

	maxSize uint64

	options []Option
	classes [steps]sync.Pool
}

// Get returns a buffer holding nrec uninitialized records of length reclen.
func (p *Pool) Get(nrec int, reclen int) (buf *Buffer, err error) {
	mustRecords(nrec, reclen)
	nsize, ok := mul(nrec, reclen)
	if !ok {
		err = newError(errMetaOpNew, ErrOverflow, nil)
		return
	}
	if nsize <= maxSize {
		if v := p.classes[p.ceilIndex(nsize)].Get(); v != nil {
			buf = v.(*Buffer)
			if err = buf.Resize(nrec, reclen); err != nil {
				buf.Free()
				buf = nil
			}
			return
		}
	}
	if buf, err = New(nrec, reclen, p.options...); err == nil {
		buf.pool = p
	}
	return
}

// Put resets buf and keeps it for reuse, or frees it when it is too large.
// buf must not be used afterwards. Buffers not created by this pool's Get carry
// foreign options and are freed.
func (p *Pool) Put(buf *Buffer) {
	if buf == nil || buf.released {
		return
	}
	if buf.pool != p || buf.Allocated() < minSize || buf.Allocated() > maxSize {
		buf.Free()
		return
	}

	idx := p.ceilIndex(buf.Size())
	if atomic.AddUint64(&p.calls[idx], 1) > calibrateCallsThreshold {
		p.calibrate()
	}

	size := int(atomic.LoadUint64(&p.maxSize))
	if size == 0 || buf.Allocated() <= size {
		buf.Reset()
		p.classes[p.floorIndex(buf.Allocated())].Put(buf)
	} else {
		buf.Free()
	}
}

// ceilIndex returns the smallest class whose size is at least n.
func (p *Pool) ceilIndex(n int) int {
	n--
	n >>= minBitSize
	idx := 0
	for n > 0 {
		n >>= 1
		idx++
	}
	if idx >= steps {
		idx = steps - 1
	}
	return idx
}

// floorIndex returns the largest class whose size is at most n, n >= minSize.
func (p *Pool) floorIndex(n int) int {
	n >>= minBitSize
	idx := -1
	for n > 0 {
		n >>= 1
		idx++
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= steps {
		idx = steps - 1
	}
	return idx
}

func (p *Pool) calibrate() {
	if !atomic.CompareAndSwapUint64(&p.calibrating, 0, 1) {
		return
	}

	a := make(callSizes, 0, steps)
	var callsSum uint64
	for i := uint64(0); i < steps; i++ {
		calls := atomic.SwapUint64(&p.calls[i], 0)
		callsSum += calls
		a = append(a, callSize{
			calls: calls,
			size:  minSize << i,
		})
	}
	sort.Sort(a)

	maxSizeOfCall := a[0].size

	maxSum := uint64(float64(callsSum) * maxPercentile)
	callsSum = 0
	for i := 0; i < steps; i++ {
		if callsSum > maxSum {
			break
		}
		callsSum += a[i].calls
		size := a[i].size
		if size > maxSizeOfCall {
			maxSizeOfCall = size
		}
	}

	// a buffer whose content filled the largest common class may hold up to four times that
	atomic.StoreUint64(&p.maxSize, maxSizeOfCall*4)

	atomic.StoreUint64(&p.calibrating, 0)
}

type callSize struct {
	calls uint64
	size  uint64
}

type callSizes []callSize

func (ci callSizes) Len() int {
	return len(ci)
}

func (ci callSizes) Less(i, j int) bool {
	return ci[i].calls > ci[j].calls
}

func (ci callSizes) Swap(i, j int) {
	ci[i], ci[j] = ci[j], ci[i]
}
