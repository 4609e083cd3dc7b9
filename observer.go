package elastic

// Observer receives the reallocation events of a Buffer.
//
// Calls happen synchronously on the goroutine that owns the buffer, so
// implementations shared between buffers must be safe for concurrent use.
type Observer interface {
	// Reallocated reports a successful change of the backing allocation from one size to another.
	Reallocated(from int, to int)
	// ReallocateFailed reports an allocator failure; the allocation is still from bytes.
	ReallocateFailed(from int, to int, err error)
	// Released reports that size bytes of storage were released.
	Released(size int)
}

type nopObserver struct{}

func (nopObserver) Reallocated(_ int, _ int) {}

func (nopObserver) ReallocateFailed(_ int, _ int, _ error) {}

func (nopObserver) Released(_ int) {}

// Observers fans events out to every observer in order.
func Observers(observers ...Observer) Observer {
	list := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			list = append(list, o)
		}
	}
	return list
}

type multiObserver []Observer

func (m multiObserver) Reallocated(from int, to int) {
	for _, o := range m {
		o.Reallocated(from, to)
	}
}

func (m multiObserver) ReallocateFailed(from int, to int, err error) {
	for _, o := range m {
		o.ReallocateFailed(from, to, err)
	}
}

func (m multiObserver) Released(size int) {
	for _, o := range m {
		o.Released(size)
	}
}
