package elastic

import "github.com/brickingsoft/elastic/pkg/allocator"

// Exported is storage handed out by Buffer.Export or Buffer.ExportCopy.
//
// The caller owns it and returns it with Release, which frees it through the
// allocator of the buffer it came from.
type Exported struct {
	b         []byte
	nrec      int
	allocator allocator.Allocator
}

// Bytes returns the exported content, nil when no bytes were held.
func (e *Exported) Bytes() []byte {
	return e.b
}

// Len returns the number of records exported.
func (e *Exported) Len() int {
	return e.nrec
}

// Release frees the storage. Further calls do nothing.
func (e *Exported) Release() {
	if e == nil || e.b == nil {
		return
	}
	e.allocator.Free(e.b)
	e.b = nil
	e.nrec = 0
}
