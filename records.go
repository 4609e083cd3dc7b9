package elastic

// NewRecords creates a buffer of nrec uninitialized records whose length is
// fixed to reclen for the lifetime of the returned Records.
func NewRecords(nrec int, reclen int, options ...Option) (*Records, error) {
	buf, err := New(nrec, reclen, options...)
	if err != nil {
		return nil, err
	}
	return &Records{buf: buf, reclen: reclen}, nil
}

// Records is a Buffer bound to a single record length.
type Records struct {
	buf    *Buffer
	reclen int
}

func (r *Records) RecordLength() int {
	return r.reclen
}

// Buffer returns the underlying buffer.
func (r *Records) Buffer() *Buffer {
	return r.buf
}

func (r *Records) Len() int {
	return r.buf.Len(r.reclen)
}

func (r *Records) Resize(nrec int) error {
	return r.buf.Resize(nrec, r.reclen)
}

// Append appends the records in p. len(p) must be a whole number of records.
func (r *Records) Append(p []byte) error {
	if len(p)%r.reclen != 0 {
		return newError(errMetaOpAppend, ErrPartialRecord, nil)
	}
	return r.buf.Append(p, len(p)/r.reclen, r.reclen)
}

func (r *Records) Shrink(nrec int) {
	r.buf.Shrink(nrec, r.reclen)
}

func (r *Records) Truncate() error {
	return r.buf.Truncate()
}

func (r *Records) Get(i int) ([]byte, error) {
	return r.buf.Get(i, r.reclen)
}

func (r *Records) UnsafeGet(i int) []byte {
	return r.buf.UnsafeGet(i, r.reclen)
}

func (r *Records) Iterate(fn func(record []byte)) {
	r.buf.Iterate(r.reclen, fn)
}

func (r *Records) Free() {
	r.buf.Free()
}

func (r *Records) Export() (*Exported, error) {
	return r.buf.Export(r.reclen)
}

func (r *Records) ExportCopy() (*Exported, error) {
	return r.buf.ExportCopy(r.reclen)
}
