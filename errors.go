package elastic

import (
	"github.com/brickingsoft/elastic/pkg/allocator"
	"github.com/brickingsoft/errors"
)

var (
	ErrOverflow      = errors.Define("size overflow")
	ErrAllocate      = allocator.ErrAllocate
	ErrReleased      = errors.Define("buffer released")
	ErrOutOfRange    = errors.Define("record index out of range")
	ErrPartialRecord = errors.Define("partial record")
	ErrInvalidOption = errors.Define("invalid option")
)

func IsOverflow(err error) bool {
	return errors.Is(err, ErrOverflow)
}

func IsAllocate(err error) bool {
	return errors.Is(err, ErrAllocate)
}

func IsReleased(err error) bool {
	return errors.Is(err, ErrReleased)
}

func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}

func IsPartialRecord(err error) bool {
	return errors.Is(err, ErrPartialRecord)
}

const (
	errMetaPkgKey = "pkg"
	errMetaPkgVal = "elastic"
)

const (
	errMetaOpKey        = "op"
	errMetaOpNew        = "new"
	errMetaOpResize     = "resize"
	errMetaOpAppend     = "append"
	errMetaOpTruncate   = "truncate"
	errMetaOpGet        = "get"
	errMetaOpExport     = "export"
	errMetaOpExportCopy = "export_copy"
)

func newError(op string, kind error, cause error) error {
	if cause == nil {
		return errors.From(
			kind,
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithMeta(errMetaOpKey, op),
		)
	}
	return errors.From(
		kind,
		errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
		errors.WithMeta(errMetaOpKey, op),
		errors.WithWrap(cause),
	)
}
