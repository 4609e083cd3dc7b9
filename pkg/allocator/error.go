package allocator

import "github.com/brickingsoft/errors"

var (
	ErrAllocate      = errors.Define("allocate failed")
	ErrQuotaExceeded = errors.Define("quota exceeded")
	ErrInvalidSize   = errors.Define("invalid size")
	ErrExceedsMemory = errors.Define("size exceeds system memory")
)

func IsAllocate(err error) bool {
	return errors.Is(err, ErrAllocate)
}

func IsExceedsMemory(err error) bool {
	return errors.Is(err, ErrExceedsMemory)
}

func IsQuotaExceeded(err error) bool {
	return errors.Is(err, ErrQuotaExceeded)
}

const (
	errMetaPkgKey = "pkg"
	errMetaPkgVal = "allocator"
)

const (
	errMetaOpKey        = "op"
	errMetaOpAllocate   = "allocate"
	errMetaOpReallocate = "reallocate"
	errMetaOpFree       = "free"
)

func newError(op string, cause error) error {
	if cause == nil {
		return errors.From(
			ErrAllocate,
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithMeta(errMetaOpKey, op),
		)
	}
	return errors.From(
		ErrAllocate,
		errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
		errors.WithMeta(errMetaOpKey, op),
		errors.WithWrap(cause),
	)
}
