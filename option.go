package elastic

import (
	"github.com/brickingsoft/elastic/pkg/allocator"
	"github.com/brickingsoft/errors"
)

type Options struct {
	Allocator     allocator.Allocator
	Observer      Observer
	ZeroOnRelease bool
}

type Option func(options *Options) (err error)

// WithAllocator
// 设置底层内存分配器。
//
// 默认为 allocator.Default。导出的内存必须通过同一个分配器释放。
func WithAllocator(a allocator.Allocator) Option {
	return func(options *Options) (err error) {
		if a == nil {
			err = errors.From(ErrInvalidOption, errors.WithWrap(errors.New("allocator is nil")))
			return
		}
		options.Allocator = a
		return
	}
}

// WithObserver
// 设置重新分配事件的观察者。
func WithObserver(o Observer) Option {
	return func(options *Options) (err error) {
		if o == nil {
			err = errors.From(ErrInvalidOption, errors.WithWrap(errors.New("observer is nil")))
			return
		}
		options.Observer = o
		return
	}
}

// WithZeroOnRelease
// 释放或缩小内存之前清零。
//
// Storage handed out by Export is not wiped.
func WithZeroOnRelease() Option {
	return func(options *Options) (err error) {
		options.ZeroOnRelease = true
		return
	}
}

func newOptions(options []Option) (opts Options, err error) {
	opts = Options{
		Allocator: allocator.Default,
		Observer:  nopObserver{},
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		if err = option(&opts); err != nil {
			return
		}
	}
	return
}
