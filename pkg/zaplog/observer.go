// Package zaplog reports elastic buffer reallocations to a zap logger.
package zaplog

import (
	"go.uber.org/zap"
)

// New returns an observer writing to logger. A nil logger discards everything.
func New(logger *zap.Logger) *Observer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Observer{logger: logger.Named("elastic")}
}

// Observer logs reallocations and releases at debug level and failures at warn level.
type Observer struct {
	logger *zap.Logger
}

func (o *Observer) Reallocated(from int, to int) {
	direction := "grow"
	if to < from {
		direction = "shrink"
	}
	o.logger.Debug("reallocated",
		zap.String("direction", direction),
		zap.Int("from", from),
		zap.Int("to", to),
	)
}

func (o *Observer) ReallocateFailed(from int, to int, err error) {
	o.logger.Warn("reallocate failed",
		zap.Int("from", from),
		zap.Int("to", to),
		zap.Error(err),
	)
}

func (o *Observer) Released(size int) {
	o.logger.Debug("released", zap.Int("size", size))
}
