// Package workload drives one elastic buffer through a random sequence of
// appends, shrinks and exports while checking it against a plain slice.
package workload

import (
	"bytes"
	"fmt"
	"math/rand"

	"github.com/brickingsoft/elastic"
	"github.com/brickingsoft/elastic/internal/config"
	"github.com/brickingsoft/errors"
	"go.uber.org/zap"
)

var ErrMismatch = errors.Define("buffer content mismatch")

// Result summarizes a finished run.
type Result struct {
	Appended        int
	Removed         int
	Copies          int
	AppendFailures  int
	// OverProvisioned counts iterations that ended with more than four times the content allocated.
	OverProvisioned int
	Records         int
}

// Run executes the workload on a fresh buffer built with options. seed
// overrides the configured seed so that concurrent workers diverge.
func Run(cfg config.WorkloadConfig, seed int64, logger *zap.Logger, options ...elastic.Option) (res Result, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	reclen := cfg.RecordLength
	records, newErr := elastic.NewRecords(0, reclen, options...)
	if newErr != nil {
		err = fmt.Errorf("failed to create buffer: %w", newErr)
		return
	}
	defer records.Free()

	rng := rand.New(rand.NewSource(seed))
	model := make([]byte, 0, cfg.MaxBatch*reclen)
	batch := make([]byte, cfg.MaxBatch*reclen)
	overProvisioned := false

	for i := 0; i < cfg.Iterations; i++ {
		n := rng.Intn(cfg.MaxBatch) + 1
		p := batch[:n*reclen]
		rng.Read(p)
		if appendErr := records.Append(p); appendErr != nil {
			if !elastic.IsAllocate(appendErr) {
				err = appendErr
				return
			}
			res.AppendFailures++
			logger.Debug("append failed", zap.Int("iteration", i), zap.Error(appendErr))
		} else {
			model = append(model, p...)
			res.Appended += n
		}

		// shrink by up to one and a half batches so the buffer keeps draining and refilling
		m := rng.Intn(cfg.MaxBatch + cfg.MaxBatch/2 + 1)
		records.Shrink(m)
		if m*reclen > len(model) {
			m = len(model) / reclen
		}
		model = model[:len(model)-m*reclen]
		res.Removed += m

		if records.Len()*reclen != len(model) {
			err = errors.From(ErrMismatch, errors.WithWrap(fmt.Errorf("iteration %d: %d records, want %d", i, records.Len(), len(model)/reclen)))
			return
		}
		if buf := records.Buffer(); buf.Size() > 0 && buf.Allocated() > 4*buf.Size() {
			if !overProvisioned {
				logger.Warn("over-provisioned after failed shrink",
					zap.Int("iteration", i),
					zap.Int("size", buf.Size()),
					zap.Int("allocated", buf.Allocated()),
				)
			}
			overProvisioned = true
			res.OverProvisioned++
		} else {
			overProvisioned = false
		}

		if cfg.ExportEvery > 0 && (i+1)%cfg.ExportEvery == 0 {
			if err = verifyCopy(records, model); err != nil {
				return
			}
			res.Copies++
		}
	}

	exported, exportErr := records.Export()
	if exportErr != nil {
		err = fmt.Errorf("failed to export buffer: %w", exportErr)
		return
	}
	defer exported.Release()
	if exported.Len() != len(model)/reclen || !bytes.Equal(exported.Bytes(), model) {
		err = errors.From(ErrMismatch, errors.WithWrap(fmt.Errorf("export: %d records, want %d", exported.Len(), len(model)/reclen)))
		return
	}
	res.Records = exported.Len()
	return
}

func verifyCopy(records *elastic.Records, model []byte) error {
	copied, err := records.ExportCopy()
	if err != nil {
		if elastic.IsAllocate(err) {
			return nil
		}
		return err
	}
	defer copied.Release()
	if !bytes.Equal(copied.Bytes(), model) {
		return errors.From(ErrMismatch, errors.WithWrap(fmt.Errorf("copy of %d records differs", copied.Len())))
	}
	return nil
}
