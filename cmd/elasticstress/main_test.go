package main

import (
	"context"
	"github.com/brickingsoft/elastic"
	"github.com/brickingsoft/elastic/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"sync"
	"sync/atomic"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"unknown": zapcore.InfoLevel,
	}
	for level, want := range cases {
		if got := parseLogLevel(level).Level(); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", level, got, want)
		}
	}
}

func TestRun(t *testing.T) {
	cfg := &config.Config{
		Workers: 3,
		Workload: config.WorkloadConfig{
			Iterations:   200,
			RecordLength: 4,
			MaxBatch:     8,
			ExportEvery:  50,
		},
	}
	if failed := run(cfg, zap.NewNop(), []elastic.Option{elastic.WithZeroOnRelease()}); failed != 0 {
		t.Fatalf("%d workers failed", failed)
	}
}

func TestWorkerTask_Handle(t *testing.T) {
	failed := new(atomic.Int64)
	wg := new(sync.WaitGroup)
	task := &workerTask{
		id: 1,
		cfg: config.WorkloadConfig{
			Iterations:   50,
			RecordLength: 8,
			MaxBatch:     4,
		},
		logger: zap.NewNop(),
		failed: failed,
		wg:     wg,
	}
	wg.Add(1)
	task.Handle(context.Background())
	wg.Wait()
	if failed.Load() != 0 {
		t.Fatalf("failed = %d, want 0", failed.Load())
	}
}
