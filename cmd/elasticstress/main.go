package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sync"
	"sync/atomic"

	"github.com/brickingsoft/elastic"
	"github.com/brickingsoft/elastic/internal/config"
	"github.com/brickingsoft/elastic/internal/workload"
	"github.com/brickingsoft/elastic/pkg/allocator"
	"github.com/brickingsoft/elastic/pkg/metrics"
	"github.com/brickingsoft/elastic/pkg/zaplog"
	"github.com/brickingsoft/rxp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configFile = flag.String("config", getEnv("CONFIG_FILE", ""), "Path to configuration file")
	logLevel   = flag.String("log-level", "", "Log level (debug, info, warn, error), overrides the configuration")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting elasticstress",
		zap.Int("workers", cfg.Workers),
		zap.Int("iterations", cfg.Workload.Iterations),
		zap.Int("recordLength", cfg.Workload.RecordLength),
		zap.String("allocator", cfg.Allocator.Kind),
		zap.Int64("quotaBytes", cfg.Allocator.QuotaBytes),
	)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			logger.Info("Starting metrics server", zap.String("address", cfg.MetricsAddr))
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	var alloc allocator.Allocator = allocator.Heap{}
	if cfg.Allocator.Kind == "mmap" {
		alloc = allocator.Mmap{}
	}
	var limited *allocator.Limited
	if cfg.Allocator.QuotaBytes > 0 {
		limited = allocator.NewLimited(alloc, cfg.Allocator.QuotaBytes)
		alloc = limited
	}

	options := []elastic.Option{
		elastic.WithAllocator(alloc),
		elastic.WithObserver(elastic.Observers(m, zaplog.New(logger))),
	}
	if cfg.Allocator.ZeroOnRelease {
		options = append(options, elastic.WithZeroOnRelease())
	}

	if failed := run(cfg, logger, options); failed > 0 {
		logger.Error("elasticstress failed", zap.Int64("failedWorkers", failed))
		logger.Sync()
		os.Exit(1)
	}

	fields := []zap.Field{}
	if limited != nil {
		fields = append(fields, zap.Int64("inUse", limited.InUse()))
	}
	logger.Info("elasticstress finished", fields...)
}

// run executes one workload per worker on an rxp executor pool and returns the number of failed workers
func run(cfg *config.Config, logger *zap.Logger, options []elastic.Option) int64 {
	executors, err := rxp.New()
	if err != nil {
		logger.Error("Failed to create executors", zap.Error(err))
		return int64(cfg.Workers)
	}
	defer func(executors rxp.Executors) {
		if closeErr := executors.Close(); closeErr != nil {
			logger.Warn("Failed to close executors", zap.Error(closeErr))
		}
	}(executors)
	ctx := executors.Context()

	failed := new(atomic.Int64)
	wg := new(sync.WaitGroup)
	for w := 0; w < cfg.Workers; w++ {
		task := &workerTask{
			id:      w,
			cfg:     cfg.Workload,
			logger:  logger.With(zap.Int("worker", w)),
			options: options,
			failed:  failed,
			wg:      wg,
		}
		wg.Add(1)
		if execErr := executors.Execute(ctx, task); execErr != nil {
			wg.Done()
			failed.Add(1)
			logger.Error("Failed to start worker", zap.Int("worker", w), zap.Error(execErr))
		}
	}
	wg.Wait()
	return failed.Load()
}

// workerTask runs a single workload as an rxp.Task
type workerTask struct {
	id      int
	cfg     config.WorkloadConfig
	logger  *zap.Logger
	options []elastic.Option
	failed  *atomic.Int64
	wg      *sync.WaitGroup
}

func (task *workerTask) Handle(_ context.Context) {
	defer task.wg.Done()
	res, err := workload.Run(task.cfg, task.cfg.Seed+int64(task.id), task.logger, task.options...)
	if err != nil {
		task.failed.Add(1)
		task.logger.Error("Workload failed", zap.Error(err))
		return
	}
	task.logger.Info("Workload finished",
		zap.Int("appended", res.Appended),
		zap.Int("removed", res.Removed),
		zap.Int("copies", res.Copies),
		zap.Int("appendFailures", res.AppendFailures),
		zap.Int("records", res.Records),
	)
}

// initLogger initializes the zap logger based on the log level
func initLogger(level string) (*zap.Logger, error) {
	var config zap.Config

	switch level {
	case "debug":
		config = zap.NewDevelopmentConfig()
	case "info", "warn", "error":
		config = zap.NewProductionConfig()
		config.Level = parseLogLevel(level)
	default:
		config = zap.NewProductionConfig()
	}

	return config.Build()
}

// parseLogLevel parses the log level string
func parseLogLevel(level string) zap.AtomicLevel {
	switch level {
	case "debug":
		return zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "warn":
		return zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		return zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	default:
		return zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
