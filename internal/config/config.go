package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the stress tool configuration
type Config struct {
	Workers     int             `mapstructure:"workers"`
	Workload    WorkloadConfig  `mapstructure:"workload"`
	Allocator   AllocatorConfig `mapstructure:"allocator"`
	LogLevel    string          `mapstructure:"logLevel"`
	MetricsAddr string          `mapstructure:"metricsAddr"`
}

// WorkloadConfig represents what every worker does with its buffer
type WorkloadConfig struct {
	Iterations   int   `mapstructure:"iterations"`
	RecordLength int   `mapstructure:"recordLength"`
	MaxBatch     int   `mapstructure:"maxBatch"`
	ExportEvery  int   `mapstructure:"exportEvery"`
	Seed         int64 `mapstructure:"seed"`
}

// AllocatorConfig represents the backing allocation discipline
type AllocatorConfig struct {
	Kind          string `mapstructure:"kind"` // heap, mmap
	QuotaBytes    int64  `mapstructure:"quotaBytes"`
	ZeroOnRelease bool   `mapstructure:"zeroOnRelease"`
}

// Load loads configuration from file, or from defaults and environment when file is empty
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ELASTIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workers", 4)
	v.SetDefault("workload.iterations", 10000)
	v.SetDefault("workload.recordLength", 16)
	v.SetDefault("workload.maxBatch", 64)
	v.SetDefault("workload.exportEvery", 1000)
	v.SetDefault("workload.seed", 1)
	v.SetDefault("allocator.kind", "heap")
	v.SetDefault("allocator.quotaBytes", 0)
	v.SetDefault("allocator.zeroOnRelease", false)
	v.SetDefault("logLevel", "info")
	v.SetDefault("metricsAddr", "")
}

// Validate checks the configuration for values the workload cannot run with
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Workload.RecordLength < 1 {
		return fmt.Errorf("workload.recordLength must be positive, got %d", c.Workload.RecordLength)
	}
	if c.Workload.MaxBatch < 1 {
		return fmt.Errorf("workload.maxBatch must be positive, got %d", c.Workload.MaxBatch)
	}
	if c.Workload.Iterations < 0 {
		return fmt.Errorf("workload.iterations must not be negative, got %d", c.Workload.Iterations)
	}
	switch c.Allocator.Kind {
	case "heap", "mmap":
	default:
		return fmt.Errorf("unknown allocator kind %q", c.Allocator.Kind)
	}
	if c.Allocator.QuotaBytes < 0 {
		return fmt.Errorf("allocator.quotaBytes must not be negative, got %d", c.Allocator.QuotaBytes)
	}
	return nil
}
