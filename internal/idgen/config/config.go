package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/anthanhphan/go-snowflake/pkg/idgen"
	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
)

const (
	ClockSystem    = "system"
	ClockMonotonic = "monotonic"
	ClockRedis     = "redis"

	WorkerSourceConfig   = "config"
	WorkerSourceHostname = "hostname"
)

// Config holds ID service configuration
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	Generator GeneratorConfig `json:"generator" yaml:"generator"`
	Redis     RedisConfig     `json:"redis" yaml:"redis"`
	Logger    logger.Config   `json:"logger" yaml:"logger"`
}

type ServerConfig struct {
	HTTPAddr string `json:"http_addr" yaml:"http_addr"`
	GRPCPort int    `json:"grpc_port" yaml:"grpc_port"`
}

type GeneratorConfig struct {
	WorkerID       int64  `json:"worker_id" yaml:"worker_id"`
	WorkerIDSource string `json:"worker_id_source" yaml:"worker_id_source"` // "config", "hostname"
	// Epoch is either an RFC3339 timestamp or milliseconds since the Unix epoch.
	Epoch           string `json:"epoch" yaml:"epoch"`
	Clock           string `json:"clock" yaml:"clock"` // "system", "monotonic", "redis"
	MaxBatch        int    `json:"max_batch" yaml:"max_batch"`
	MaxClockRetries int    `json:"max_clock_retries" yaml:"max_clock_retries"`
	MaxRetryWaitMS  int    `json:"max_retry_wait_ms" yaml:"max_retry_wait_ms"`
}

type RedisConfig struct {
	Addr      string `json:"addr" yaml:"addr"`
	Password  string `json:"password" yaml:"password"`
	DB        int    `json:"db" yaml:"db"`
	TimeoutMS int    `json:"timeout_ms" yaml:"timeout_ms"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr: ":8090",
			GRPCPort: 9090,
		},
		Generator: GeneratorConfig{
			WorkerID:        1,
			WorkerIDSource:  WorkerSourceConfig,
			Epoch:           "2024-01-01T00:00:00Z",
			Clock:           ClockMonotonic,
			MaxBatch:        1000,
			MaxClockRetries: 3,
			MaxRetryWaitMS:  50,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			TimeoutMS: 50,
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// Validate rejects settings the generator cannot start with.
func (c *Config) Validate() error {
	g := c.Generator
	switch g.Clock {
	case ClockSystem, ClockMonotonic, ClockRedis:
	default:
		return fmt.Errorf("unknown clock %q", g.Clock)
	}
	switch g.WorkerIDSource {
	case WorkerSourceConfig:
		if g.WorkerID < 0 || g.WorkerID > idgen.MaxWorkerID {
			return idgen.ErrWorkerIDOutOfRange
		}
	case WorkerSourceHostname:
	default:
		return fmt.Errorf("unknown worker_id_source %q", g.WorkerIDSource)
	}
	if _, err := c.EpochMillis(); err != nil {
		return err
	}
	if g.MaxBatch <= 0 {
		return errors.New("max_batch must be positive")
	}
	if g.MaxClockRetries < 0 {
		return errors.New("max_clock_retries must not be negative")
	}
	if c.Server.HTTPAddr == "" && c.Server.GRPCPort == 0 {
		return errors.New("at least one of http_addr and grpc_port is required")
	}
	return nil
}

// EpochMillis parses Generator.Epoch.
func (c *Config) EpochMillis() (int64, error) {
	raw := c.Generator.Epoch
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return ms, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return 0, fmt.Errorf("invalid epoch %q: want RFC3339 or unix milliseconds", raw)
	}
	return t.UnixMilli(), nil
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("internal", "idgen", "config", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		// The logger is not initialized yet at this point.
		log.Printf("Config file not loaded, path: %s, error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		return cfg, cfg.Validate()
	}

	if err := parsedCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return parsedCfg, nil
}

// MustLoad loads configuration or exits on error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
