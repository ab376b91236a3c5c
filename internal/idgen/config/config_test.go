package config

import (
	"testing"
	"time"

	"github.com/anthanhphan/go-snowflake/pkg/idgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "redis clock", mutate: func(c *Config) { c.Generator.Clock = ClockRedis }},
		{name: "hostname ignores worker_id", mutate: func(c *Config) {
			c.Generator.WorkerIDSource = WorkerSourceHostname
			c.Generator.WorkerID = -1
		}},
		{name: "unknown clock", mutate: func(c *Config) { c.Generator.Clock = "ntp" }, wantErr: true},
		{name: "worker too large", mutate: func(c *Config) { c.Generator.WorkerID = idgen.MaxWorkerID + 1 }, wantErr: true},
		{name: "unknown worker source", mutate: func(c *Config) { c.Generator.WorkerIDSource = "zookeeper" }, wantErr: true},
		{name: "bad epoch", mutate: func(c *Config) { c.Generator.Epoch = "yesterday" }, wantErr: true},
		{name: "zero batch", mutate: func(c *Config) { c.Generator.MaxBatch = 0 }, wantErr: true},
		{name: "negative retries", mutate: func(c *Config) { c.Generator.MaxClockRetries = -1 }, wantErr: true},
		{name: "no listeners", mutate: func(c *Config) {
			c.Server.HTTPAddr = ""
			c.Server.GRPCPort = 0
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEpochMillis(t *testing.T) {
	cfg := DefaultConfig()

	cfg.Generator.Epoch = "2024-01-01T00:00:00Z"
	ms, err := cfg.EpochMillis()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), ms)

	cfg.Generator.Epoch = "1288834974657"
	ms, err = cfg.EpochMillis()
	require.NoError(t, err)
	assert.Equal(t, int64(1288834974657), ms)
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load("does/not/exist.yaml")
	assert.Error(t, err)
}
