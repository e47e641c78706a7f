package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvPipelineClassifyTimeout = "VERDANT_PIPELINE_CLASSIFY_TIMEOUT"
	EnvPipelineSuggestTimeout  = "VERDANT_PIPELINE_SUGGEST_TIMEOUT"
	EnvPipelineBatchWorkers    = "VERDANT_PIPELINE_BATCH_WORKERS"
)

// PipelineConfig holds classification pipeline parameters.
type PipelineConfig struct {
	ClassifyTimeout string `toml:"classify_timeout"`
	SuggestTimeout  string `toml:"suggest_timeout"`
	BatchWorkers    int    `toml:"batch_workers"`
}

// ClassifyTimeoutDuration returns ClassifyTimeout as a time.Duration.
func (c *PipelineConfig) ClassifyTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ClassifyTimeout)
	return d
}

// SuggestTimeoutDuration returns SuggestTimeout as a time.Duration.
func (c *PipelineConfig) SuggestTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.SuggestTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *PipelineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *PipelineConfig) Merge(overlay *PipelineConfig) {
	if overlay.ClassifyTimeout != "" {
		c.ClassifyTimeout = overlay.ClassifyTimeout
	}
	if overlay.SuggestTimeout != "" {
		c.SuggestTimeout = overlay.SuggestTimeout
	}
	if overlay.BatchWorkers != 0 {
		c.BatchWorkers = overlay.BatchWorkers
	}
}

func (c *PipelineConfig) loadDefaults() {
	if c.ClassifyTimeout == "" {
		c.ClassifyTimeout = "10s"
	}
	if c.SuggestTimeout == "" {
		c.SuggestTimeout = "15s"
	}
	if c.BatchWorkers == 0 {
		c.BatchWorkers = 4
	}
}

func (c *PipelineConfig) loadEnv() {
	if v := os.Getenv(EnvPipelineClassifyTimeout); v != "" {
		c.ClassifyTimeout = v
	}
	if v := os.Getenv(EnvPipelineSuggestTimeout); v != "" {
		c.SuggestTimeout = v
	}
	if v := os.Getenv(EnvPipelineBatchWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BatchWorkers = n
		}
	}
}

func (c *PipelineConfig) validate() error {
	if _, err := time.ParseDuration(c.ClassifyTimeout); err != nil {
		return fmt.Errorf("invalid classify_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.SuggestTimeout); err != nil {
		return fmt.Errorf("invalid suggest_timeout: %w", err)
	}
	if c.BatchWorkers < 1 {
		return fmt.Errorf("batch_workers must be positive")
	}
	return nil
}
