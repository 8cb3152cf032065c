package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvPipelinePreprocessTimeout = "PLAZO_PIPELINE_PREPROCESS_TIMEOUT"
	EnvPipelineExtractTimeout    = "PLAZO_PIPELINE_EXTRACT_TIMEOUT"
	EnvPipelineValidateTimeout   = "PLAZO_PIPELINE_VALIDATE_TIMEOUT"
	EnvPipelineVerifyThreshold   = "PLAZO_PIPELINE_VERIFY_THRESHOLD"
	EnvPipelineBatchLimit        = "PLAZO_PIPELINE_BATCH_LIMIT"
)

// PipelineConfig holds per-stage timeouts and processing limits.
type PipelineConfig struct {
	PreprocessTimeout string  `toml:"preprocess_timeout"`
	ExtractTimeout    string  `toml:"extract_timeout"`
	ValidateTimeout   string  `toml:"validate_timeout"`
	VerifyThreshold   float64 `toml:"verify_threshold"`
	BatchLimit        int     `toml:"batch_limit"`
}

// PreprocessTimeoutDuration returns PreprocessTimeout as a time.Duration.
func (c *PipelineConfig) PreprocessTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.PreprocessTimeout)
	return d
}

// ExtractTimeoutDuration returns ExtractTimeout as a time.Duration.
func (c *PipelineConfig) ExtractTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ExtractTimeout)
	return d
}

// ValidateTimeoutDuration returns ValidateTimeout as a time.Duration.
func (c *PipelineConfig) ValidateTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ValidateTimeout)
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
	if overlay.PreprocessTimeout != "" {
		c.PreprocessTimeout = overlay.PreprocessTimeout
	}
	if overlay.ExtractTimeout != "" {
		c.ExtractTimeout = overlay.ExtractTimeout
	}
	if overlay.ValidateTimeout != "" {
		c.ValidateTimeout = overlay.ValidateTimeout
	}
	if overlay.VerifyThreshold != 0 {
		c.VerifyThreshold = overlay.VerifyThreshold
	}
	if overlay.BatchLimit != 0 {
		c.BatchLimit = overlay.BatchLimit
	}
}

func (c *PipelineConfig) loadDefaults() {
	if c.PreprocessTimeout == "" {
		c.PreprocessTimeout = "30s"
	}
	if c.ExtractTimeout == "" {
		c.ExtractTimeout = "2m"
	}
	if c.ValidateTimeout == "" {
		c.ValidateTimeout = "45s"
	}
	if c.VerifyThreshold == 0 {
		c.VerifyThreshold = 0.85
	}
	if c.BatchLimit == 0 {
		c.BatchLimit = 4
	}
}

func (c *PipelineConfig) loadEnv() {
	if v := os.Getenv(EnvPipelinePreprocessTimeout); v != "" {
		c.PreprocessTimeout = v
	}
	if v := os.Getenv(EnvPipelineExtractTimeout); v != "" {
		c.ExtractTimeout = v
	}
	if v := os.Getenv(EnvPipelineValidateTimeout); v != "" {
		c.ValidateTimeout = v
	}
	if v := os.Getenv(EnvPipelineVerifyThreshold); v != "" {
		if threshold, err := strconv.ParseFloat(v, 64); err == nil {
			c.VerifyThreshold = threshold
		}
	}
	if v := os.Getenv(EnvPipelineBatchLimit); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			c.BatchLimit = limit
		}
	}
}

func (c *PipelineConfig) validate() error {
	if _, err := time.ParseDuration(c.PreprocessTimeout); err != nil {
		return fmt.Errorf("invalid preprocess_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.ExtractTimeout); err != nil {
		return fmt.Errorf("invalid extract_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.ValidateTimeout); err != nil {
		return fmt.Errorf("invalid validate_timeout: %w", err)
	}
	if c.VerifyThreshold < 0 || c.VerifyThreshold > 1 {
		return fmt.Errorf("verify_threshold must be in [0, 1]: %g", c.VerifyThreshold)
	}
	if c.BatchLimit < 1 {
		return fmt.Errorf("batch_limit must be positive: %d", c.BatchLimit)
	}
	return nil
}
