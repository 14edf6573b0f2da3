// Package config resolves session settings from defaults, an optional YAML
// file, the environment and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rojanmagar2001/sitecheck/internal/domain"
	"github.com/rojanmagar2001/sitecheck/internal/infra/firecrawl"
	"github.com/rojanmagar2001/sitecheck/internal/report"
	"github.com/rojanmagar2001/sitecheck/internal/usecase"
)

const (
	SourceFirecrawl = "firecrawl"
	SourcePage      = "page"

	DefaultTimeout          = 5 * time.Second
	DefaultDiscoveryTimeout = 60 * time.Second
	DefaultUserAgent        = "sitecheck/0.1"
)

// Config is the full set of session settings. Zero durations and sizes in a
// YAML file or the environment leave the previous value in place.
type Config struct {
	BaseURL string `yaml:"url" env:"SITECHECK_URL"`
	APIKey  string `yaml:"api_key" env:"SITECHECK_API_KEY"`
	Limit   int    `yaml:"limit" env:"SITECHECK_LIMIT"`

	Source           string        `yaml:"source" env:"SITECHECK_SOURCE"`
	Endpoint         string        `yaml:"endpoint" env:"SITECHECK_ENDPOINT"`
	DiscoveryTimeout time.Duration `yaml:"discovery_timeout" env:"SITECHECK_DISCOVERY_TIMEOUT"`
	CrawlDepth       int           `yaml:"crawl_depth" env:"SITECHECK_CRAWL_DEPTH"`

	BatchSize   int           `yaml:"batch_size" env:"SITECHECK_BATCH_SIZE"`
	Timeout     time.Duration `yaml:"timeout" env:"SITECHECK_TIMEOUT"`
	Strict      bool          `yaml:"strict" env:"SITECHECK_STRICT"`
	PerHostRate int           `yaml:"per_host_rate" env:"SITECHECK_PER_HOST_RATE"`
	UserAgent   string        `yaml:"user_agent" env:"SITECHECK_USER_AGENT"`

	OutDir string `yaml:"out" env:"SITECHECK_OUT"`
	Format string `yaml:"format" env:"SITECHECK_FORMAT"`

	LogLevel      string        `yaml:"log_level" env:"SITECHECK_LOG_LEVEL"`
	LogJSON       bool          `yaml:"log_json" env:"SITECHECK_LOG_JSON"`
	ProgressEvery time.Duration `yaml:"progress_every" env:"SITECHECK_PROGRESS_EVERY"`
	MetricsFile   string        `yaml:"metrics_file" env:"SITECHECK_METRICS_FILE"`
	FailOnError   bool          `yaml:"fail_on_error" env:"SITECHECK_FAIL_ON_ERROR"`
}

func Default() Config {
	return Config{
		Limit:            domain.DefaultLimit,
		Source:           SourceFirecrawl,
		Endpoint:         firecrawl.DefaultEndpoint,
		DiscoveryTimeout: DefaultDiscoveryTimeout,
		BatchSize:        usecase.DefaultBatchSize,
		Timeout:          DefaultTimeout,
		UserAgent:        DefaultUserAgent,
		OutDir:           ".",
		Format:           string(report.FormatCSV),
		LogLevel:         "info",
		ProgressEvery:    time.Second,
	}
}

// LoadFile overlays the YAML file at path onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	file.apply(c)
	return nil
}

// LoadEnv loads envFile (if it exists) into the process environment, then
// overlays SITECHECK_* variables onto c. FIRECRAWL_API_KEY is honoured when
// SITECHECK_API_KEY is unset.
func (c *Config) LoadEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load env (%s): %w", envFile, err)
		}
	}

	if key := os.Getenv("FIRECRAWL_API_KEY"); key != "" && os.Getenv("SITECHECK_API_KEY") == "" {
		c.APIKey = key
	}

	env := *c
	if err := envdecode.Decode(&env); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return nil
		}
		return fmt.Errorf("decode env: %w", err)
	}
	*c = env
	return nil
}

func (c Config) Validate() error {
	switch c.Source {
	case SourceFirecrawl, SourcePage:
	default:
		return fmt.Errorf("unknown source %q (want %s or %s)", c.Source, SourceFirecrawl, SourcePage)
	}

	req := c.DiscoveryRequest()
	if err := req.Validate(c.Source == SourceFirecrawl); err != nil {
		return err
	}

	if c.CrawlDepth < 0 {
		return fmt.Errorf("crawl depth must be >= 0, got %d", c.CrawlDepth)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch size must be >= 1, got %d", c.BatchSize)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0, got %v", c.Timeout)
	}
	if c.PerHostRate < 0 {
		return fmt.Errorf("per-host rate must be >= 0, got %d", c.PerHostRate)
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		return err
	}
	return nil
}

func (c Config) DiscoveryRequest() domain.DiscoveryRequest {
	return domain.DiscoveryRequest{BaseURL: c.BaseURL, APIKey: c.APIKey, Limit: c.Limit}
}

// fileConfig mirrors Config with pointer fields so that keys missing from the
// file do not overwrite earlier values.
type fileConfig struct {
	BaseURL          *string        `yaml:"url"`
	APIKey           *string        `yaml:"api_key"`
	Limit            *int           `yaml:"limit"`
	Source           *string        `yaml:"source"`
	Endpoint         *string        `yaml:"endpoint"`
	DiscoveryTimeout *time.Duration `yaml:"discovery_timeout"`
	CrawlDepth       *int           `yaml:"crawl_depth"`
	BatchSize        *int           `yaml:"batch_size"`
	Timeout          *time.Duration `yaml:"timeout"`
	Strict           *bool          `yaml:"strict"`
	PerHostRate      *int           `yaml:"per_host_rate"`
	UserAgent        *string        `yaml:"user_agent"`
	OutDir           *string        `yaml:"out"`
	Format           *string        `yaml:"format"`
	LogLevel         *string        `yaml:"log_level"`
	LogJSON          *bool          `yaml:"log_json"`
	ProgressEvery    *time.Duration `yaml:"progress_every"`
	MetricsFile      *string        `yaml:"metrics_file"`
	FailOnError      *bool          `yaml:"fail_on_error"`
}

func (f fileConfig) apply(c *Config) {
	set(&c.BaseURL, f.BaseURL)
	set(&c.APIKey, f.APIKey)
	set(&c.Limit, f.Limit)
	set(&c.Source, f.Source)
	set(&c.Endpoint, f.Endpoint)
	set(&c.DiscoveryTimeout, f.DiscoveryTimeout)
	set(&c.CrawlDepth, f.CrawlDepth)
	set(&c.BatchSize, f.BatchSize)
	set(&c.Timeout, f.Timeout)
	set(&c.Strict, f.Strict)
	set(&c.PerHostRate, f.PerHostRate)
	set(&c.UserAgent, f.UserAgent)
	set(&c.OutDir, f.OutDir)
	set(&c.Format, f.Format)
	set(&c.LogLevel, f.LogLevel)
	set(&c.LogJSON, f.LogJSON)
	set(&c.ProgressEvery, f.ProgressEvery)
	set(&c.MetricsFile, f.MetricsFile)
	set(&c.FailOnError, f.FailOnError)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
