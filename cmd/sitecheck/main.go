package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rojanmagar2001/sitecheck/internal/app"
	"github.com/rojanmagar2001/sitecheck/internal/config"
)

func main() {
	def := config.Default()

	var (
		configFile = flag.String("config", "", "YAML config file")
		envFile    = flag.String("env-file", ".env", "dotenv file loaded before reading SITECHECK_* variables")

		baseURL  = flag.String("url", "", "Site base URL e.g. https://example.com")
		apiKey   = flag.String("api-key", "", "Firecrawl API key (or FIRECRAWL_API_KEY)")
		limit    = flag.Int("limit", def.Limit, "Maximum number of pages to discover (1..5000)")
		source   = flag.String("source", def.Source, "Discovery source: firecrawl or page")
		endpoint = flag.String("endpoint", def.Endpoint, "Map API endpoint")
		depth    = flag.Int("depth", def.CrawlDepth, "Same-host link depth followed by the page source")

		batchSize   = flag.Int("batch-size", def.BatchSize, "Links checked concurrently per batch")
		timeout     = flag.Duration("timeout", def.Timeout, "Per-link check timeout (e.g. 5s)")
		strict      = flag.Bool("strict", def.Strict, "Treat HTTP >= 400 as error")
		perHostRate = flag.Int("per-host-rate", def.PerHostRate, "Max requests per second per host (0 = unlimited)")
		userAgent   = flag.String("user-agent", def.UserAgent, "User-Agent header")

		outDir = flag.String("out", def.OutDir, "Report directory")
		format = flag.String("format", def.Format, "Report format: csv, xlsx or json")

		logLevel      = flag.String("log-level", def.LogLevel, "Log level: debug, info, warn, error")
		logJSON       = flag.Bool("log-json", def.LogJSON, "Log as JSON")
		progressEvery = flag.Duration("progress-every", def.ProgressEvery, "Interval between progress lines")
		metricsFile   = flag.String("metrics-file", "", "Write Prometheus metrics to this file")
		failOnError   = flag.Bool("fail-on-error", def.FailOnError, "Exit non-zero when any link fails")
	)
	flag.Parse()

	cfg := def
	if *configFile != "" {
		if err := cfg.LoadFile(*configFile); err != nil {
			fatal(err)
		}
	}
	if err := cfg.LoadEnv(*envFile); err != nil {
		fatal(err)
	}

	// Flags given on the command line win over file and environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "url":
			cfg.BaseURL = *baseURL
		case "api-key":
			cfg.APIKey = *apiKey
		case "limit":
			cfg.Limit = *limit
		case "source":
			cfg.Source = *source
		case "endpoint":
			cfg.Endpoint = *endpoint
		case "depth":
			cfg.CrawlDepth = *depth
		case "batch-size":
			cfg.BatchSize = *batchSize
		case "timeout":
			cfg.Timeout = *timeout
		case "strict":
			cfg.Strict = *strict
		case "per-host-rate":
			cfg.PerHostRate = *perHostRate
		case "user-agent":
			cfg.UserAgent = *userAgent
		case "out":
			cfg.OutDir = *outDir
		case "format":
			cfg.Format = *format
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-json":
			cfg.LogJSON = *logJSON
		case "progress-every":
			cfg.ProgressEvery = *progressEvery
		case "metrics-file":
			cfg.MetricsFile = *metricsFile
		case "fail-on-error":
			cfg.FailOnError = *failOnError
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		stop()
		if errors.Is(err, app.ErrLinksFailed) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
