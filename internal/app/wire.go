package app

import (
	"github.com/sirupsen/logrus"

	"github.com/rojanmagar2001/sitecheck/internal/check"
	"github.com/rojanmagar2001/sitecheck/internal/config"
	"github.com/rojanmagar2001/sitecheck/internal/infra/extractor"
	"github.com/rojanmagar2001/sitecheck/internal/infra/firecrawl"
	"github.com/rojanmagar2001/sitecheck/internal/infra/httpclient"
	"github.com/rojanmagar2001/sitecheck/internal/infra/limiter"
	"github.com/rojanmagar2001/sitecheck/internal/infra/store"
	"github.com/rojanmagar2001/sitecheck/internal/metrics"
	"github.com/rojanmagar2001/sitecheck/internal/ports"
	"github.com/rojanmagar2001/sitecheck/internal/report"
	"github.com/rojanmagar2001/sitecheck/internal/usecase"
)

type components struct {
	httpc   *httpclient.Client
	orch    *usecase.Orchestrator
	metrics *metrics.Metrics
}

func wire(cfg config.Config, log logrus.FieldLogger) components {
	httpc := httpclient.New(cfg.UserAgent, 0)

	var disc ports.Discoverer
	switch cfg.Source {
	case config.SourcePage:
		disc = extractor.New(httpc, cfg.DiscoveryTimeout, cfg.CrawlDepth, log)
	default:
		disc = firecrawl.New(httpc, cfg.Endpoint, cfg.DiscoveryTimeout, log)
	}

	chk := check.NewChecker(httpc, cfg.Timeout)
	chk.Strict = cfg.Strict
	chk.Limiter = limiter.New(cfg.PerHostRate, 0)

	format, _ := report.ParseFormat(cfg.Format) // validated by cfg.Validate
	m := metrics.New()

	orch := usecase.NewOrchestrator(
		disc,
		usecase.NewBatchChecker(chk, cfg.BatchSize, log),
		store.NewMemory(),
		report.Writer{Dir: cfg.OutDir, Format: format},
		usecase.Observers{usecase.NewProgressLogger(log, cfg.ProgressEvery), m},
		log,
	)

	return components{httpc: httpc, orch: orch, metrics: m}
}
