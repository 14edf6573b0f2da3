package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rojanmagar2001/sitecheck/internal/domain"
	"github.com/rojanmagar2001/sitecheck/internal/ports"
)

// Orchestrator drives one session: discover the pages, check them all, then
// write the report. Each step can also be called on its own.
type Orchestrator struct {
	discoverer ports.Discoverer
	batch      *BatchChecker
	store      ports.Store
	reports    ports.ReportWriter
	observer   ports.Observer
	log        logrus.FieldLogger
	now        func() time.Time

	mu sync.Mutex
}

type Result struct {
	Records    []domain.LinkRecord
	Counts     domain.Counts
	ReportPath string
	Elapsed    time.Duration
}

func NewOrchestrator(d ports.Discoverer, b *BatchChecker, st ports.Store, rw ports.ReportWriter, obs ports.Observer, log logrus.FieldLogger) *Orchestrator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Orchestrator{
		discoverer: d,
		batch:      b,
		store:      st,
		reports:    rw,
		observer:   obs,
		log:        log,
		now:        time.Now,
	}
}

func (o *Orchestrator) Run(ctx context.Context, req domain.DiscoveryRequest) (Result, error) {
	start := o.now()

	n, err := o.Discover(ctx, req)
	if err != nil {
		return Result{}, err
	}
	o.log.WithField("links", n).Info("links discovered")

	if err := o.CheckAll(ctx); err != nil {
		return o.result(start, ""), err
	}

	var path string
	if o.reports != nil {
		path, err = o.Report()
		if err != nil {
			return o.result(start, ""), err
		}
		o.log.WithField("path", path).Info("report written")
	}

	return o.result(start, path), nil
}

// Discover replaces the session's collection with the discovered URLs.
// On failure the previous collection is dropped and nothing replaces it.
func (o *Orchestrator) Discover(ctx context.Context, req domain.DiscoveryRequest) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.store.Replace(nil)

	urls, err := o.discoverer.Discover(ctx, req)
	if err != nil {
		return 0, err
	}

	o.store.Replace(urls)
	return len(urls), nil
}

// CheckAll runs the batch checker over the current collection.
func (o *Orchestrator) CheckAll(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.batch.Run(ctx, o.store, o.observer); err != nil {
		return fmt.Errorf("check links: %w", err)
	}
	return nil
}

// Report writes the collection once every link is terminal.
func (o *Orchestrator) Report() (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.reports == nil {
		return "", fmt.Errorf("no report writer configured")
	}
	return o.reports.Save(o.store.Snapshot(), o.now())
}

func (o *Orchestrator) Snapshot() []domain.LinkRecord { return o.store.Snapshot() }

func (o *Orchestrator) result(start time.Time, path string) Result {
	recs := o.store.Snapshot()
	return Result{
		Records:    recs,
		Counts:     domain.CountRecords(recs),
		ReportPath: path,
		Elapsed:    o.now().Sub(start),
	}
}
