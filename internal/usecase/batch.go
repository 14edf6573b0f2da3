package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rojanmagar2001/sitecheck/internal/domain"
	"github.com/rojanmagar2001/sitecheck/internal/ports"
)

const DefaultBatchSize = 5

// BatchChecker checks every record of a store in consecutive chunks of at most
// batchSize URLs. Checks inside a chunk run concurrently; a chunk starts only
// once every check of the previous one is terminal.
//
// The goroutine calling Run is the only writer of the store. Check goroutines
// hand their outcome back over a channel, so updates are applied one at a time
// and announced to the observer as each check completes.
type BatchChecker struct {
	checker   ports.LinkChecker
	batchSize int
	log       logrus.FieldLogger
}

func NewBatchChecker(checker ports.LinkChecker, batchSize int, log logrus.FieldLogger) *BatchChecker {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BatchChecker{checker: checker, batchSize: batchSize, log: log}
}

type finished struct {
	index   int
	outcome domain.Outcome
}

// Run checks all records of st. Per-link failures are recorded in the store and
// never returned. An error means the context was cancelled between chunks (the
// remaining records stay pending) or the store rejected a transition.
func (b *BatchChecker) Run(ctx context.Context, st ports.Store, obs ports.Observer) error {
	if obs == nil {
		obs = Observers(nil)
	}

	total := st.Len()
	checked := 0

	obs.Observe(domain.Event{Kind: domain.EventStarted, Total: total})

	for _, c := range Chunks(total, b.batchSize) {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("batch run abandoned after %d/%d links: %w", checked, total, err)
		}

		n, err := b.runChunk(ctx, st, obs, c, checked, total)
		checked += n
		if err != nil {
			return err
		}

		b.log.WithFields(logrus.Fields{
			"chunk":   fmt.Sprintf("%d-%d", c.Start, c.End-1),
			"checked": checked,
			"total":   total,
		}).Debug("chunk done")
	}

	obs.Observe(domain.Event{Kind: domain.EventDone, Checked: checked, Total: total})
	return nil
}

func (b *BatchChecker) runChunk(ctx context.Context, st ports.Store, obs ports.Observer, c Chunk, checked, total int) (int, error) {
	urls := make([]string, 0, c.Len())
	for i := c.Start; i < c.End; i++ {
		rec, err := st.Begin(i)
		if err != nil {
			return 0, fmt.Errorf("begin link %d: %w", i, err)
		}
		urls = append(urls, rec.URL)
		obs.Observe(domain.Event{Kind: domain.EventChecking, Index: i, Record: rec, Checked: checked, Total: total})
	}

	results := make(chan finished, c.Len())
	var g errgroup.Group
	for j, u := range urls {
		idx := c.Start + j
		g.Go(func() error {
			results <- finished{index: idx, outcome: b.checker.Check(ctx, u)}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
	}()

	n := 0
	var firstErr error
	for f := range results {
		rec, err := st.Finish(f.index, f.outcome)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("finish link %d: %w", f.index, err)
			}
			continue
		}
		n++
		obs.Observe(domain.Event{Kind: domain.EventFinished, Index: f.index, Record: rec, Checked: checked + n, Total: total})
	}
	return n, firstErr
}

// Chunk is the half-open index range [Start, End).
type Chunk struct {
	Start int
	End   int
}

func (c Chunk) Len() int { return c.End - c.Start }

// Chunks partitions [0,total) into consecutive ranges of at most size indices.
func Chunks(total, size int) []Chunk {
	if size <= 0 {
		size = DefaultBatchSize
	}
	var out []Chunk
	for start := 0; start < total; start += size {
		out = append(out, Chunk{Start: start, End: min(start+size, total)})
	}
	return out
}

// Observers fans one event out to several observers, in order.
type Observers []ports.Observer

func (obs Observers) Observe(ev domain.Event) {
	for _, o := range obs {
		if o != nil {
			o.Observe(ev)
		}
	}
}

// ObserverFunc adapts a function to ports.Observer.
type ObserverFunc func(domain.Event)

func (f ObserverFunc) Observe(ev domain.Event) { f(ev) }
