package usecase

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rojanmagar2001/sitecheck/internal/domain"
)

// ProgressLogger logs each finished link at debug level and the overall
// progress at info level, at most once per interval plus once at the end.
type ProgressLogger struct {
	log   logrus.FieldLogger
	every time.Duration
	now   func() time.Time

	last   time.Time
	counts domain.Counts
}

func NewProgressLogger(log logrus.FieldLogger, every time.Duration) *ProgressLogger {
	if every <= 0 {
		every = time.Second
	}
	return &ProgressLogger{log: log, every: every, now: time.Now}
}

func (p *ProgressLogger) Observe(ev domain.Event) {
	switch ev.Kind {
	case domain.EventStarted:
		p.counts = domain.Counts{Total: ev.Total}
		p.last = p.now()
		p.log.WithField("total", ev.Total).Info("checking links")

	case domain.EventFinished:
		p.counts.Add(ev.Record.Status)
		ms, _ := ev.Record.DurationMs()
		entry := p.log.WithFields(logrus.Fields{
			"index":       ev.Index,
			"url":         ev.Record.URL,
			"status":      ev.Record.Status,
			"duration_ms": ms,
		})
		if ev.Record.StatusCode != 0 {
			entry = entry.WithField("code", ev.Record.StatusCode)
		}
		entry.Debug(ev.Record.StatusText)

		if now := p.now(); now.Sub(p.last) >= p.every {
			p.last = now
			p.progress(ev).Info("progress")
		}

	case domain.EventDone:
		p.progress(ev).Info("checking complete")
	}
}

func (p *ProgressLogger) progress(ev domain.Event) *logrus.Entry {
	pct := 100.0
	if ev.Total > 0 {
		pct = float64(ev.Checked) * 100 / float64(ev.Total)
	}
	return p.log.WithFields(logrus.Fields{
		"checked": ev.Checked,
		"total":   ev.Total,
		"percent": int(pct),
		"success": p.counts.Success,
		"error":   p.counts.Error,
		"timeout": p.counts.Timeout,
	})
}
