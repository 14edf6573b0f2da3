package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rodaine/table"

	"github.com/rojanmagar2001/sitecheck/internal/config"
	"github.com/rojanmagar2001/sitecheck/internal/domain"
	"github.com/rojanmagar2001/sitecheck/internal/logging"
)

// ErrLinksFailed is returned when FailOnError is set and at least one link
// ended in error or timeout.
var ErrLinksFailed = errors.New("some links failed")

// Run executes one session:
// discover pages -> check them in batches -> write report -> print summary.
func Run(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON, Out: stderr})
	if err != nil {
		return err
	}
	log := logging.Session(logger).WithField("source", cfg.Source)

	c := wire(cfg, log)
	defer c.httpc.CloseIdleConnections()

	res, runErr := c.orch.Run(ctx, cfg.DiscoveryRequest())

	if cfg.MetricsFile != "" {
		if err := c.metrics.WriteFile(cfg.MetricsFile); err != nil {
			log.WithError(err).Warn("metrics not written")
		}
	}

	if runErr != nil {
		var de *domain.DiscoveryError
		if errors.As(runErr, &de) {
			return runErr
		}
		if len(res.Records) > 0 {
			printSummary(stdout, res.Records, res.Counts, res.Elapsed, "")
		}
		return runErr
	}

	printSummary(stdout, res.Records, res.Counts, res.Elapsed, res.ReportPath)

	if cfg.FailOnError && res.Counts.Failed() > 0 {
		return fmt.Errorf("%w: %d error, %d timeout", ErrLinksFailed, res.Counts.Error, res.Counts.Timeout)
	}
	return nil
}

func printSummary(w io.Writer, recs []domain.LinkRecord, c domain.Counts, elapsed time.Duration, reportPath string) {
	if c.Failed() > 0 {
		tbl := table.New("Status", "Text", "Duration", "URL").WithWriter(w)
		for _, r := range recs {
			if r.Status != domain.StatusError && r.Status != domain.StatusTimeout {
				continue
			}
			ms, _ := r.DurationMs()
			tbl.AddRow(r.Status, r.StatusText, fmt.Sprintf("%dms", ms), r.URL)
		}
		tbl.Print()
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Checked %d of %d links in %v. Success: %d  Error: %d  Timeout: %d\n",
		c.Checked(), c.Total, elapsed.Round(time.Millisecond), c.Success, c.Error, c.Timeout)
	if c.Pending+c.Checking > 0 {
		fmt.Fprintf(w, "Not checked: %d\n", c.Pending+c.Checking)
	}
	if reportPath != "" {
		fmt.Fprintf(w, "Report: %s\n", reportPath)
	}
}
