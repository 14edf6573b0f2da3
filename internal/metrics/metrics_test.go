package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rojanmagar2001/sitecheck/internal/domain"
)

func TestMetrics_Observe(t *testing.T) {
	m := New()

	m.Observe(domain.Event{Kind: domain.EventStarted, Total: 3})
	for i := 0; i < 3; i++ {
		m.Observe(domain.Event{Kind: domain.EventChecking, Index: i, Total: 3})
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(m.inFlight))

	m.Observe(domain.Event{Kind: domain.EventFinished, Index: 0, Checked: 1, Total: 3,
		Record: domain.LinkRecord{Status: domain.StatusSuccess, Duration: 10 * time.Millisecond}})
	m.Observe(domain.Event{Kind: domain.EventFinished, Index: 2, Checked: 2, Total: 3,
		Record: domain.LinkRecord{Status: domain.StatusTimeout, Duration: 5 * time.Second}})
	m.Observe(domain.Event{Kind: domain.EventFinished, Index: 1, Checked: 3, Total: 3,
		Record: domain.LinkRecord{Status: domain.StatusSuccess, Duration: 20 * time.Millisecond}})
	m.Observe(domain.Event{Kind: domain.EventDone, Checked: 3, Total: 3})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.checks.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.checks.WithLabelValues("timeout")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.checked))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.total))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
}

func TestMetrics_WriteFile(t *testing.T) {
	m := New()
	m.Observe(domain.Event{Kind: domain.EventStarted, Total: 1})

	path := filepath.Join(t.TempDir(), "sitecheck.prom")
	require.NoError(t, m.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "sitecheck_links_total 1")
}
