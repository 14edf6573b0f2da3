package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkRecord_Lifecycle(t *testing.T) {
	r := NewLinkRecord("https://a.com")
	assert.Equal(t, StatusPending, r.Status)

	_, ok := r.DurationMs()
	assert.False(t, ok, "pending record has no duration")

	require.NoError(t, r.Begin())
	assert.Equal(t, StatusChecking, r.Status)

	require.NoError(t, r.Finish(Outcome{
		Status:     StatusSuccess,
		StatusCode: 200,
		StatusText: TextOK,
		Duration:   1499 * time.Microsecond,
	}))
	ms, ok := r.DurationMs()
	require.True(t, ok)
	assert.Equal(t, int64(1), ms)
	assert.Equal(t, 200, r.StatusCode)
	assert.Equal(t, TextOK, r.StatusText)
}

func TestLinkRecord_NoRegression(t *testing.T) {
	r := NewLinkRecord("https://a.com")

	err := r.Finish(Outcome{Status: StatusSuccess})
	assert.True(t, errors.Is(err, ErrInvalidTransition), "finish before begin")

	require.NoError(t, r.Begin())
	assert.ErrorIs(t, r.Begin(), ErrInvalidTransition)
	assert.ErrorIs(t, r.Finish(Outcome{Status: StatusChecking}), ErrInvalidTransition)

	require.NoError(t, r.Finish(Outcome{Status: StatusTimeout, StatusText: TextTimeout}))
	assert.ErrorIs(t, r.Finish(Outcome{Status: StatusSuccess}), ErrInvalidTransition)
	assert.ErrorIs(t, r.Begin(), ErrInvalidTransition)
	assert.Equal(t, StatusTimeout, r.Status)
}

func TestCounts(t *testing.T) {
	recs := []LinkRecord{
		{Status: StatusSuccess},
		{Status: StatusError},
		{Status: StatusTimeout},
		{Status: StatusPending},
		{Status: StatusChecking},
	}
	c := CountRecords(recs)
	assert.Equal(t, 5, c.Total)
	assert.Equal(t, 3, c.Checked())
	assert.Equal(t, 2, c.Failed())
	assert.False(t, c.Complete())

	assert.True(t, CountRecords(nil).Complete())
}

func TestDiscoveryError(t *testing.T) {
	err := error(&DiscoveryError{Err: ErrNoLinks})
	assert.ErrorIs(t, err, ErrNoLinks)
	assert.Equal(t, "discovery: no links found in the response", err.Error())

	var de *DiscoveryError
	require.ErrorAs(t, error(&DiscoveryError{Status: "Unauthorized"}), &de)
	assert.Equal(t, "Unauthorized", de.Status)
	assert.Equal(t, "discovery: API request failed: Unauthorized", de.Error())
}
