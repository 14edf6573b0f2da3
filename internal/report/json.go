package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/rojanmagar2001/sitecheck/internal/domain"
)

// JSONReport is the machine-readable report for CI pipelines.
type JSONReport struct {
	GeneratedAt string       `json:"generatedAt"`
	Summary     JSONSummary  `json:"summary"`
	Results     []JSONResult `json:"results"`
}

type JSONSummary struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Error   int `json:"error"`
	Timeout int `json:"timeout"`
}

type JSONResult struct {
	URL        string `json:"url"`
	Status     string `json:"status"`
	StatusCode *int   `json:"statusCode,omitempty"`
	StatusText string `json:"statusText,omitempty"`
	DurationMs *int64 `json:"durationMs,omitempty"`
}

func WriteJSON(w io.Writer, recs []domain.LinkRecord, now time.Time) error {
	c := domain.CountRecords(recs)
	out := JSONReport{
		GeneratedAt: now.UTC().Truncate(time.Second).Format(time.RFC3339),
		Summary: JSONSummary{
			Total:   c.Total,
			Success: c.Success,
			Error:   c.Error,
			Timeout: c.Timeout,
		},
		Results: make([]JSONResult, 0, len(recs)),
	}

	for _, r := range recs {
		res := JSONResult{URL: r.URL, Status: string(r.Status), StatusText: r.StatusText}
		if r.StatusCode != 0 {
			code := r.StatusCode
			res.StatusCode = &code
		}
		if ms, ok := r.DurationMs(); ok {
			res.DurationMs = &ms
		}
		out.Results = append(out.Results, res)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
