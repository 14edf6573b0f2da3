// Package report turns a fully checked link collection into a downloadable file.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rojanmagar2001/sitecheck/internal/domain"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

const filePrefix = "links-report-"

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX, FormatJSON:
		return f, nil
	case "":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unknown report format %q (want csv, xlsx or json)", s)
}

// Filename is links-report-<UTC date and time to the second>.<format>, with
// '-' in place of ':' and 'T', e.g. links-report-2026-10-17-08-05-09.csv.
func Filename(now time.Time, f Format) string {
	ts := now.UTC().Truncate(time.Second).Format("2006-01-02-15-04-05")
	return filePrefix + ts + "." + string(f)
}

// Writer saves reports into Dir.
type Writer struct {
	Dir    string
	Format Format
}

// Save writes recs and returns the file path. It refuses to write while any
// record is not terminal.
func (w Writer) Save(recs []domain.LinkRecord, now time.Time) (string, error) {
	c := domain.CountRecords(recs)
	if !c.Complete() {
		return "", fmt.Errorf("%w: %d of %d", domain.ErrIncomplete, c.Checked(), c.Total)
	}

	format := w.Format
	if format == "" {
		format = FormatCSV
	}
	dir := w.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	path := filepath.Join(dir, Filename(now, format))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}

	switch format {
	case FormatXLSX:
		err = WriteXLSX(f, recs)
	case FormatJSON:
		err = WriteJSON(f, recs, now)
	default:
		err = WriteCSV(f, recs)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write %s report: %w", format, err)
	}
	return path, nil
}
