package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rojanmagar2001/sitecheck/internal/domain"
)

// BOM lets spreadsheet tools detect UTF-8.
const BOM = "\ufeff"

var Columns = []string{"url", "status", "statusCode", "statusText", "durationMs"}

// Row renders one record in column order; absent fields are empty strings.
func Row(r domain.LinkRecord) []string {
	code := ""
	if r.StatusCode != 0 {
		code = strconv.Itoa(r.StatusCode)
	}
	dur := ""
	if ms, ok := r.DurationMs(); ok {
		dur = strconv.FormatInt(ms, 10)
	}
	return []string{r.URL, string(r.Status), code, r.StatusText, dur}
}

// WriteCSV writes the BOM, the header and one row per record. Fields holding a
// quote, comma or line break are quoted with inner quotes doubled.
func WriteCSV(w io.Writer, recs []domain.LinkRecord) error {
	if _, err := io.WriteString(w, BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range recs {
		if err := cw.Write(Row(r)); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
