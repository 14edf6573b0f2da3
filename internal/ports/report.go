package ports

import (
	"time"

	"github.com/rojanmagar2001/sitecheck/internal/domain"
)

// ReportWriter persists a fully checked collection and returns where it went.
type ReportWriter interface {
	Save(recs []domain.LinkRecord, now time.Time) (string, error)
}
