package ports

import "github.com/rojanmagar2001/sitecheck/internal/domain"

// Store holds the link collection of the current session.
// Records are addressed by their discovery index and never reordered.
type Store interface {
	Replace(urls []string) // drops any prior collection; all records start pending
	Len() int
	Get(i int) (domain.LinkRecord, bool)
	Snapshot() []domain.LinkRecord
	Counts() domain.Counts

	Begin(i int) (domain.LinkRecord, error)
	Finish(i int, o domain.Outcome) (domain.LinkRecord, error)
}
