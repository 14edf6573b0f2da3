package store

import (
	"fmt"
	"sync"

	"github.com/rojanmagar2001/sitecheck/internal/domain"
)

// Memory keeps the session's link collection in a slice indexed by discovery order.
type Memory struct {
	mu    sync.RWMutex
	links []domain.LinkRecord
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Replace(urls []string) {
	links := make([]domain.LinkRecord, len(urls))
	for i, u := range urls {
		links[i] = domain.NewLinkRecord(u)
	}

	m.mu.Lock()
	m.links = links
	m.mu.Unlock()
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.links)
}

func (m *Memory) Get(i int) (domain.LinkRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i < 0 || i >= len(m.links) {
		return domain.LinkRecord{}, false
	}
	return m.links[i], true
}

func (m *Memory) Snapshot() []domain.LinkRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.LinkRecord, len(m.links))
	copy(out, m.links)
	return out
}

func (m *Memory) Counts() domain.Counts {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return domain.CountRecords(m.links)
}

func (m *Memory) Begin(i int) (domain.LinkRecord, error) {
	return m.update(i, func(r *domain.LinkRecord) error { return r.Begin() })
}

func (m *Memory) Finish(i int, o domain.Outcome) (domain.LinkRecord, error) {
	return m.update(i, func(r *domain.LinkRecord) error { return r.Finish(o) })
}

func (m *Memory) update(i int, fn func(*domain.LinkRecord) error) (domain.LinkRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i < 0 || i >= len(m.links) {
		return domain.LinkRecord{}, fmt.Errorf("link index %d out of range [0,%d)", i, len(m.links))
	}
	if err := fn(&m.links[i]); err != nil {
		return m.links[i], err
	}
	return m.links[i], nil
}
