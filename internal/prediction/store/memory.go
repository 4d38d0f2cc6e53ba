package store

import (
	"context"
	"sort"
	"sync"

	"geomed/internal/prediction/models"
)

// Memory is a mutex-guarded in-memory Store for tests and local
// development. It favors clarity over performance.
type Memory struct {
	mu      sync.RWMutex
	records map[string]models.Record
	order   []string
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]models.Record)}
}

func (s *Memory) Save(_ context.Context, record models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[record.ID]; !exists {
		s.order = append(s.order, record.ID)
	}
	s.records[record.ID] = record
	return nil
}

func (s *Memory) ListRecent(_ context.Context, limit int) ([]models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]models.Record, 0, len(s.order))
	for _, id := range s.order {
		records = append(records, s.records[id])
	}
	// Newest first; insertion order breaks timestamp ties deterministically.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *Memory) FindByID(_ context.Context, id string) (models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.records[id]; ok {
		return record, nil
	}
	return models.Record{}, ErrNotFound
}
