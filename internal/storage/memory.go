package storage

import (
	"encoding/json"
	"sync"

	"github.com/egannguyen/go-storefront/internal/entity"
)

// MemoryStore keeps basket records in process memory. It serves tests and
// runs without any backing service; records do not survive a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Save(key string, items []entity.Product) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return nil
}

func (s *MemoryStore) Load(key string) []entity.Product {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	var items []entity.Product
	if err := json.Unmarshal(raw, &items); err != nil {
		// Corrupt record reads as no basket.
		return nil
	}
	return items
}

func (s *MemoryStore) Clear(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
