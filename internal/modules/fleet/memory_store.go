// README: In-memory roster store; keeps insertion order, which is the dispatch scan order.
package fleet

import (
	"context"
	"sync"
	"time"

	"cabdesk/internal/types"
)

type MemoryStore struct {
	mu      sync.RWMutex
	drivers map[types.ID]*Driver
	order   []types.ID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drivers: make(map[types.ID]*Driver)}
}

func (s *MemoryStore) Create(_ context.Context, d *Driver) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drivers[d.ID]; !ok {
		s.order = append(s.order, d.ID)
	}
	cp := *d
	s.drivers[d.ID] = &cp
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id types.ID) (*Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drivers[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Driver, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.drivers[id])
	}
	return out, nil
}

func (s *MemoryStore) SetOnline(_ context.Context, id types.ID, online bool) (*Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drivers[id]
	if !ok {
		return nil, ErrNotFound
	}
	d.Online = online
	d.UpdatedAt = time.Now()
	cp := *d
	return &cp, nil
}

func (s *MemoryStore) Toggle(_ context.Context, id types.ID) (*Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drivers[id]
	if !ok {
		return nil, ErrNotFound
	}
	d.Online = !d.Online
	d.UpdatedAt = time.Now()
	cp := *d
	return &cp, nil
}
