// README: In-memory booking store; the history log is append-only.
package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"cabdesk/internal/types"
)

type MemoryStore struct {
	mu       sync.RWMutex
	bookings map[types.ID]*Booking
	events   map[types.ID][]Event
	nextID   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bookings: make(map[types.ID]*Booking),
		events:   make(map[types.ID][]Event),
	}
}

func (s *MemoryStore) Create(_ context.Context, b *Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[b.ID]; ok {
		return ErrConflict
	}
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id types.ID) (*Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *MemoryStore) List(_ context.Context, f ListFilter) ([]Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		if f.matches(b) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateStatus applies the transition only if the booking is still at (from, version).
func (s *MemoryStore) UpdateStatus(_ context.Context, id types.ID, from, to Status, version int, reason *string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return false, ErrNotFound
	}
	if b.Status != from || b.StatusVersion != version {
		return false, nil
	}
	now := time.Now()
	b.Status = to
	b.StatusVersion++
	switch to {
	case StatusAssigned:
		b.AssignedAt = &now
	case StatusOnTrip:
		b.StartedAt = &now
	case StatusCompleted:
		b.CompletedAt = &now
	case StatusCancelled:
		b.CancelledAt = &now
		b.CancelReason = reason
	}
	return true, nil
}

func (s *MemoryStore) AppendEvent(_ context.Context, e *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	cp := *e
	cp.ID = s.nextID
	s.events[e.BookingID] = append(s.events[e.BookingID], cp)
	return nil
}

func (s *MemoryStore) Events(_ context.Context, id types.ID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events[id]))
	copy(out, s.events[id])
	return out, nil
}
