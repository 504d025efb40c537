// README: In-process reservations for single-node deployments and tests.
package matching

import (
	"context"
	"sync"
	"time"

	"cabdesk/internal/types"
)

type hold struct {
	bookingID types.ID
	expires   time.Time
}

type MemoryReserver struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	holds map[types.ID]hold
}

func NewMemoryReserver(ttl time.Duration) *MemoryReserver {
	if ttl <= 0 {
		ttl = defaultReservationTTL
	}
	return &MemoryReserver{ttl: ttl, now: time.Now, holds: make(map[types.ID]hold)}
}

func (m *MemoryReserver) Reserve(_ context.Context, driverID, bookingID types.ID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if h, ok := m.holds[driverID]; ok && now.Before(h.expires) {
		return h.bookingID == bookingID, nil
	}
	m.holds[driverID] = hold{bookingID: bookingID, expires: now.Add(m.ttl)}
	return true, nil
}

func (m *MemoryReserver) Release(_ context.Context, driverID, bookingID types.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.holds[driverID]; ok && h.bookingID == bookingID {
		delete(m.holds, driverID)
	}
	return nil
}
