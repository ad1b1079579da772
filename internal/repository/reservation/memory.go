package reservation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"sams-storefront/internal/domain"
)

type memoryRepo struct {
	mu    sync.RWMutex
	items []domain.Reservation
	now   func() time.Time
}

func NewMemory() Repository {
	return &memoryRepo{now: time.Now}
}

func (r *memoryRepo) Create(_ context.Context, res domain.Reservation) (*domain.Reservation, error) {
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	res.CreatedAt = r.now().UTC()

	r.mu.Lock()
	r.items = append(r.items, res)
	r.mu.Unlock()
	return &res, nil
}

func (r *memoryRepo) ListBySession(_ context.Context, sessionID string) ([]domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Reservation{}
	for _, res := range r.items {
		if res.SessionID == sessionID {
			out = append(out, res)
		}
	}
	return out, nil
}
