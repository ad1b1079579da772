package menu

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"sams-storefront/internal/domain"
)

type memoryRepo struct {
	mu    sync.RWMutex
	items map[int]domain.MenuItem
	now   func() time.Time
}

// NewMemory returns an in-process catalog holding items.
func NewMemory(items ...domain.MenuItem) Repository {
	r := &memoryRepo{items: make(map[int]domain.MenuItem, len(items)), now: time.Now}
	for _, it := range items {
		if it.CreatedAt.IsZero() {
			it.CreatedAt = r.now().UTC()
		}
		r.items[it.ID] = it
	}
	return r
}

func (r *memoryRepo) List(_ context.Context) ([]domain.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.MenuItem, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id int) (*domain.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &it, nil
}

func (r *memoryRepo) Upsert(_ context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	if err := validate(item); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.items[item.ID]; ok {
		item.CreatedAt = existing.CreatedAt
	} else {
		item.CreatedAt = r.now().UTC()
	}
	r.items[item.ID] = item
	return &item, nil
}

func validate(item domain.MenuItem) error {
	switch {
	case item.ID <= 0:
		return fmt.Errorf("%w: id must be positive, got %d", domain.ErrInvalidMenuItem, item.ID)
	case strings.TrimSpace(item.Name[domain.LangEN]) == "" || strings.TrimSpace(item.Name[domain.LangFR]) == "":
		return fmt.Errorf("%w: item %d needs both en and fr names", domain.ErrInvalidMenuItem, item.ID)
	case item.Price < 0:
		return fmt.Errorf("%w: item %d has negative price", domain.ErrInvalidMenuItem, item.ID)
	}
	return nil
}
