package preference

import (
	"context"
	"sync"

	"sams-storefront/internal/domain"
)

type memoryRepo struct {
	mu     sync.RWMutex
	values map[string]map[string]string
}

func NewMemory() Repository {
	return &memoryRepo{values: make(map[string]map[string]string)}
}

func (r *memoryRepo) Get(_ context.Context, sessionID, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.values[sessionID][key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

func (r *memoryRepo) Set(_ context.Context, sessionID, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.values[sessionID]
	if !ok {
		m = make(map[string]string)
		r.values[sessionID] = m
	}
	m[key] = value
	return nil
}
