package menu

import (
	"context"

	"sams-storefront/internal/domain"
)

// Repository is the menu catalog.
type Repository interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	GetByID(ctx context.Context, id int) (*domain.MenuItem, error)
	Upsert(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
}
