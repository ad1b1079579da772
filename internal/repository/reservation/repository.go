package reservation

import (
	"context"

	"sams-storefront/internal/domain"
)

// Repository stores reservation requests.
type Repository interface {
	Create(ctx context.Context, r domain.Reservation) (*domain.Reservation, error)
	ListBySession(ctx context.Context, sessionID string) ([]domain.Reservation, error)
}
