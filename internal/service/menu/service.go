package menu

import (
	"context"

	"sams-storefront/internal/domain"
	"sams-storefront/internal/money"
	menurepo "sams-storefront/internal/repository/menu"
)

type Service struct {
	repo menurepo.Repository
}

func New(repo menurepo.Repository) *Service {
	return &Service{repo: repo}
}

// Entry is a menu item with its texts resolved to one language.
type Entry struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	PriceLabel  string `json:"priceLabel"`
	Image       string `json:"image,omitempty"`
}

func (s *Service) List(ctx context.Context, lang domain.Lang) ([]Entry, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(items))
	for _, it := range items {
		out = append(out, entry(it, lang))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int, lang domain.Lang) (*Entry, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e := entry(*it, lang)
	return &e, nil
}

func entry(it domain.MenuItem, lang domain.Lang) Entry {
	return Entry{
		ID:          it.ID,
		Name:        it.Name.In(lang),
		Description: it.Description.In(lang),
		Price:       it.Price,
		PriceLabel:  money.FormatFCFA(it.Price),
		Image:       it.ImageRef,
	}
}
