package seed

import (
	"context"
	"fmt"

	"sams-storefront/internal/domain"
)

// MenuWriter is the part of the menu repository seeding needs.
type MenuWriter interface {
	Upsert(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
}

type dish struct {
	ID     int
	NameEN string
	NameFR string
	DescEN string
	DescFR string
	Price  int64
	Image  string
}

var dishes = []dish{
	{1, "Grilled Steak & Shrimp", "Steak Grillé & Crevettes", "Flame-grilled steak with garlic shrimp", "Steak grillé à la flamme et crevettes à l'ail", 9500, "assets/1.png"},
	{2, "Belgian Waffles", "Gaufres Belges", "Crisp waffles with fresh berries", "Gaufres croustillantes aux fruits rouges", 5500, "assets/3.png"},
	{3, "Breakfast Sandwich", "Sandwich Petit-Déjeuner", "Egg, cheese and turkey bacon on brioche", "Œuf, fromage et bacon de dinde sur brioche", 4500, "assets/4.png"},
	{4, "Chicken Yassa", "Poulet Yassa", "Lemon and onion braised chicken with rice", "Poulet braisé au citron et aux oignons, riz", 6500, "assets/5.png"},
	{5, "Attiéké & Grilled Fish", "Attiéké Poisson Braisé", "Braised fish with cassava couscous", "Poisson braisé et attiéké", 7000, "assets/6.png"},
	{6, "Alloco", "Alloco", "Fried plantain with chili sauce", "Banane plantain frite, sauce pimentée", 2500, "assets/7.png"},
	{7, "Fresh Juice", "Jus Frais", "Bissap, ginger or passion fruit", "Bissap, gingembre ou maracuja", 2000, "assets/8.png"},
}

// DemoMenu returns the restaurant's demo catalog.
func DemoMenu() []domain.MenuItem {
	out := make([]domain.MenuItem, 0, len(dishes))
	for _, d := range dishes {
		out = append(out, domain.MenuItem{
			ID:          d.ID,
			Name:        domain.LocalizedText{domain.LangEN: d.NameEN, domain.LangFR: d.NameFR},
			Description: domain.LocalizedText{domain.LangEN: d.DescEN, domain.LangFR: d.DescFR},
			Price:       d.Price,
			ImageRef:    d.Image,
		})
	}
	return out
}

// DemoCart returns the lines every new session starts with.
func DemoCart() []domain.LineItem {
	menu := DemoMenu()
	cart := []domain.LineItem{menu[0].NewLineItem(), menu[1].NewLineItem(), menu[2].NewLineItem()}
	cart[0].Quantity = 2
	return cart
}

// Apply upserts the demo menu. It is idempotent.
func Apply(ctx context.Context, repo MenuWriter) error {
	for _, item := range DemoMenu() {
		if _, err := repo.Upsert(ctx, item); err != nil {
			return fmt.Errorf("upsert menu item %d: %w", item.ID, err)
		}
	}
	return nil
}
