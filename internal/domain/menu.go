package domain

import "time"

// MenuItem is a catalog entry that can be added to a cart.
type MenuItem struct {
	ID          int           `json:"id"`
	Name        LocalizedText `json:"name"`
	Description LocalizedText `json:"description,omitempty"`
	Price       int64         `json:"price"`
	ImageRef    string        `json:"image,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// NewLineItem builds a cart line with quantity 1 from the menu entry.
func (m MenuItem) NewLineItem() LineItem {
	return LineItem{
		ID:          m.ID,
		DisplayName: m.Name.Clone(),
		UnitPrice:   m.Price,
		Quantity:    1,
		ImageRef:    m.ImageRef,
	}
}
