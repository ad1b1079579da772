package domain

// DeliveryFee is the flat delivery charge added to every cart, in FCFA.
const DeliveryFee int64 = 1500

// LineItem is one dish in a cart with its own quantity.
type LineItem struct {
	ID          int           `json:"id"`
	DisplayName LocalizedText `json:"name"`
	UnitPrice   int64         `json:"unitPrice"`
	Quantity    int           `json:"quantity"`
	ImageRef    string        `json:"image,omitempty"`
}

// Total returns UnitPrice multiplied by Quantity.
func (l LineItem) Total() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// LineItemView is a LineItem with its name resolved to a single language.
type LineItemView struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	LineTotal int64  `json:"lineTotal"`
	ImageRef  string `json:"image,omitempty"`
}

// Summary holds the aggregates derived from a cart at one instant.
type Summary struct {
	Subtotal          int64 `json:"subtotal"`
	TotalItemCount    int   `json:"totalItemCount"`
	DistinctItemCount int   `json:"distinctItemCount"`
	DeliveryFee       int64 `json:"deliveryFee"`
	DiscountAmount    int64 `json:"discountAmount"`
	GrandTotal        int64 `json:"grandTotal"`
	PromoLocked       bool  `json:"promoLocked"`
	Empty             bool  `json:"empty"`
}
