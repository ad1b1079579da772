// Package cart implements the session cart: an ordered set of line items, the
// promo discount, and the aggregates derived from them.
package cart

import (
	"errors"
	"sync"

	"sams-storefront/internal/domain"
	"sams-storefront/internal/promo"
)

// ChangeKind identifies the mutation that produced a Change.
type ChangeKind int

const (
	ChangeAdded ChangeKind = iota + 1
	ChangeMerged
	ChangeIncremented
	ChangeDecremented
	ChangeRemoved
	ChangePromoApplied
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeAdded:
		return "added"
	case ChangeMerged:
		return "merged"
	case ChangeIncremented:
		return "incremented"
	case ChangeDecremented:
		return "decremented"
	case ChangeRemoved:
		return "removed"
	case ChangePromoApplied:
		return "promo_applied"
	default:
		return "unknown"
	}
}

// Change describes one completed mutation.
type Change struct {
	Kind   ChangeKind
	ItemID int
}

// SingleItem reports whether the change only altered the quantity of ItemID,
// leaving the set of lines untouched.
func (c Change) SingleItem() bool {
	switch c.Kind {
	case ChangeMerged, ChangeIncremented, ChangeDecremented:
		return true
	default:
		return false
	}
}

// Listener is notified after every mutation, outside the store lock.
type Listener interface {
	CartChanged(Change)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Change)

func (f ListenerFunc) CartChanged(c Change) { f(c) }

// PromoResult is the outcome of a successful promo application.
type PromoResult struct {
	Code   string `json:"code"`
	Amount int64  `json:"amount"`
}

// Store owns a cart's line items and discount. All methods are safe for
// concurrent use; listeners run synchronously on the mutating goroutine.
type Store struct {
	mu          sync.Mutex
	items       []domain.LineItem
	discount    int64
	promoCode   string
	promoLocked bool
	rules       *promo.Table

	listeners []Listener
}

// NewStore builds a store seeded with items. Seed lines sharing an ID are
// merged and quantities below 1 are raised to 1. A nil rules table means
// promo.Default().
func NewStore(rules *promo.Table, seed []domain.LineItem) *Store {
	if rules == nil {
		rules = promo.Default()
	}
	s := &Store{rules: rules}
	for _, it := range seed {
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		if i := s.indexOf(it.ID); i >= 0 {
			s.items[i].Quantity += it.Quantity
			continue
		}
		it.DisplayName = it.DisplayName.Clone()
		s.items = append(s.items, it)
	}
	return s
}

// Subscribe registers l for change notifications.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// AddItem inserts entry with quantity 1, or increments the existing line
// with the same ID.
func (s *Store) AddItem(entry domain.MenuItem) {
	s.mu.Lock()
	kind := ChangeAdded
	if i := s.indexOf(entry.ID); i >= 0 {
		s.items[i].Quantity++
		kind = ChangeMerged
	} else {
		s.items = append(s.items, entry.NewLineItem())
	}
	s.mu.Unlock()

	s.notify(Change{Kind: kind, ItemID: entry.ID})
}

// Increment raises the quantity of id by one. It reports false, changing
// nothing, when id is not in the cart.
func (s *Store) Increment(id int) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.items[i].Quantity++
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeIncremented, ItemID: id})
	return true
}

// Decrement lowers the quantity of id by one while it is above 1. At 1 the
// line is kept as is; removal only happens through RemoveItem.
func (s *Store) Decrement(id int) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 || s.items[i].Quantity <= 1 {
		s.mu.Unlock()
		return false
	}
	s.items[i].Quantity--
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeDecremented, ItemID: id})
	return true
}

// RemoveItem deletes the line for id, preserving the order of the others.
func (s *Store) RemoveItem(id int) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeRemoved, ItemID: id})
	return true
}

// ApplyPromoCode discounts the current subtotal by the fraction of the
// matching rule and locks promo entry for the rest of the session. Errors:
// domain.ErrPromoAlreadyApplied, domain.ErrEmptyPromoCode,
// domain.ErrInvalidPromoCode and domain.ErrPromoNotEligible. The discount
// is left untouched on failure.
func (s *Store) ApplyPromoCode(code string) (PromoResult, error) {
	s.mu.Lock()
	if s.promoLocked {
		s.mu.Unlock()
		return PromoResult{}, domain.ErrPromoAlreadyApplied
	}
	subtotal, units := s.totals()
	rule, err := s.rules.Match(code, promo.Facts{
		Subtotal:          subtotal,
		TotalItemCount:    units,
		DistinctItemCount: len(s.items),
	})
	if err != nil {
		s.mu.Unlock()
		return PromoResult{}, err
	}
	s.discount = rule.Discount(subtotal)
	s.promoCode = rule.Code
	s.promoLocked = true
	res := PromoResult{Code: rule.Code, Amount: s.discount}
	s.mu.Unlock()

	s.notify(Change{Kind: ChangePromoApplied})
	return res, nil
}

// QuerySummary returns the aggregates of the current contents. The reported
// discount never exceeds the subtotal.
func (s *Store) QuerySummary() domain.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	subtotal, units := s.totals()
	discount := s.discount
	if discount > subtotal {
		discount = subtotal
	}
	return domain.Summary{
		Subtotal:          subtotal,
		TotalItemCount:    units,
		DistinctItemCount: len(s.items),
		DeliveryFee:       domain.DeliveryFee,
		DiscountAmount:    discount,
		GrandTotal:        subtotal + domain.DeliveryFee - discount,
		PromoLocked:       s.promoLocked,
		Empty:             len(s.items) == 0,
	}
}

// ListItems returns the lines in insertion order with names resolved to lang.
func (s *Store) ListItems(lang domain.Lang) []domain.LineItemView {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.LineItemView, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, view(it, lang))
	}
	return out
}

// Item returns the line for id with its name resolved to lang.
func (s *Store) Item(id int, lang domain.Lang) (domain.LineItemView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.LineItemView{}, false
	}
	return view(s.items[i], lang), true
}

// Empty reports whether the cart has no lines.
func (s *Store) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// PromoCode returns the applied code, or "" while no code has been accepted.
func (s *Store) PromoCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.promoCode
}

// FailureReason classifies an ApplyPromoCode error for display:
// "empty", "invalid", "ineligible" or "already_applied". Errors that are not
// the shopper's doing, such as a rule condition that cannot be evaluated,
// yield "".
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrPromoAlreadyApplied):
		return "already_applied"
	case errors.Is(err, domain.ErrEmptyPromoCode):
		return "empty"
	case errors.Is(err, domain.ErrPromoNotEligible):
		return "ineligible"
	case errors.Is(err, domain.ErrInvalidPromoCode):
		return "invalid"
	default:
		return ""
	}
}

func (s *Store) indexOf(id int) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) totals() (subtotal int64, units int) {
	for _, it := range s.items {
		subtotal += it.Total()
		units += it.Quantity
	}
	return subtotal, units
}

func (s *Store) notify(c Change) {
	s.mu.Lock()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l.CartChanged(c)
	}
}

func view(it domain.LineItem, lang domain.Lang) domain.LineItemView {
	return domain.LineItemView{
		ID:        it.ID,
		Name:      it.DisplayName.In(lang),
		UnitPrice: it.UnitPrice,
		Quantity:  it.Quantity,
		LineTotal: it.Total(),
		ImageRef:  it.ImageRef,
	}
}
