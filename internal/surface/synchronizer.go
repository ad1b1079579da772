package surface

import (
	"io"

	"github.com/sirupsen/logrus"

	"sams-storefront/internal/cart"
	"sams-storefront/internal/domain"
)

// Synchronizer pushes store state to every mounted adapter after each cart
// mutation. It is driven from the owning session's event lock and is not
// safe for concurrent use on its own.
type Synchronizer struct {
	store    *cart.Store
	adapters []Adapter
	lang     domain.Lang
	logger   logrus.FieldLogger
}

// NewSynchronizer subscribes to store and fans changes out to adapters in
// the given order.
func NewSynchronizer(store *cart.Store, lang domain.Lang, logger logrus.FieldLogger, adapters ...Adapter) *Synchronizer {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	s := &Synchronizer{
		store:    store,
		adapters: adapters,
		lang:     lang,
		logger:   logger,
	}
	s.propagateLanguage()
	store.Subscribe(s)
	return s
}

// Language returns the language surfaces are rendered in.
func (s *Synchronizer) Language() domain.Lang {
	return s.lang
}

// SetLanguage switches every surface to lang and redraws the mounted ones.
func (s *Synchronizer) SetLanguage(lang domain.Lang) {
	s.lang = lang
	s.propagateLanguage()
	s.RefreshAll()
}

// CartChanged implements cart.Listener.
func (s *Synchronizer) CartChanged(c cart.Change) {
	summary := s.store.QuerySummary()

	var items []domain.LineItemView
	list := func() []domain.LineItemView {
		if items == nil {
			items = s.store.ListItems(s.lang)
		}
		return items
	}

	pushed := 0
	for _, a := range s.adapters {
		if a == nil || !a.Mounted() {
			continue
		}
		switch {
		case summary.Empty:
			a.RenderEmptyState()
		case c.Kind == cart.ChangePromoApplied:
			if _, partial := a.(ItemRenderer); !partial {
				a.RenderList(list(), s.lang)
			}
		case c.SingleItem():
			if r, ok := a.(ItemRenderer); ok {
				if item, found := s.store.Item(c.ItemID, s.lang); found {
					r.RenderItem(item, s.lang)
					break
				}
			}
			a.RenderList(list(), s.lang)
		default:
			a.RenderList(list(), s.lang)
		}
		a.RenderSummary(summary)
		pushed++
	}

	s.logger.WithFields(logrus.Fields{
		"change":    c.Kind.String(),
		"item_id":   c.ItemID,
		"subtotal":  summary.Subtotal,
		"units":     summary.TotalItemCount,
		"surfaces":  pushed,
		"promo_set": summary.PromoLocked,
	}).Debug("cart synchronized")
}

// Refresh fully redraws a, typically right after it has been mounted.
func (s *Synchronizer) Refresh(a Adapter) {
	if a == nil || !a.Mounted() {
		return
	}
	summary := s.store.QuerySummary()
	if summary.Empty {
		a.RenderEmptyState()
	} else {
		a.RenderList(s.store.ListItems(s.lang), s.lang)
	}
	a.RenderSummary(summary)
}

// RefreshAll fully redraws every mounted adapter.
func (s *Synchronizer) RefreshAll() {
	for _, a := range s.adapters {
		s.Refresh(a)
	}
}

func (s *Synchronizer) propagateLanguage() {
	for _, a := range s.adapters {
		if ls, ok := a.(LanguageSetter); ok {
			ls.SetLanguage(s.lang)
		}
	}
}
