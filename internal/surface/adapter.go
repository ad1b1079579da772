// Package surface keeps the cart's presentation surfaces (the header
// dropdown and the full cart page) in step with the cart store.
package surface

import "sams-storefront/internal/domain"

// Adapter is a presentation surface that can draw cart state. Adapters hold
// no authoritative state; everything they show is pushed by the Synchronizer.
type Adapter interface {
	Name() string
	// Mounted reports whether the surface is currently visible. Unmounted
	// surfaces are skipped.
	Mounted() bool
	RenderList(items []domain.LineItemView, lang domain.Lang)
	RenderSummary(summary domain.Summary)
	RenderEmptyState()
}

// ItemRenderer is implemented by adapters that can redraw a single line
// instead of their whole list.
type ItemRenderer interface {
	RenderItem(item domain.LineItemView, lang domain.Lang)
}

// LanguageSetter is implemented by adapters with localized static labels.
type LanguageSetter interface {
	SetLanguage(lang domain.Lang)
}
