package surface

import (
	"sams-storefront/internal/domain"
	"sams-storefront/internal/i18n"
	"sams-storefront/internal/money"
)

// Dropdown is the compact header cart. Its count label shows the number of
// distinct lines and its footer only carries the subtotal.
type Dropdown struct {
	view
}

func NewDropdown(loc i18n.Localizer) *Dropdown {
	return &Dropdown{view: newView(NameDropdown, loc)}
}

func (d *Dropdown) RenderList(items []domain.LineItemView, lang domain.Lang) {
	d.lang = lang
	d.empty = nil
	d.lines = make([]LineView, 0, len(items))
	for _, it := range items {
		d.lines = append(d.lines, d.line(it))
	}
	d.renders++
}

// RenderItem redraws the line with the item's ID, or appends it when the
// dropdown has not drawn it yet.
func (d *Dropdown) RenderItem(item domain.LineItemView, lang domain.Lang) {
	d.lang = lang
	d.empty = nil
	if !d.replaceLine(d.line(item)) {
		d.lines = append(d.lines, d.line(item))
	}
	d.renders++
}

func (d *Dropdown) RenderSummary(s domain.Summary) {
	d.aggregates = s
	d.summary = SummaryView{
		CountLabel: i18n.CountLabel(d.loc, s.DistinctItemCount, d.lang),
		BadgeCount: s.TotalItemCount,
		Subtotal:   money.FormatFCFA(s.Subtotal),
		ShowFooter: !s.Empty,
		Labels: Labels{
			Subtotal: d.loc.Resolve(i18n.KeySubtotal, d.lang),
			Action:   d.loc.Resolve(i18n.KeyViewCart, d.lang),
		},
	}
}

// Snapshot returns the current drawing.
func (d *Dropdown) Snapshot() Snapshot {
	return d.snapshot()
}

func (d *Dropdown) line(it domain.LineItemView) LineView {
	return LineView{
		ID:        it.ID,
		Name:      it.Name,
		Image:     it.ImageRef,
		UnitPrice: money.FormatFCFA(it.UnitPrice),
		Quantity:  it.Quantity,
	}
}
