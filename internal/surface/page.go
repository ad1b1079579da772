package surface

import (
	"sams-storefront/internal/domain"
	"sams-storefront/internal/i18n"
	"sams-storefront/internal/money"
)

// Page is the full cart page. It always redraws its whole list, counts total
// units, and shows the complete summary including delivery and discount.
type Page struct {
	view
}

func NewPage(loc i18n.Localizer) *Page {
	return &Page{view: newView(NamePage, loc)}
}

func (p *Page) RenderList(items []domain.LineItemView, lang domain.Lang) {
	p.lang = lang
	p.empty = nil
	perUnit := p.loc.Resolve(i18n.KeyPerUnit, lang)
	p.lines = make([]LineView, 0, len(items))
	for _, it := range items {
		p.lines = append(p.lines, LineView{
			ID:        it.ID,
			Name:      it.Name,
			Image:     it.ImageRef,
			UnitPrice: money.FormatFCFA(it.UnitPrice),
			PerUnit:   perUnit,
			Quantity:  it.Quantity,
			LineTotal: money.FormatFCFA(it.LineTotal),
		})
	}
	p.renders++
}

func (p *Page) RenderSummary(s domain.Summary) {
	p.aggregates = s
	p.summary = SummaryView{
		CountLabel: i18n.CountLabel(p.loc, s.TotalItemCount, p.lang),
		BadgeCount: s.TotalItemCount,
		Subtotal:   money.FormatFCFA(s.Subtotal),
		Delivery:   money.FormatFCFA(s.DeliveryFee),
		Discount:   "-" + money.FormatFCFA(s.DiscountAmount),
		Total:      money.FormatFCFA(s.GrandTotal),
		ShowFooter: !s.Empty,
		Labels: Labels{
			Subtotal:    p.loc.Resolve(i18n.KeySubtotal, p.lang),
			Delivery:    p.loc.Resolve(i18n.KeyDelivery, p.lang),
			Discount:    p.loc.Resolve(i18n.KeyDiscount, p.lang),
			Total:       p.loc.Resolve(i18n.KeyGrandTotal, p.lang),
			LineTotal:   p.loc.Resolve(i18n.KeyLineTotal, p.lang),
			PromoPrompt: p.loc.Resolve(i18n.KeyPromoPrompt, p.lang),
			Action:      p.loc.Resolve(i18n.KeyCheckout, p.lang),
		},
	}
}

// Snapshot returns the current drawing.
func (p *Page) Snapshot() Snapshot {
	return p.snapshot()
}
