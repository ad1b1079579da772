package surface

import (
	"sams-storefront/internal/domain"
	"sams-storefront/internal/i18n"
)

// Names of the two cart surfaces.
const (
	NameDropdown = "dropdown"
	NamePage     = "page"
)

// LineView is one drawn cart line.
type LineView struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	UnitPrice string `json:"unitPrice"`
	PerUnit   string `json:"perUnit,omitempty"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"lineTotal,omitempty"`
}

// SummaryView is the drawn totals block.
type SummaryView struct {
	CountLabel string `json:"countLabel"`
	BadgeCount int    `json:"badgeCount"`
	Subtotal   string `json:"subtotal"`
	Delivery   string `json:"delivery,omitempty"`
	Discount   string `json:"discount,omitempty"`
	Total      string `json:"total,omitempty"`
	ShowFooter bool   `json:"showFooter"`
	Labels     Labels `json:"labels"`
}

// Labels are the localized captions drawn next to the totals.
type Labels struct {
	Subtotal    string `json:"subtotal"`
	Delivery    string `json:"delivery,omitempty"`
	Discount    string `json:"discount,omitempty"`
	Total       string `json:"total,omitempty"`
	LineTotal   string `json:"lineTotal,omitempty"`
	PromoPrompt string `json:"promoPrompt,omitempty"`
	// Action captions the footer button.
	Action string `json:"action"`
}

// EmptyView is the drawn empty-cart placeholder.
type EmptyView struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	BrowseMenu string `json:"browseMenu"`
}

// Snapshot is what a surface currently shows.
type Snapshot struct {
	Surface     string         `json:"surface"`
	Mounted     bool           `json:"mounted"`
	Lang        domain.Lang    `json:"lang"`
	Items       []LineView     `json:"items"`
	Summary     SummaryView    `json:"summary"`
	Empty       *EmptyView     `json:"empty,omitempty"`
	PromoLocked bool           `json:"promoLocked"`
	Aggregates  domain.Summary `json:"aggregates"`
	Renders     int            `json:"renders"`
}

// view carries the state shared by both surfaces.
type view struct {
	name    string
	loc     i18n.Localizer
	mounted bool
	lang    domain.Lang

	lines      []LineView
	summary    SummaryView
	aggregates domain.Summary
	empty      *EmptyView
	renders    int
}

func newView(name string, loc i18n.Localizer) view {
	if loc == nil {
		loc = i18n.NewBundle()
	}
	return view{name: name, loc: loc, lang: domain.DefaultLang, lines: []LineView{}}
}

func (v *view) Name() string  { return v.name }
func (v *view) Mounted() bool { return v.mounted }

// Mount makes the surface visible.
func (v *view) Mount() { v.mounted = true }

// Unmount hides the surface; it keeps its last drawing.
func (v *view) Unmount() { v.mounted = false }

func (v *view) SetLanguage(lang domain.Lang) { v.lang = lang }

func (v *view) RenderEmptyState() {
	v.lines = []LineView{}
	v.empty = &EmptyView{
		Title:      v.loc.Resolve(i18n.KeyEmptyTitle, v.lang),
		Body:       v.loc.Resolve(i18n.KeyEmptyBody, v.lang),
		BrowseMenu: v.loc.Resolve(i18n.KeyBrowseMenu, v.lang),
	}
	v.renders++
}

func (v *view) snapshot() Snapshot {
	lines := make([]LineView, len(v.lines))
	copy(lines, v.lines)
	var empty *EmptyView
	if v.empty != nil {
		e := *v.empty
		empty = &e
	}
	return Snapshot{
		Surface:     v.name,
		Mounted:     v.mounted,
		Lang:        v.lang,
		Items:       lines,
		Summary:     v.summary,
		Empty:       empty,
		PromoLocked: v.aggregates.PromoLocked,
		Aggregates:  v.aggregates,
		Renders:     v.renders,
	}
}

func (v *view) replaceLine(line LineView) bool {
	for i := range v.lines {
		if v.lines[i].ID == line.ID {
			v.lines[i] = line
			return true
		}
	}
	return false
}
