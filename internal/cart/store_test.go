package cart

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sams-storefront/internal/domain"
)

var (
	steak = domain.MenuItem{
		ID:       1,
		Name:     domain.LocalizedText{domain.LangEN: "Grilled Steak & Shrimp", domain.LangFR: "Steak Grillé & Crevettes"},
		Price:    9500,
		ImageRef: "assets/1.png",
	}
	waffles = domain.MenuItem{
		ID:       2,
		Name:     domain.LocalizedText{domain.LangEN: "Belgian Waffles", domain.LangFR: "Gaufres Belges"},
		Price:    5500,
		ImageRef: "assets/3.png",
	}
	sandwich = domain.MenuItem{
		ID:       3,
		Name:     domain.LocalizedText{domain.LangEN: "Breakfast Sandwich", domain.LangFR: "Sandwich Petit-Déjeuner"},
		Price:    4500,
		ImageRef: "assets/4.png",
	}
	juice = domain.MenuItem{
		ID:    7,
		Name:  domain.LocalizedText{domain.LangEN: "Fresh Juice", domain.LangFR: "Jus Frais"},
		Price: 2000,
	}
)

func demoStore(t *testing.T) *Store {
	t.Helper()
	first := steak.NewLineItem()
	first.Quantity = 2
	return NewStore(nil, []domain.LineItem{first, waffles.NewLineItem(), sandwich.NewLineItem()})
}

type recorder struct {
	changes []Change
}

func (r *recorder) CartChanged(c Change) { r.changes = append(r.changes, c) }

func ids(items []domain.LineItemView) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestSeededCartSummary(t *testing.T) {
	s := demoStore(t)

	sum := s.QuerySummary()
	assert.Equal(t, int64(29000), sum.Subtotal)
	assert.Equal(t, int64(30500), sum.GrandTotal)
	assert.Equal(t, int64(0), sum.DiscountAmount)
	assert.Equal(t, 4, sum.TotalItemCount)
	assert.Equal(t, 3, sum.DistinctItemCount)
	assert.Equal(t, domain.DeliveryFee, sum.DeliveryFee)
	assert.False(t, sum.Empty)
	assert.False(t, sum.PromoLocked)
}

func TestApplyPromoCodeLowercase(t *testing.T) {
	s := demoStore(t)
	rec := &recorder{}
	s.Subscribe(rec)

	res, err := s.ApplyPromoCode("sams10")
	require.NoError(t, err)
	assert.Equal(t, PromoResult{Code: "SAMS10", Amount: 2900}, res)

	sum := s.QuerySummary()
	assert.Equal(t, int64(2900), sum.DiscountAmount)
	assert.Equal(t, int64(27600), sum.GrandTotal)
	assert.True(t, sum.PromoLocked)
	assert.Equal(t, "SAMS10", s.PromoCode())
	assert.Equal(t, []Change{{Kind: ChangePromoApplied}}, rec.changes)
}

func TestApplyPromoCodeTwiceKeepsFirstDiscount(t *testing.T) {
	s := demoStore(t)

	_, err := s.ApplyPromoCode("SAMS10")
	require.NoError(t, err)
	_, err = s.ApplyPromoCode("SAMS10")
	assert.ErrorIs(t, err, domain.ErrPromoAlreadyApplied)
	_, err = s.ApplyPromoCode("WELCOME")
	assert.ErrorIs(t, err, domain.ErrPromoAlreadyApplied)

	assert.Equal(t, int64(2900), s.QuerySummary().DiscountAmount)
}

func TestApplyPromoCodeFailures(t *testing.T) {
	cases := []struct {
		name   string
		code   string
		reason string
	}{
		{name: "empty", code: "", reason: "empty"},
		{name: "blank", code: "   ", reason: "empty"},
		{name: "unknown", code: "BOGUS", reason: "invalid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := demoStore(t)
			rec := &recorder{}
			s.Subscribe(rec)

			_, err := s.ApplyPromoCode(tc.code)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidPromoCode)
			assert.Equal(t, tc.reason, FailureReason(err))

			sum := s.QuerySummary()
			assert.Equal(t, int64(0), sum.DiscountAmount)
			assert.False(t, sum.PromoLocked)
			assert.Empty(t, rec.changes)
		})
	}
}

func TestFailureReasonAlreadyApplied(t *testing.T) {
	assert.Equal(t, "already_applied", FailureReason(domain.ErrPromoAlreadyApplied))
	assert.Equal(t, "ineligible", FailureReason(domain.ErrPromoNotEligible))
	assert.Equal(t, "", FailureReason(nil))
	assert.Equal(t, "", FailureReason(errors.New("promo X: apply condition: boom")))
}

func TestDecrementAtOneIsNoop(t *testing.T) {
	s := demoStore(t)
	rec := &recorder{}
	s.Subscribe(rec)

	assert.False(t, s.Decrement(waffles.ID))

	item, ok := s.Item(waffles.ID, domain.LangEN)
	require.True(t, ok)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, int64(29000), s.QuerySummary().Subtotal)
	assert.Empty(t, rec.changes)
}

func TestIncrementDecrement(t *testing.T) {
	s := demoStore(t)

	assert.True(t, s.Increment(waffles.ID))
	item, _ := s.Item(waffles.ID, domain.LangEN)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, int64(11000), item.LineTotal)

	assert.True(t, s.Decrement(steak.ID))
	item, _ = s.Item(steak.ID, domain.LangEN)
	assert.Equal(t, 1, item.Quantity)

	assert.Equal(t, int64(9500+11000+4500), s.QuerySummary().Subtotal)
}

func TestMissingIDIsSilentNoop(t *testing.T) {
	s := demoStore(t)
	rec := &recorder{}
	s.Subscribe(rec)
	before := s.QuerySummary()

	assert.False(t, s.Increment(99))
	assert.False(t, s.Decrement(99))
	assert.False(t, s.RemoveItem(99))

	assert.Equal(t, before, s.QuerySummary())
	assert.Empty(t, rec.changes)
}

func TestAddItemMergesByID(t *testing.T) {
	s := demoStore(t)
	rec := &recorder{}
	s.Subscribe(rec)

	s.AddItem(juice)
	s.AddItem(waffles)

	items := s.ListItems(domain.LangFR)
	assert.Equal(t, []int{1, 2, 3, 7}, ids(items))
	assert.Equal(t, "Jus Frais", items[3].Name)
	assert.Equal(t, 1, items[3].Quantity)
	assert.Equal(t, 2, items[1].Quantity)
	assert.Equal(t, []Change{
		{Kind: ChangeAdded, ItemID: 7},
		{Kind: ChangeMerged, ItemID: 2},
	}, rec.changes)
}

func TestRemoveLastItemEmptiesCart(t *testing.T) {
	s := NewStore(nil, []domain.LineItem{sandwich.NewLineItem()})

	assert.True(t, s.RemoveItem(sandwich.ID))
	assert.Empty(t, s.ListItems(domain.LangEN))
	assert.True(t, s.Empty())

	sum := s.QuerySummary()
	assert.True(t, sum.Empty)
	assert.Equal(t, int64(0), sum.Subtotal)
	assert.Equal(t, 0, sum.TotalItemCount)
	assert.Equal(t, domain.DeliveryFee, sum.GrandTotal)

	s.AddItem(juice)
	assert.False(t, s.Empty())
}

func TestRemovePreservesOrder(t *testing.T) {
	s := demoStore(t)
	require.True(t, s.RemoveItem(waffles.ID))
	assert.Equal(t, []int{1, 3}, ids(s.ListItems(domain.LangEN)))
	_, ok := s.Item(waffles.ID, domain.LangEN)
	assert.False(t, ok)
}

func TestDiscountIsClampedToSubtotal(t *testing.T) {
	s := demoStore(t)
	_, err := s.ApplyPromoCode("WELCOME")
	require.NoError(t, err)
	assert.Equal(t, int64(4350), s.QuerySummary().DiscountAmount)

	// Discount persists for the session even as the cart shrinks.
	s.RemoveItem(steak.ID)
	s.RemoveItem(waffles.ID)
	sum := s.QuerySummary()
	assert.Equal(t, int64(4350), sum.DiscountAmount)

	s.RemoveItem(sandwich.ID)
	sum = s.QuerySummary()
	assert.Equal(t, int64(0), sum.DiscountAmount)
	assert.Equal(t, domain.DeliveryFee, sum.GrandTotal)
	assert.True(t, sum.PromoLocked)
}

func TestNewStoreNormalizesSeed(t *testing.T) {
	zero := juice.NewLineItem()
	zero.Quantity = 0
	dup := steak.NewLineItem()
	dup.Quantity = 3

	s := NewStore(nil, []domain.LineItem{steak.NewLineItem(), zero, dup})
	items := s.ListItems(domain.LangEN)
	require.Len(t, items, 2)
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestListItemsResolvesLanguage(t *testing.T) {
	s := demoStore(t)
	assert.Equal(t, "Grilled Steak & Shrimp", s.ListItems(domain.LangEN)[0].Name)
	assert.Equal(t, "Steak Grillé & Crevettes", s.ListItems(domain.LangFR)[0].Name)
}

func TestInvariantsHoldUnderRandomMutations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	menu := []domain.MenuItem{steak, waffles, sandwich, juice}
	s := demoStore(t)

	check := func(step int) {
		items := s.ListItems(domain.LangEN)
		var subtotal int64
		units := 0
		seen := map[int]bool{}
		for _, it := range items {
			require.GreaterOrEqual(t, it.Quantity, 1, "step %d", step)
			require.False(t, seen[it.ID], "duplicate id at step %d", step)
			seen[it.ID] = true
			subtotal += it.UnitPrice * int64(it.Quantity)
			units += it.Quantity
		}
		sum := s.QuerySummary()
		require.Equal(t, subtotal, sum.Subtotal, "step %d", step)
		require.Equal(t, units, sum.TotalItemCount, "step %d", step)
		require.Equal(t, len(items), sum.DistinctItemCount, "step %d", step)
		require.Equal(t, sum.Subtotal+domain.DeliveryFee-sum.DiscountAmount, sum.GrandTotal, "step %d", step)
		require.Equal(t, len(items) == 0, sum.Empty, "step %d", step)
	}

	s.Subscribe(ListenerFunc(func(Change) { check(-1) }))
	for step := 0; step < 500; step++ {
		entry := menu[rng.Intn(len(menu))]
		switch rng.Intn(6) {
		case 0:
			s.AddItem(entry)
		case 1, 2:
			s.Increment(entry.ID)
		case 3, 4:
			s.Decrement(entry.ID)
		case 5:
			s.RemoveItem(entry.ID)
		}
		if step == 250 {
			_, _ = s.ApplyPromoCode("bienvenue")
		}
		check(step)
	}
}
