package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sams-storefront/internal/domain"
	"sams-storefront/internal/repository/menu"
)

func TestDemoCart(t *testing.T) {
	cart := DemoCart()
	require.Len(t, cart, 3)

	var subtotal int64
	for _, it := range cart {
		subtotal += it.Total()
	}
	assert.Equal(t, int64(29000), subtotal)
	assert.Equal(t, 2, cart[0].Quantity)
	assert.Equal(t, "Gaufres Belges", cart[1].DisplayName.In(domain.LangFR))
}

func TestApplyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := menu.NewMemory()

	require.NoError(t, Apply(ctx, repo))
	require.NoError(t, Apply(ctx, repo))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(DemoMenu()))
}
