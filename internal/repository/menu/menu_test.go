package menu

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sams-storefront/internal/domain"
	"sams-storefront/internal/migrate"
)

func steak() domain.MenuItem {
	return domain.MenuItem{
		ID:       1,
		Name:     domain.LocalizedText{domain.LangEN: "Grilled Steak & Shrimp", domain.LangFR: "Steak Grillé & Crevettes"},
		Price:    9500,
		ImageRef: "assets/1.png",
	}
}

func TestMemory_ListIsOrderedByID(t *testing.T) {
	waffles := domain.MenuItem{
		ID:    2,
		Name:  domain.LocalizedText{domain.LangEN: "Belgian Waffles", domain.LangFR: "Gaufres Belges"},
		Price: 5500,
	}
	repo := NewMemory(waffles, steak())

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].ID)
	assert.Equal(t, 2, list[1].ID)
	assert.False(t, list[0].CreatedAt.IsZero())
}

func TestMemory_GetByID(t *testing.T) {
	repo := NewMemory(steak())
	ctx := context.Background()

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(9500), got.Price)

	_, err = repo.GetByID(ctx, 99)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMemory_UpsertKeepsCreatedAt(t *testing.T) {
	repo := NewMemory(steak())
	ctx := context.Background()

	before, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)

	updated := steak()
	updated.Price = 9900
	got, err := repo.Upsert(ctx, updated)
	require.NoError(t, err)
	assert.Equal(t, int64(9900), got.Price)
	assert.Equal(t, before.CreatedAt, got.CreatedAt)
}

func TestMemory_UpsertValidates(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()

	cases := map[string]domain.MenuItem{
		"zero id":       {ID: 0, Name: steak().Name, Price: 1},
		"missing fr":    {ID: 2, Name: domain.LocalizedText{domain.LangEN: "Waffles"}, Price: 1},
		"negative cost": {ID: 3, Name: steak().Name, Price: -5},
	}
	for name, item := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := repo.Upsert(ctx, item)
			assert.ErrorIs(t, err, domain.ErrInvalidMenuItem)
		})
	}
}

func TestPostgres_UpsertListGet(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	require.NoError(t, migrate.Apply(ctx, pool))
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)

	item := steak()
	item.Description = domain.LocalizedText{domain.LangEN: "House cut", domain.LangFR: "Coupe maison"}
	saved, err := repo.Upsert(ctx, item)
	require.NoError(t, err)
	assert.False(t, saved.CreatedAt.IsZero())

	item.Price = 9900
	_, err = repo.Upsert(ctx, item)
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(9900), list[0].Price)
	assert.Equal(t, "Coupe maison", list[0].Description.In(domain.LangFR))

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Steak Grillé & Crevettes", got.Name.In(domain.LangFR))

	_, err = repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE menu_items`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
