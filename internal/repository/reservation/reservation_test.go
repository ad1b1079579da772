package reservation

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sams-storefront/internal/domain"
	"sams-storefront/internal/migrate"
)

func booking(session string) domain.Reservation {
	return domain.Reservation{
		SessionID: session,
		Name:      "Awa Koné",
		Email:     "awa@example.ci",
		Phone:     "+225 07 00 00 00",
		Guests:    4,
		Date:      "2026-12-24",
		Time:      "19:30",
	}
}

func exerciseRepo(t *testing.T, repo Repository) {
	t.Helper()
	ctx := context.Background()

	first, err := repo.Create(ctx, booking("s1"))
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	_, err = repo.Create(ctx, booking("s2"))
	require.NoError(t, err)

	list, err := repo.ListBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, "2026-12-24", list[0].Date)
	assert.Equal(t, 4, list[0].Guests)

	list, err = repo.ListBySession(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemory(t *testing.T) {
	exerciseRepo(t, NewMemory())
}

func TestPostgres(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, migrate.Apply(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE reservations`)
	require.NoError(t, err)

	exerciseRepo(t, NewPostgres(pool, nil))
}
