package preference

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

func exerciseRepo(t *testing.T, repo Repository) {
	t.Helper()
	ctx := context.Background()

	_, err := repo.Get(ctx, "s1", LanguageKey)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Set(ctx, "s1", LanguageKey, "en"))
	require.NoError(t, repo.Set(ctx, "s1", LanguageKey, "fr"))

	got, err := repo.Get(ctx, "s1", LanguageKey)
	require.NoError(t, err)
	assert.Equal(t, "fr", got)

	_, err = repo.Get(ctx, "s2", LanguageKey)
	assert.ErrorIs(t, err, domain.ErrNotFound)
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
	_, err = pool.Exec(ctx, `TRUNCATE preferences`)
	require.NoError(t, err)

	exerciseRepo(t, NewPostgres(pool, nil))
}
