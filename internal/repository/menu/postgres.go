package menu

import (
	"context"
	"errors"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"sams-storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger logrus.FieldLogger
}

func NewPostgres(pool *pgxpool.Pool, logger logrus.FieldLogger) Repository {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &postgresRepo{pool: pool, logger: logger.WithField("repo", "menu")}
}

const selectColumns = `id, name_en, name_fr, COALESCE(description_en, ''), COALESCE(description_fr, ''), price, image_ref, created_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.MenuItem, error) {
	q := `SELECT ` + selectColumns + ` FROM menu_items ORDER BY id`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.WithError(err).Error("list menu items")
		return nil, err
	}
	defer rows.Close()

	var result []domain.MenuItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		r.logger.WithError(err).Error("list menu rows")
		return nil, err
	}
	r.logger.WithField("count", len(result)).Debug("listed menu items")
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int) (*domain.MenuItem, error) {
	q := `SELECT ` + selectColumns + ` FROM menu_items WHERE id = $1`
	item, err := scanItem(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WithField("id", id).Debug("menu item not found")
			return nil, domain.ErrNotFound
		}
		r.logger.WithError(err).WithField("id", id).Error("get menu item")
		return nil, err
	}
	return &item, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	const q = `
INSERT INTO menu_items (id, name_en, name_fr, description_en, description_fr, price, image_ref)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7)
ON CONFLICT (id) DO UPDATE SET
    name_en = EXCLUDED.name_en,
    name_fr = EXCLUDED.name_fr,
    description_en = EXCLUDED.description_en,
    description_fr = EXCLUDED.description_fr,
    price = EXCLUDED.price,
    image_ref = EXCLUDED.image_ref
RETURNING created_at
`
	if err := validate(item); err != nil {
		return nil, err
	}
	res := item
	err := r.pool.QueryRow(ctx, q,
		item.ID,
		item.Name[domain.LangEN],
		item.Name[domain.LangFR],
		item.Description[domain.LangEN],
		item.Description[domain.LangFR],
		item.Price,
		item.ImageRef,
	).Scan(&res.CreatedAt)
	if err != nil {
		r.logger.WithError(err).WithField("id", item.ID).Error("upsert menu item")
		return nil, err
	}
	r.logger.WithField("id", item.ID).Info("upserted menu item")
	return &res, nil
}

func scanItem(row pgx.Row) (domain.MenuItem, error) {
	var (
		item           domain.MenuItem
		nameEN, nameFR string
		descEN, descFR string
	)
	if err := row.Scan(&item.ID, &nameEN, &nameFR, &descEN, &descFR, &item.Price, &item.ImageRef, &item.CreatedAt); err != nil {
		return domain.MenuItem{}, err
	}
	item.Name = domain.LocalizedText{domain.LangEN: nameEN, domain.LangFR: nameFR}
	if descEN != "" || descFR != "" {
		item.Description = domain.LocalizedText{domain.LangEN: descEN, domain.LangFR: descFR}
	}
	return item, nil
}
