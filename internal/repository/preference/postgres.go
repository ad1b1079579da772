package preference

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
	return &postgresRepo{pool: pool, logger: logger.WithField("repo", "preference")}
}

func (r *postgresRepo) Get(ctx context.Context, sessionID, key string) (string, error) {
	const q = `SELECT value FROM preferences WHERE session_id = $1 AND key = $2`
	var value string
	if err := r.pool.QueryRow(ctx, q, sessionID, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		r.logger.WithError(err).WithField("key", key).Error("get preference")
		return "", err
	}
	return value, nil
}

func (r *postgresRepo) Set(ctx context.Context, sessionID, key, value string) error {
	const q = `
INSERT INTO preferences (session_id, key, value, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (session_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
`
	if _, err := r.pool.Exec(ctx, q, sessionID, key, value); err != nil {
		r.logger.WithError(err).WithField("key", key).Error("set preference")
		return err
	}
	r.logger.WithFields(logrus.Fields{"key": key, "value": value}).Debug("saved preference")
	return nil
}
