package reservation

import (
	"context"
	"io"

	"github.com/google/uuid"
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
	return &postgresRepo{pool: pool, logger: logger.WithField("repo", "reservation")}
}

func (r *postgresRepo) Create(ctx context.Context, res domain.Reservation) (*domain.Reservation, error) {
	const q = `
INSERT INTO reservations (id, session_id, name, email, phone, guests, date, time, message)
VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8, $9)
RETURNING created_at
`
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, q,
		res.ID, res.SessionID, res.Name, res.Email, res.Phone, res.Guests, res.Date, res.Time, res.Message,
	).Scan(&res.CreatedAt)
	if err != nil {
		r.logger.WithError(err).Error("create reservation")
		return nil, err
	}
	r.logger.WithFields(logrus.Fields{"id": res.ID, "date": res.Date, "guests": res.Guests}).Info("reservation created")
	return &res, nil
}

func (r *postgresRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.Reservation, error) {
	const q = `
SELECT id::text, session_id, name, email, phone, guests, to_char(date, 'YYYY-MM-DD'), time, message, created_at
FROM reservations
WHERE session_id = $1
ORDER BY created_at, id
`
	rows, err := r.pool.Query(ctx, q, sessionID)
	if err != nil {
		r.logger.WithError(err).Error("list reservations")
		return nil, err
	}
	defer rows.Close()

	out := []domain.Reservation{}
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(&res.ID, &res.SessionID, &res.Name, &res.Email, &res.Phone, &res.Guests, &res.Date, &res.Time, &res.Message, &res.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		r.logger.WithError(err).Error("list reservation rows")
		return nil, err
	}
	return out, nil
}
