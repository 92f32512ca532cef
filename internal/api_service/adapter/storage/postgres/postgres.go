package postgres

import (
	"context"
	"github.com/berkocan/genelpara-api/internal/entities"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"time"
)

// Storage reads the snapshots the fetcher keeps in latest_rates.
type Storage struct {
	db *pgxpool.Pool
}

func NewStorage(pool *pgxpool.Pool) *Storage {
	return &Storage{
		db: pool,
	}
}

func InitStorage(ctx context.Context, dsn string, timeout time.Duration) (*Storage, error) {
	const op = "storage.postgres.InitStorage"

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 10 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, op)
	}

	return NewStorage(pool), nil
}

func (s *Storage) GetSnapshot(ctx context.Context, query entities.RateQuery) (*entities.RateResponse, error) {
	const op = "storage.postgres.GetSnapshot"

	rows, err := s.db.Query(ctx, `
		SELECT symbol, buy, sell, unit, rate, change_percent, direction, source_category
		FROM latest_rates
		WHERE query_key = $1
		ORDER BY position
	`, query.Key())
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	defer rows.Close()

	records := []entities.RateRecord{}
	for rows.Next() {
		var rec entities.RateRecord
		var direction string

		if err = rows.Scan(&rec.Symbol, &rec.Buy, &rec.Sell, &rec.Unit, &rec.Rate,
			&rec.ChangePercent, &direction, &rec.SourceCategory); err != nil {
			return nil, errors.Wrap(err, op)
		}
		if err = rec.Direction.UnmarshalText([]byte(direction)); err != nil {
			return nil, errors.Wrap(err, op)
		}

		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, op)
	}

	if len(records) == 0 {
		return nil, entities.ErrNotFound
	}

	return &entities.RateResponse{
		Success: true,
		Records: records,
	}, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Storage) Close() {
	s.db.Close()
}
