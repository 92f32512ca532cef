package postgres

import (
	"context"
	"github.com/berkocan/genelpara-api/internal/entities"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"time"
)

const schema = `
CREATE TABLE IF NOT EXISTS latest_rates (
    query_key       TEXT        NOT NULL,
    position        INTEGER     NOT NULL,
    symbol          TEXT        NOT NULL,
    buy             TEXT        NOT NULL DEFAULT '',
    sell            TEXT        NOT NULL,
    unit            TEXT        NOT NULL,
    rate            TEXT        NOT NULL DEFAULT '',
    change_percent  TEXT        NOT NULL,
    direction       TEXT        NOT NULL,
    source_category TEXT        NOT NULL DEFAULT '',
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (query_key, position)
)`

// Storage keeps the latest successful snapshot per query key. Older snapshots are replaced.
type Storage struct {
	db *pgxpool.Pool
}

func NewStorage(pool *pgxpool.Pool) *Storage {
	return &Storage{
		db: pool,
	}
}

func InitStorage(ctx context.Context, dsn string) (*Storage, error) {
	const op = "storage.postgres.InitStorage"

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 10 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
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

func (s *Storage) InitSchema(ctx context.Context) error {
	const op = "storage.postgres.InitSchema"

	if _, err := s.db.Exec(ctx, schema); err != nil {
		return errors.Wrap(err, op)
	}

	return nil
}

func (s *Storage) SaveRates(ctx context.Context, query entities.RateQuery, resp *entities.RateResponse) (err error) {
	const op = "storage.postgres.SaveRates"

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, op)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	key := query.Key()

	if _, err = tx.Exec(ctx, `DELETE FROM latest_rates WHERE query_key = $1`, key); err != nil {
		return errors.Wrap(err, op)
	}

	rows := make([][]any, 0, len(resp.Records))
	for i, rec := range resp.Records {
		rows = append(rows, []any{
			key, i, rec.Symbol, rec.Buy, rec.Sell, rec.Unit, rec.Rate,
			rec.ChangePercent, rec.Direction.String(), rec.SourceCategory,
		})
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"latest_rates"},
		[]string{"query_key", "position", "symbol", "buy", "sell", "unit", "rate", "change_percent", "direction", "source_category"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return errors.Wrap(err, op)
	}

	if err = tx.Commit(ctx); err != nil {
		return errors.Wrap(err, op)
	}

	return nil
}

func (s *Storage) Close() {
	s.db.Close()
}
