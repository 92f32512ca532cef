package redis

import (
	"context"
	"encoding/json"
	"github.com/berkocan/genelpara-api/internal/entities"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"log/slog"
	"time"
)

const keyPrefix = "rates:"

// Storage writes the latest successful response of a query into the shared cache.
type Storage struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

func NewStorage(client redis.UniversalClient, ttl time.Duration) *Storage {
	return &Storage{
		rdb: client,
		ttl: ttl,
	}
}

func InitStorage(ctx context.Context, options *redis.Options, ttl time.Duration) (*Storage, error) {
	const op = "storage.redis.InitStorage"

	redisClient := redis.NewClient(options)

	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		_ = redisClient.Close()
		return nil, errors.Wrap(err, op)
	}

	return NewStorage(redisClient, ttl), nil
}

func (s *Storage) SaveRates(ctx context.Context, query entities.RateQuery, resp *entities.RateResponse) error {
	const op = "storage.redis.SaveRates"

	data, err := json.Marshal(resp)
	if err != nil {
		return errors.Wrap(err, op)
	}

	if err = s.rdb.Set(ctx, keyPrefix+query.Key(), data, s.ttl).Err(); err != nil {
		return errors.Wrap(err, op)
	}

	slog.Debug("rates cached", "key", keyPrefix+query.Key(), "ttl", s.ttl)

	return nil
}

func (s *Storage) Close() error {
	return s.rdb.Close()
}
