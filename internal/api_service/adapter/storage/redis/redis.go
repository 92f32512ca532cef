package redis

import (
	"context"
	"encoding/json"
	"github.com/berkocan/genelpara-api/internal/entities"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"time"
)

const keyPrefix = "rates:"

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

func (s *Storage) GetRates(ctx context.Context, query entities.RateQuery) (*entities.RateResponse, error) {
	const op = "storage.redis.GetRates"

	data, err := s.rdb.Get(ctx, keyPrefix+query.Key()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, entities.ErrNotFound
		}
		return nil, errors.Wrap(err, op)
	}

	var resp entities.RateResponse
	if err = json.Unmarshal(data, &resp); err != nil {
		return nil, errors.Wrap(err, op)
	}

	return &resp, nil
}

func (s *Storage) SetRates(ctx context.Context, query entities.RateQuery, resp *entities.RateResponse) error {
	const op = "storage.redis.SetRates"

	data, err := json.Marshal(resp)
	if err != nil {
		return errors.Wrap(err, op)
	}

	if err = s.rdb.Set(ctx, keyPrefix+query.Key(), data, s.ttl).Err(); err != nil {
		return errors.Wrap(err, op)
	}

	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Storage) Close() error {
	return s.rdb.Close()
}
