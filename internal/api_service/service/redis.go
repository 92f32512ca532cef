package service

import (
	"context"
	"github.com/berkocan/genelpara-api/internal/entities"
)

//go:generate mockgen -source=redis.go -destination=mock_redis_test.go -package=service

// Cache is the shared response cache filled by the fetcher and by the service itself.
// A miss is reported as entities.ErrNotFound.
type Cache interface {
	GetRates(ctx context.Context, query entities.RateQuery) (*entities.RateResponse, error)
	SetRates(ctx context.Context, query entities.RateQuery, resp *entities.RateResponse) error
}
