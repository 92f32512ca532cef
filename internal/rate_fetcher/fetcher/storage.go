package fetcher

import (
	"context"
	"github.com/berkocan/genelpara-api/internal/entities"
)

// Storage receives every successful response the fetcher accepts.
type Storage interface {
	SaveRates(ctx context.Context, query entities.RateQuery, resp *entities.RateResponse) error
}

// StorageFunc adapts a function to Storage.
type StorageFunc func(ctx context.Context, query entities.RateQuery, resp *entities.RateResponse) error

func (f StorageFunc) SaveRates(ctx context.Context, query entities.RateQuery, resp *entities.RateResponse) error {
	return f(ctx, query, resp)
}
