package fetcher

import (
	"context"
	"github.com/berkocan/genelpara-api/internal/entities"
	"time"
)

type RateClient interface {
	Fetch(ctx context.Context, query entities.RateQuery, timeout time.Duration) (*entities.RateResponse, error)
}
