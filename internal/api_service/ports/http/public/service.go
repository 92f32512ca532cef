package public

import (
	"context"
	"github.com/berkocan/genelpara-api/internal/entities"
)

type Service interface {
	GetRates(ctx context.Context, query entities.RateQuery) (*entities.RateResponse, entities.Origin, error)
}

// HealthCheck is a dependency probed by /healthz.
type HealthCheck interface {
	Ping(ctx context.Context) error
}
