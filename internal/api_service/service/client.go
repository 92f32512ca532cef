package service

import (
	"context"
	"github.com/berkocan/genelpara-api/internal/entities"
	"time"
)

//go:generate mockgen -source=client.go -destination=mock_client_test.go -package=service

type RateClient interface {
	Fetch(ctx context.Context, query entities.RateQuery, timeout time.Duration) (*entities.RateResponse, error)
}
