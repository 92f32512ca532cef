package service

import (
	"context"
	"github.com/berkocan/genelpara-api/internal/entities"
)

//go:generate mockgen -source=storage.go -destination=mock_storage_test.go -package=service

type Storage interface {
	GetSnapshot(ctx context.Context, query entities.RateQuery) (*entities.RateResponse, error)
}
