package service

import (
	"context"
	"errors"
	"github.com/berkocan/genelpara-api/internal/entities"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"
	"log/slog"
	"time"
)

var cacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "genelpara_cache_requests_total",
	Help: "Rate cache lookups by result.",
}, []string{"result"})

type Service struct {
	client  RateClient
	cache   Cache
	storage Storage
	timeout time.Duration

	group singleflight.Group
}

func NewService(client RateClient, cache Cache, storage Storage, timeout time.Duration) *Service {
	return &Service{
		client:  client,
		cache:   cache,
		storage: storage,
		timeout: timeout,
	}
}

// GetRates serves a query from the cache, then from the rate API, and finally from the
// last stored snapshot when the API is unreachable or answers with a bad status.
// Identical concurrent queries share one upstream call.
func (s *Service) GetRates(ctx context.Context, query entities.RateQuery) (*entities.RateResponse, entities.Origin, error) {
	const op = "service.GetRates"

	if err := query.Validate(); err != nil {
		return nil, "", err
	}

	cached, err := s.cache.GetRates(ctx, query)
	switch {
	case err == nil:
		cacheRequests.WithLabelValues("hit").Inc()
		return cached, entities.OriginCache, nil
	case !errors.Is(err, entities.ErrNotFound):
		slog.Warn("cache read failed", "op", op, "query", query.Key(), "error", err)
	}
	cacheRequests.WithLabelValues("miss").Inc()

	v, err, shared := s.group.Do(query.Key(), func() (any, error) {
		return s.fetch(ctx, query)
	})
	if err == nil {
		slog.Debug("rates fetched", "op", op, "query", query.Key(), "shared", shared)
		return v.(*entities.RateResponse), entities.OriginUpstream, nil
	}

	if !entities.Upstream(err) {
		return nil, "", err
	}

	snapshot, snapErr := s.storage.GetSnapshot(ctx, query)
	if snapErr != nil {
		if !errors.Is(snapErr, entities.ErrNotFound) {
			slog.Error("snapshot read failed", "op", op, "query", query.Key(), "error", snapErr)
		}
		return nil, "", err
	}

	slog.Warn("rate api unavailable, serving snapshot", "op", op, "query", query.Key(), "error", err)

	return snapshot, entities.OriginSnapshot, nil
}

func (s *Service) fetch(ctx context.Context, query entities.RateQuery) (*entities.RateResponse, error) {
	const op = "service.fetch"

	// the call is shared with other waiters, so one caller leaving must not cancel it
	resp, err := s.client.Fetch(context.WithoutCancel(ctx), query, s.timeout)
	if err != nil {
		return nil, err
	}

	if resp.Success {
		if err := s.cache.SetRates(context.WithoutCancel(ctx), query, resp); err != nil {
			slog.Warn("cache write failed", "op", op, "query", query.Key(), "error", err)
		}
	}

	return resp, nil
}
