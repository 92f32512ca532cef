// Package genelpara is a client for the GenelPara exchange rate API.
package genelpara

import (
	"context"
	"errors"
	"fmt"
	"github.com/berkocan/genelpara-api/internal/entities"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultBaseURL = "https://api.genelpara.com/json/"

	maxBodySize = 4 << 20
	userAgent   = "genelpara-api-go"
)

type Client struct {
	client  *http.Client
	baseURL string
}

type Option func(c *Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the default client. Its Timeout, if any, still applies on top
// of the per call timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// NewHTTPClient returns a client with a pooled transport for long running services.
// timeout bounds the whole exchange, including the body read.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
	}

	return &http.Client{Timeout: timeout, Transport: transport}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		client:  &http.Client{},
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch performs one GET against the API and returns the normalized response.
//
// A well-formed envelope with success=false is returned as a response with Success unset,
// not as an error. Errors are *entities.FetchError values.
func (c *Client) Fetch(ctx context.Context, query entities.RateQuery, timeout time.Duration) (*entities.RateResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		return nil, entities.InvalidQuery("timeout must be positive")
	}

	apiURL, err := c.buildURL(query)
	if err != nil {
		return nil, entities.InvalidQuery(err.Error())
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, entities.InvalidQuery(err.Error())
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classify(ctx, err)
	}
	defer resp.Body.Close()

	slog.Debug("genelpara response",
		"url", apiURL,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, entities.HTTPStatus(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, classify(ctx, err)
	}

	return decodeResponse(body, query)
}

func (c *Client) buildURL(query entities.RateQuery) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("base url: %w", err)
	}

	q := u.Query()
	q.Set("list", query.ListParam())
	q.Set("sembol", query.SymbolParam())
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return entities.Timeout(err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return entities.Timeout(err)
	}

	return entities.Transport(err)
}
