// Package benchmark implements the freight benchmark rate source: a thin
// HTTP client for the external market-rate service, fronted by a Redis cache.
// It is consumed at the API boundary only; the calculation engine never sees
// it and receives resolved rates as plain input fields.
package benchmark

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/importwise/landedcost/internal/api/metrics"
	"github.com/importwise/landedcost/internal/core/domain"
)

// Cache abstracts the per-lane rate cache (Redis).
type Cache interface {
	Get(ctx context.Context, origin, destination string, method domain.ShippingMethod) (*domain.FreightOverrides, bool, error)
	Set(ctx context.Context, origin, destination string, method domain.ShippingMethod, overrides *domain.FreightOverrides) error
}

// Client fetches benchmark freight rates for a lane. A client with an empty
// base URL is disabled and always resolves nil overrides.
type Client struct {
	baseURL string
	httpc   *http.Client
	cache   Cache
	log     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, cache Cache, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		cache:   cache,
		log:     log,
	}
}

type rateResponse struct {
	Container20ft *float64 `json:"container20ft"`
	Container40ft *float64 `json:"container40ft"`
	PerCBM        *float64 `json:"perCbm"`
	AirPerKg      *float64 `json:"airPerKg"`
	ExpressPerKg  *float64 `json:"expressPerKg"`
}

// Rates resolves benchmark overrides for the lane: cache first, then the
// remote service. Cache write failures are logged and ignored.
func (c *Client) Rates(ctx context.Context, origin, destination string, method domain.ShippingMethod) (*domain.FreightOverrides, error) {
	if c.baseURL == "" {
		return nil, nil
	}

	if c.cache != nil {
		cached, hit, err := c.cache.Get(ctx, origin, destination, method)
		switch {
		case err != nil:
			metrics.BenchmarkCacheTotal.WithLabelValues("error").Inc()
			c.log.Warn().Err(err).Msg("rate cache read failed")
		case hit:
			metrics.BenchmarkCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.BenchmarkCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	overrides, err := c.fetch(ctx, origin, destination, method)
	if err != nil {
		return nil, err
	}

	if c.cache != nil && overrides != nil {
		if err := c.cache.Set(ctx, origin, destination, method, overrides); err != nil {
			c.log.Warn().Err(err).Msg("rate cache write failed")
		}
	}
	return overrides, nil
}

func (c *Client) fetch(ctx context.Context, origin, destination string, method domain.ShippingMethod) (*domain.FreightOverrides, error) {
	q := url.Values{}
	q.Set("origin", origin)
	q.Set("destination", destination)
	q.Set("method", string(method))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/rates?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("benchmark request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("benchmark fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// No benchmark data for this lane; defaults apply.
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("benchmark fetch: unexpected status %d", resp.StatusCode)
	}

	var rr rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return nil, fmt.Errorf("benchmark decode: %w", err)
	}

	return &domain.FreightOverrides{
		Container20ft: rr.Container20ft,
		Container40ft: rr.Container40ft,
		PerCBM:        rr.PerCBM,
		AirPerKg:      rr.AirPerKg,
		ExpressPerKg:  rr.ExpressPerKg,
	}, nil
}
