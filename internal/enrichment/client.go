// Package enrichment talks to the external metadata and deals services.
// Every outbound call goes through a per-client circuit breaker so a dead
// upstream fails fast instead of tying up workers.
package enrichment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"github.com/vytor/gameshelf/internal/logger"
	"github.com/vytor/gameshelf/internal/metrics"
)

// ErrNotFound means the upstream answered but had nothing for the query.
// It does not count against the circuit breaker.
var ErrNotFound = errors.New("enrichment: no match")

// ErrUnavailable wraps breaker rejections.
var ErrUnavailable = errors.New("enrichment: upstream unavailable")

const (
	breakerTimeout          = 30 * time.Second
	breakerFailureThreshold = 5
	maxErrorBody            = 1024
)

type httpClient struct {
	name    string
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[[]byte]
	log     *logger.Logger
}

func newHTTPClient(name, baseURL string, timeout time.Duration) *httpClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	log := logger.Default().WithPrefix(name)
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker %s: %s -> %s", name, from, to)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})

	return &httpClient{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		cb:      cb,
		log:     log,
	}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// getJSON issues GET baseURL+path?query and decodes the body into out.
func (c *httpClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	log := logger.FromContext(ctx).WithPrefix(c.name).WithField("url", endpoint)

	body, err := c.cb.Execute(func() ([]byte, error) {
		return c.fetch(ctx, log, endpoint)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.EnrichmentRequests.WithLabelValues(c.name, "rejected").Inc()
		log.Warn("request rejected: %v", err)
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, c.name, err)
	case errors.Is(err, ErrNotFound):
		metrics.EnrichmentRequests.WithLabelValues(c.name, "not_found").Inc()
		return err
	case err != nil:
		metrics.EnrichmentRequests.WithLabelValues(c.name, "failure").Inc()
		return err
	}
	metrics.EnrichmentRequests.WithLabelValues(c.name, "success").Inc()

	if err := json.Unmarshal(body, out); err != nil {
		log.Error("failed to decode response: %v", err)
		return fmt.Errorf("%s: decode response: %w", c.name, err)
	}
	return nil
}

func (c *httpClient) fetch(ctx context.Context, log *logger.Logger, endpoint string) ([]byte, error) {
	log.Debug("requesting")
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("request failed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("response received in %v, status=%d", time.Since(start), resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Error("request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("%s status %d: %s", c.name, resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}
