// Package client provides the upstream HTTP client with per-attempt
// timeouts, fixed-delay retries and an optional circuit breaker.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/placeholder-proxy/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// DefaultBaseURL is the public JSONPlaceholder API.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

// Prometheus metrics for upstream requests.
var (
	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "placeholder_upstream_requests_total",
		Help: "Total upstream requests by endpoint and status",
	}, []string{"endpoint", "status"})

	upstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "placeholder_upstream_request_duration_seconds",
		Help:    "Upstream request duration in seconds by endpoint, retries included",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	upstreamErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "placeholder_upstream_errors_total",
		Help: "Total upstream errors by class",
	}, []string{"class"})
)

var numericSegment = regexp.MustCompile(`/\d+`)

// Client fetches JSON documents from the upstream API.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is prepended to every request path
	BaseURL string

	// UserAgent header sent upstream
	UserAgent string

	// Timeout bounds a single attempt
	Timeout time.Duration

	// Retry
	MaxRetries int
	RetryDelay time.Duration

	// CircuitBreaker trips after repeated exhausted fetches (off by default)
	CircuitBreaker bool

	// HTTPClient overrides the default transport (for testing)
	HTTPClient *http.Client

	// Sleep overrides the retry delay implementation (for testing)
	Sleep Sleeper
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:    DefaultBaseURL,
		UserAgent:  "placeholder-proxy/0.1.0",
		Timeout:    10 * time.Second,
		MaxRetries: 3,
		RetryDelay: 1 * time.Second,
	}
}

// New creates a new upstream client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}

	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("max_retries must be >= 0 (got %d)", cfg.MaxRetries)
	}

	if cfg.RetryDelay < 0 {
		return nil, fmt.Errorf("retry_delay must be >= 0 (got %s)", cfg.RetryDelay)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	logger := logging.NewLogger("upstream-client")

	c := &Client{
		httpClient: httpClient,
		config:     cfg,
		logger:     logger,
	}

	if cfg.CircuitBreaker {
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "upstream",
			MaxRequests: 1,
			Interval:    30 * time.Second,
			Timeout:     15 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			IsSuccessful: func(err error) bool {
				// 404s do not count as failures.
				return err == nil || IsNotFound(err)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn().
					Str("breaker", name).
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("Circuit breaker state changed")
			},
		})
	}

	return c, nil
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.config
}

// GetJSON fetches path and returns the raw response body.
// Non-2xx responses yield an *APIError; all failures are retried with a
// fixed delay before the final error is returned.
func (c *Client) GetJSON(ctx context.Context, path string) ([]byte, error) {
	if c.breaker == nil {
		return c.fetchWithRetry(ctx, path)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetchWithRetry(ctx, path)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			upstreamRequestsTotal.WithLabelValues(endpointLabel(path), "circuit_open").Inc()
			return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		return nil, err
	}
	return result.([]byte), nil
}

// Get fetches path and decodes the JSON body into v.
func (c *Client) Get(ctx context.Context, path string, v any) error {
	body, err := c.GetJSON(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) fetchWithRetry(ctx context.Context, path string) ([]byte, error) {
	endpoint := endpointLabel(path)

	startTime := time.Now()
	defer func() {
		upstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	retry := RetryConfig{MaxRetries: c.config.MaxRetries, Delay: c.config.RetryDelay}
	logger := c.logger.With().Str("endpoint", path).Logger()

	var body []byte
	err := retryWithDelay(ctx, retry, c.config.Sleep, logger, func(attempt int) error {
		var reqErr error
		body, reqErr = c.do(ctx, path)
		if reqErr != nil {
			errClass := classifyError(reqErr)
			upstreamErrorsTotal.WithLabelValues(string(errClass)).Inc()

			status := "network_error"
			var apiErr *APIError
			if errors.As(reqErr, &apiErr) {
				status = strconv.Itoa(apiErr.StatusCode)
			}
			upstreamRequestsTotal.WithLabelValues(endpoint, status).Inc()

			logger.Warn().
				Err(reqErr).
				Int("attempt", attempt).
				Str("error_class", string(errClass)).
				Msg("Upstream request failed")
			return reqErr
		}

		upstreamRequestsTotal.WithLabelValues(endpoint, "200").Inc()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return body, nil
}

// do performs a single attempt bounded by the configured timeout.
func (c *Client) do(ctx context.Context, path string) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	url := c.config.BaseURL + path
	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	c.logger.Debug().Str("url", url).Msg("Executing upstream request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
			URL:        url,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return body, nil
}

// statusText returns the reason phrase of resp.
func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

// endpointLabel collapses numeric path segments to keep metric cardinality bounded.
// Example: /posts/7/comments -> /posts/:id/comments
func endpointLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return numericSegment.ReplaceAllString(path, "/:id")
}
