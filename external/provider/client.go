// Package provider is the shared fetch layer behind every league client.
// Fetch failures of any kind are logged and returned as an empty Record.
package provider

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
	"github.com/riskibarqy/athlete-hub/internal/platform/cache"
	"github.com/riskibarqy/athlete-hub/internal/platform/httpretry"
	"github.com/riskibarqy/athlete-hub/internal/platform/logging"
	"github.com/riskibarqy/athlete-hub/internal/platform/metrics"
	"github.com/riskibarqy/athlete-hub/internal/platform/ratelimit"
	"github.com/riskibarqy/athlete-hub/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 8 << 20
)

var (
	// ErrUnavailable marks request, status and breaker failures.
	ErrUnavailable = crerr.New("provider unavailable")
	// ErrMalformed marks bodies that are not a JSON object.
	ErrMalformed = crerr.New("provider response malformed")
)

// Record is one decoded JSON object from a provider.
type Record = map[string]any

type Config struct {
	League        sport.Code
	BaseURL       string
	Token         string
	Timeout       time.Duration
	MinInterval   time.Duration
	Retries       int
	BackoffFactor float64
	CacheTTL      time.Duration

	CircuitBreaker resilience.CircuitBreakerConfig
	HTTPClient     *http.Client
	Logger         *logging.Logger
	Clock          clockwork.Clock
}

// DefaultConfig holds the public API pacing defaults.
func DefaultConfig(league sport.Code) Config {
	return Config{
		League:         league,
		Timeout:        DefaultTimeout,
		MinInterval:    ratelimit.DefaultMinInterval,
		Retries:        httpretry.DefaultRetries,
		BackoffFactor:  httpretry.DefaultBackoffFactor,
		CacheTTL:       cache.DefaultTTL,
		CircuitBreaker: resilience.DefaultCircuitBreakerConfig(),
	}
}

type Client struct {
	league  sport.Code
	baseURL string
	token   string
	http    httpretry.Doer
	retry   httpretry.Options
	limiter *ratelimit.Limiter
	cache   *cache.Store
	breaker *resilience.Breaker[Record]
	logger  *logging.Logger
}

// New builds a client. defaultBaseURL is used when cfg.BaseURL is blank.
func New(cfg Config, defaultBaseURL string) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.With("league", cfg.League.String())

	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = strings.TrimRight(defaultBaseURL, "/")
	}

	limiter := ratelimit.New(cfg.MinInterval, ratelimit.WithClock(clock))
	name := "provider_" + strings.ToLower(cfg.League.String())

	return &Client{
		league:  cfg.League,
		baseURL: baseURL,
		token:   strings.TrimSpace(cfg.Token),
		http:    httpClient,
		retry: httpretry.Options{
			Retries:       cfg.Retries,
			BackoffFactor: cfg.BackoffFactor,
			Limiter:       limiter,
			Clock:         clock,
			Logger:        logger,
		},
		limiter: limiter,
		cache:   cache.NewStore(cfg.CacheTTL, cache.WithClock(clock), cache.WithName(name)),
		breaker: resilience.NewBreaker[Record](name, cfg.CircuitBreaker, logger),
		logger:  logger,
	}
}

func (c *Client) League() sport.Code { return c.league }

func (c *Client) BaseURL() string { return c.baseURL }

// InvalidateCache drops every cached response of this client.
func (c *Client) InvalidateCache(ctx context.Context) {
	c.cache.Clear(ctx)
}

// GetJSON fetches path and decodes the body. It never fails: errors are
// logged and yield an empty Record.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values) Record {
	data, err := c.Fetch(ctx, path, query)
	if err != nil {
		c.logFailure(ctx, path, err)
		return Record{}
	}
	return data
}

// GetJSONCached is GetJSON behind the response cache. Only successful
// responses are cached.
func (c *Client) GetJSONCached(ctx context.Context, key, path string, query url.Values) Record {
	value, err := c.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return c.Fetch(ctx, path, query)
	})
	if err != nil {
		c.logFailure(ctx, path, err)
		return Record{}
	}
	data, ok := value.(Record)
	if !ok {
		return Record{}
	}
	return data
}

// Fetch is the fail-fast variant used by GetJSON. Errors are marked with
// ErrUnavailable or ErrMalformed.
func (c *Client) Fetch(ctx context.Context, path string, query url.Values) (Record, error) {
	started := time.Now()
	defer func() {
		metrics.ProviderRequestDuration.WithLabelValues(c.league.String()).Observe(time.Since(started).Seconds())
	}()

	var decodeErr error
	data, err := c.breaker.Execute(func() (Record, error) {
		body, err := c.fetchBody(ctx, path, query)
		if err != nil {
			return nil, err
		}
		var out Record
		if err := sonic.Unmarshal(body, &out); err != nil || out == nil {
			decodeErr = crerr.Mark(crerr.Wrapf(errOrNull(err), "decode %s", path), ErrMalformed)
			return nil, nil
		}
		return out, nil
	})

	switch {
	case resilience.IsOpen(err):
		metrics.ProviderRequests.WithLabelValues(c.league.String(), "circuit_open").Inc()
		return nil, crerr.Mark(crerr.Wrapf(err, "%s circuit %s", c.league, c.breaker.State()), ErrUnavailable)
	case err != nil:
		metrics.ProviderRequests.WithLabelValues(c.league.String(), "request_error").Inc()
		return nil, crerr.Mark(crerr.Wrapf(err, "GET %s", path), ErrUnavailable)
	case decodeErr != nil:
		metrics.ProviderRequests.WithLabelValues(c.league.String(), "decode_error").Inc()
		return nil, decodeErr
	}
	metrics.ProviderRequests.WithLabelValues(c.league.String(), "success").Inc()
	return data, nil
}

func (c *Client) fetchBody(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	resp, err := httpretry.Do(ctx, c.http, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}
		return req, nil
	}, c.retry)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxBodyBytes)); err != nil {
		return nil, crerr.Wrap(err, "read response body")
	}
	// buf goes back to the pool; the decoder needs its own copy.
	return append([]byte(nil), buf.B...), nil
}

func (c *Client) logFailure(ctx context.Context, path string, err error) {
	msg := "provider request failed"
	if crerr.Is(err, ErrMalformed) {
		msg = "provider returned malformed JSON"
	}
	c.logger.ErrorContext(ctx, msg, "path", path, "breaker", c.breaker.State(), "error", err)
}

func errOrNull(err error) error {
	if err != nil {
		return err
	}
	return crerr.New("body is not a JSON object")
}

// CacheKey builds a stable key from a path and its query parameters.
func CacheKey(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(path)
	for i, key := range keys {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(strings.Join(query[key], ","))
	}
	return b.String()
}
