package httpretry

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/athlete-hub/internal/platform/logging"
)

const (
	DefaultRetries       = 3
	DefaultBackoffFactor = 1.0

	maxErrorBodyBytes = 512
)

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Waiter paces attempts; *ratelimit.Limiter implements it.
type Waiter interface {
	Wait(ctx context.Context) error
}

// RequestFunc builds a fresh request for every attempt so bodies can be replayed.
type RequestFunc func(ctx context.Context) (*http.Request, error)

type Options struct {
	// Retries is the total number of attempts. Values below 1 use DefaultRetries.
	Retries int
	// BackoffFactor scales the exponential delay in seconds. Negative uses DefaultBackoffFactor.
	BackoffFactor float64
	Limiter       Waiter
	Clock         clockwork.Clock
	Logger        *logging.Logger
}

func DefaultOptions() Options {
	return Options{
		Retries:       DefaultRetries,
		BackoffFactor: DefaultBackoffFactor,
	}
}

func (o Options) normalize() Options {
	if o.Retries < 1 {
		o.Retries = DefaultRetries
	}
	if o.BackoffFactor < 0 {
		o.BackoffFactor = DefaultBackoffFactor
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	if o.Logger == nil {
		o.Logger = logging.Default()
	}
	return o
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Method     string
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Backoff returns the delay slept after failed attempt k (1-based): factor * 2^(k-1) seconds.
func Backoff(factor float64, attempt int) time.Duration {
	if factor <= 0 || attempt < 1 {
		return 0
	}
	seconds := factor * math.Pow(2, float64(attempt-1))
	return time.Duration(seconds * float64(time.Second))
}

// Do runs the request with bounded retries. Transport errors and non-2xx
// statuses are retried; the error of the final attempt is returned unchanged.
// On success the response is returned unread and the caller owns its body.
func Do(ctx context.Context, doer Doer, newRequest RequestFunc, opts Options) (*http.Response, error) {
	if doer == nil {
		return nil, errors.New("httpretry: doer is required")
	}
	if newRequest == nil {
		return nil, errors.New("httpretry: request builder is required")
	}
	opts = opts.normalize()

	var lastErr error
	for attempt := 1; attempt <= opts.Retries; attempt++ {
		if opts.Limiter != nil {
			if err := opts.Limiter.Wait(ctx); err != nil {
				return nil, errors.Wrap(err, "rate limiter wait")
			}
		}

		req, err := newRequest(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "build request")
		}

		resp, err := doer.Do(req)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}
		if err == nil {
			err = statusError(req, resp)
		}
		lastErr = err

		opts.Logger.WarnContext(ctx, "http request attempt failed",
			"method", req.Method,
			"url", RedactURL(req.URL.String()),
			"attempt", attempt,
			"retries", opts.Retries,
			"error", err,
		)

		if attempt == opts.Retries {
			break
		}
		if err := sleep(ctx, opts.Clock, Backoff(opts.BackoffFactor, attempt)); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

func statusError(req *http.Request, resp *http.Response) error {
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Method:     req.Method,
		URL:        RedactURL(req.URL.String()),
		Body:       strings.TrimSpace(string(body)),
	}
}

func sleep(ctx context.Context, clock clockwork.Clock, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := clock.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.Chan():
		return nil
	}
}

var sensitiveParams = []string{"api_key", "api_token", "apikey", "token", "key"}

// RedactURL masks credential-like query parameters before a URL is logged.
func RedactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	changed := false
	for _, name := range sensitiveParams {
		if query.Has(name) {
			query.Set(name, "REDACTED")
			changed = true
		}
	}
	if changed {
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}
