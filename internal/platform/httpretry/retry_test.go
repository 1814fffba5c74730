package httpretry

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

type countingWaiter struct{ calls atomic.Int32 }

func (w *countingWaiter) Wait(context.Context) error {
	w.calls.Add(1)
	return nil
}

func newGet(url string) RequestFunc {
	return func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	}
}

func okResponse(body string) *http.Response {
	return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(body))}
}

func TestDo_ExhaustsRetriesAndPropagatesLastError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	errDown := errors.New("connection refused")
	doer := doerFunc(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, errDown
	})
	waiter := &countingWaiter{}

	_, err := Do(context.Background(), doer, newGet("http://provider.test/teams"), Options{
		Retries:       2,
		BackoffFactor: 0,
		Limiter:       waiter,
		Logger:        nil,
	})
	if !errors.Is(err, errDown) {
		t.Fatalf("expected original transport error, got %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 transport calls, got %d", got)
	}
	if got := waiter.calls.Load(); got != 2 {
		t.Fatalf("expected limiter wait before every attempt, got %d", got)
	}
}

func TestDo_RecoversAfterOneFailure(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	doer := doerFunc(func(*http.Request) (*http.Response, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("timeout")
		}
		return okResponse(`{"ok":true}`), nil
	})

	resp, err := Do(context.Background(), doer, newGet("http://provider.test/teams"), Options{Retries: 2, BackoffFactor: 0})
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 transport calls, got %d", got)
	}
}

func TestDo_NonSuccessStatusIsRetriedAsError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	doer := doerFunc(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(strings.NewReader("missing"))}, nil
	})

	_, err := Do(context.Background(), doer, newGet("http://provider.test/x?api_key=secret"), Options{Retries: 3, BackoffFactor: 0})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %T %v", err, err)
	}
	if statusErr.StatusCode != http.StatusNotFound || statusErr.Body != "missing" {
		t.Fatalf("unexpected status error: %+v", statusErr)
	}
	if strings.Contains(statusErr.URL, "secret") {
		t.Fatalf("expected api key to be redacted, got %s", statusErr.URL)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 transport calls, got %d", got)
	}
}

func TestDo_SleepsExponentialBackoffBetweenAttempts(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	var calls atomic.Int32
	doer := doerFunc(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, errors.New("reset by peer")
	})

	done := make(chan error, 1)
	go func() {
		_, err := Do(context.Background(), doer, newGet("http://provider.test/games"), Options{
			Retries:       3,
			BackoffFactor: 1,
			Clock:         clock,
		})
		done <- err
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := clock.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("first backoff never started: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 call before first backoff, got %d", got)
	}
	clock.Advance(time.Second)

	if err := clock.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("second backoff never started: %v", err)
	}
	clock.Advance(1999 * time.Millisecond)
	if got := calls.Load(); got != 2 {
		t.Fatalf("third attempt must wait 2s, calls=%d", got)
	}
	clock.Advance(time.Millisecond)

	select {
	case err := <-done:
		if err == nil {
			t.Fatalf("expected error after exhausting attempts")
		}
	case <-ctx.Done():
		t.Fatalf("retry loop did not finish")
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 calls, got %d", got)
	}
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	doer := doerFunc(func(*http.Request) (*http.Response, error) {
		cancel()
		return nil, errors.New("timeout")
	})

	_, err := Do(ctx, doer, newGet("http://provider.test/games"), Options{Retries: 3, BackoffFactor: 10})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	cases := []struct {
		factor  float64
		attempt int
		want    time.Duration
	}{
		{1, 1, time.Second},
		{1, 2, 2 * time.Second},
		{1, 3, 4 * time.Second},
		{0.5, 2, time.Second},
		{0, 3, 0},
	}
	for _, tc := range cases {
		if got := Backoff(tc.factor, tc.attempt); got != tc.want {
			t.Fatalf("Backoff(%v, %d) = %s, want %s", tc.factor, tc.attempt, got, tc.want)
		}
	}
}
