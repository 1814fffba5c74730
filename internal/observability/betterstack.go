package observability

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/athlete-hub/internal/config"
	"github.com/riskibarqy/athlete-hub/internal/platform/logging"
	"github.com/riskibarqy/athlete-hub/internal/platform/metrics"
	"github.com/valyala/bytebufferpool"
)

const shipQueueSize = 1024

// InitBetterStackLogger tees entries at BetterStackMinLevel to the Better Stack
// ingest endpoint. Shipping is asynchronous; a full queue drops lines.
func InitBetterStackLogger(cfg config.Config, baseLogger *logging.Logger) (*logging.Logger, func(context.Context) error, error) {
	if baseLogger == nil {
		baseLogger = logging.NewJSON(cfg.LogLevel)
	}

	if !cfg.BetterStackEnabled {
		baseLogger.Info("betterstack disabled", "reason", "BETTERSTACK_ENABLED=false")
		return baseLogger, func(context.Context) error { return nil }, nil
	}

	endpoint := normalizeBetterStackEndpoint(cfg.BetterStackEndpoint)
	if endpoint == "" {
		return nil, nil, fmt.Errorf("betterstack endpoint cannot be empty")
	}

	shipper := newLogShipper(endpoint, strings.TrimSpace(cfg.BetterStackToken), cfg.BetterStackTimeout)
	logger := baseLogger.WithSink(shipper, cfg.BetterStackMinLevel)
	logger.Info("betterstack enabled",
		"endpoint", endpoint,
		"min_level", cfg.BetterStackMinLevel.String(),
		"service_name", cfg.ServiceName,
	)

	return logger, func(ctx context.Context) error {
		if ctx == nil {
			ctx = context.Background()
		}
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
		}
		if err := shipper.Close(ctx); err != nil {
			return fmt.Errorf("drain betterstack queue: %w", err)
		}
		if err := logger.Sync(); err != nil && !isIgnorableLoggerSyncError(err) {
			return err
		}
		return nil
	}, nil
}

func normalizeBetterStackEndpoint(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	return "https://" + value
}

// logShipper is a zapcore.WriteSyncer posting each JSON line from a single
// background goroutine.
type logShipper struct {
	endpoint  string
	token     string
	client    *http.Client
	queue     chan *bytebufferpool.ByteBuffer
	mu        sync.RWMutex
	closeOnce sync.Once
	closed    atomic.Bool
	done      chan struct{}
}

func newLogShipper(endpoint, token string, timeout time.Duration) *logShipper {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	s := &logShipper{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: timeout},
		queue:    make(chan *bytebufferpool.ByteBuffer, shipQueueSize),
		done:     make(chan struct{}),
	}
	go s.run()

	return s
}

func (s *logShipper) Write(p []byte) (int, error) {
	payload := bytes.TrimSpace(p)
	if len(payload) == 0 {
		return len(p), nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed.Load() {
		return len(p), nil
	}

	// zap reuses p after Write returns.
	buf := bytebufferpool.Get()
	_, _ = buf.Write(payload)

	select {
	case s.queue <- buf:
	default:
		bytebufferpool.Put(buf)
		metrics.LogShipDropped.Inc()
	}

	return len(p), nil
}

func (s *logShipper) run() {
	defer close(s.done)

	for buf := range s.queue {
		s.send(buf.B)
		bytebufferpool.Put(buf)
	}
}

func (s *logShipper) send(payload []byte) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		fmt.Fprintf(os.Stderr, "betterstack create request failed: %v\n", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "betterstack send log failed: %v\n", err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		fmt.Fprintf(os.Stderr, "betterstack send log got non-2xx status=%d\n", resp.StatusCode)
	}
}

// Close stops accepting lines and waits for the queue to drain or ctx to end.
func (s *logShipper) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed.Store(true)
		close(s.queue)
		s.mu.Unlock()
	})

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *logShipper) Sync() error {
	return nil
}

func isIgnorableLoggerSyncError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "bad file descriptor") || strings.Contains(msg, "invalid argument")
}
