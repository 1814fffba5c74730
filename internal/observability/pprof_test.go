package observability

import (
	"testing"
	"time"

	"github.com/riskibarqy/athlete-hub/internal/config"
	"github.com/riskibarqy/athlete-hub/internal/platform/logging"
)

func TestStartPprofServer_Disabled(t *testing.T) {
	t.Parallel()

	srv, err := StartPprofServer(config.Config{PprofEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("start pprof: %v", err)
	}
	if srv != nil {
		t.Fatalf("expected nil server when disabled")
	}
	if err := StopPprofServer(srv, nil, time.Second); err != nil {
		t.Fatalf("stop nil server: %v", err)
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	t.Parallel()

	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}
