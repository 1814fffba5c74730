package nba

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/riskibarqy/athlete-hub/external/provider"
)

func TestClient_Endpoints(t *testing.T) {
	t.Parallel()

	var teamCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch r.URL.Path {
		case "/teams":
			teamCalls.Add(1)
			_, _ = w.Write([]byte(`{"data":[{"id":1,"name":"Hawks"},{"id":2,"name":"Celtics"}]}`))
		case "/games":
			if q.Get("team_ids[]") != "1" || q.Get("seasons[]") != "2024" {
				t.Errorf("unexpected games query %s", r.URL.RawQuery)
			}
			_, _ = w.Write([]byte(`{"data":[{"id":10}]}`))
		case "/season_averages":
			if q.Get("player_ids[]") != "237" || q.Get("season") != "2024" {
				t.Errorf("unexpected averages query %s", r.URL.RawQuery)
			}
			_, _ = w.Write([]byte(`{"data":[{"pts":27.5,"season":2024}]}`))
		case "/stats":
			_, _ = w.Write([]byte(`{"data":[{"pts":30},{"pts":22}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(provider.Config{BaseURL: srv.URL, Retries: 1})
	ctx := context.Background()

	if teams := client.GetTeams(ctx); len(teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(teams))
	}
	_ = client.GetTeams(ctx)
	if teamCalls.Load() != 1 {
		t.Fatalf("expected cached teams, got %d calls", teamCalls.Load())
	}
	if games := client.GetGames(ctx, 1, 2024); len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	if avg := client.GetPlayerStats(ctx, 237, 2024, ""); avg["pts"] != 27.5 {
		t.Fatalf("unexpected averages %#v", avg)
	}
	if rows := client.GetPlayerGameStats(ctx, 237, 2024); len(rows) != 2 {
		t.Fatalf("expected 2 stat rows, got %d", len(rows))
	}
}

func TestClient_EmptyAveragesYieldEmptyRecord(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	if avg := NewClient(provider.Config{BaseURL: srv.URL}).GetPlayerStats(context.Background(), 1, 0, ""); len(avg) != 0 {
		t.Fatalf("expected empty record, got %#v", avg)
	}
}
