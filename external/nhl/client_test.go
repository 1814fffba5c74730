package nhl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/athlete-hub/external/provider"
)

func TestClient_Endpoints(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch r.URL.Path {
		case "/teams":
			_, _ = w.Write([]byte(`{"teams":[{"id":1},{"id":2}]}`))
		case "/schedule":
			if q.Get("season") != "20232024" {
				t.Errorf("unexpected season %q", q.Get("season"))
			}
			_, _ = w.Write([]byte(`{"dates":[{"games":[{"gamePk":2023020001}]}]}`))
		case "/people/8478402/stats":
			if q.Get("stats") != "statsSingleSeason" {
				t.Errorf("unexpected stats type")
			}
			_, _ = w.Write([]byte(`{"stats":[{"splits":[{"stat":{"goals":30,"assists":40,"points":70}}]}]}`))
		case "/standings":
			_, _ = w.Write([]byte(`{"records":[{"teamRecords":[{"team":{"id":1},"points":90}]}]}`))
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
	if games := client.GetGames(ctx, 1, 2023); len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	stat := client.GetPlayerStats(ctx, 8478402, 0, "")
	if stat["goals"] != float64(30) || stat["points"] != float64(70) {
		t.Fatalf("unexpected stat %#v", stat)
	}
	if records := client.GetStandings(ctx); len(records) != 1 {
		t.Fatalf("expected 1 standings record, got %d", len(records))
	}
}

func TestSeason(t *testing.T) {
	t.Parallel()

	if got := Season(2023); got != "20232024" {
		t.Fatalf("unexpected season %q", got)
	}
}
