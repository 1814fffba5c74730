package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func handle(mux *http.ServeMux, pattern string, h http.Handler) {
	mux.Handle(pattern, route(pattern, h))
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	handle(mux, "GET /healthz", http.HandlerFunc(handler.Healthz))
	handle(mux, "GET /metrics", promhttp.Handler())
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler) {
	handle(mux, "GET /v1/sync-logs", http.HandlerFunc(handler.ListSyncLogs))
	handle(mux, "GET /v1/leagues/{league}/teams", http.HandlerFunc(handler.ListTeams))
	handle(mux, "GET /v1/leagues/{league}/games", http.HandlerFunc(handler.ListGames))
	handle(mux, "GET /v1/athletes/{athleteID}/stats", http.HandlerFunc(handler.GetAthleteStats))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	handle(mux, "POST /v1/internal/jobs/nightly-sync-games", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunNightlySyncGames)))
	handle(mux, "POST /v1/internal/jobs/weekly-sync-player-stats", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunWeeklySyncPlayerStats)))
	handle(mux, "POST /v1/internal/jobs/historical-backfill", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunHistoricalBackfill)))
}
