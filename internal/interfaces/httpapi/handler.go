package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/athlete-hub/internal/domain/game"
	"github.com/riskibarqy/athlete-hub/internal/domain/synclog"
	"github.com/riskibarqy/athlete-hub/internal/platform/logging"
	"github.com/riskibarqy/athlete-hub/internal/usecase"
)

type Handler struct {
	catalog    *usecase.CatalogService
	dispatcher *usecase.JobDispatcher
	logger     *logging.Logger
}

func NewHandler(catalog *usecase.CatalogService, dispatcher *usecase.JobDispatcher, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		catalog:    catalog,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListSyncLogs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSyncLogs")
	defer span.End()

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.catalog.ListSyncLogs(ctx, synclog.ListFilter{
		JobName: r.URL.Query().Get("job_name"),
		Limit:   limit,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "list sync logs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]syncLogDTO, 0, len(items))
	for _, item := range items {
		out = append(out, syncLogToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	items, err := h.catalog.ListTeams(ctx, r.PathValue("league"))
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "league", r.PathValue("league"), "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	teamID, err := queryInt(r, "team_id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.catalog.ListGames(ctx, r.PathValue("league"), game.ListFilter{
		Season: r.URL.Query().Get("season"),
		TeamID: int64(teamID),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list games failed", "league", r.PathValue("league"), "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]gameDTO, 0, len(items))
	for _, item := range items {
		out = append(out, gameToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetAthleteStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAthleteStats")
	defer span.End()

	result, err := h.catalog.GetAthleteStats(ctx, r.PathValue("athleteID"), r.URL.Query().Get("season"))
	if err != nil {
		h.logger.WarnContext(ctx, "get athlete stats failed", "athlete_id", r.PathValue("athleteID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, athleteStatsToDTO(result))
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}
