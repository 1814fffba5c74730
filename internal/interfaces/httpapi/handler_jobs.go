package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/athlete-hub/internal/domain/synclog"
	"github.com/riskibarqy/athlete-hub/internal/usecase"
)

type backfillRequest struct {
	Seasons    []int `json:"seasons"`
	NumSeasons int   `json:"num_seasons"`
}

type jobAcceptedDTO struct {
	Job    string `json:"job"`
	Status string `json:"status"`
}

func (h *Handler) RunNightlySyncGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunNightlySyncGames")
	defer span.End()

	if err := h.dispatcher.DispatchNightlySyncGames(ctx); err != nil {
		h.logger.WarnContext(ctx, "dispatch nightly sync failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusAccepted, jobAcceptedDTO{Job: synclog.JobNightlySyncGames, Status: "accepted"})
}

func (h *Handler) RunWeeklySyncPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunWeeklySyncPlayerStats")
	defer span.End()

	if err := h.dispatcher.DispatchWeeklySyncPlayerStats(ctx); err != nil {
		h.logger.WarnContext(ctx, "dispatch weekly stats sync failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusAccepted, jobAcceptedDTO{Job: synclog.JobWeeklySyncPlayerStats, Status: "accepted"})
}

func (h *Handler) RunHistoricalBackfill(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunHistoricalBackfill")
	defer span.End()

	req, err := decodeBackfillRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.dispatcher.DispatchHistoricalBackfill(ctx, usecase.BackfillInput{
		Seasons:    req.Seasons,
		NumSeasons: req.NumSeasons,
	}); err != nil {
		h.logger.WarnContext(ctx, "dispatch backfill failed", "seasons", req.Seasons, "num_seasons", req.NumSeasons, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusAccepted, jobAcceptedDTO{Job: synclog.JobHistoricalBackfillStats, Status: "accepted"})
}

// decodeBackfillRequest accepts an empty body as "use the configured default".
func decodeBackfillRequest(r *http.Request) (backfillRequest, error) {
	decoder := jsoniter.NewDecoder(io.LimitReader(r.Body, 1<<16))
	decoder.DisallowUnknownFields()

	var req backfillRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return backfillRequest{}, nil
		}
		return backfillRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}
