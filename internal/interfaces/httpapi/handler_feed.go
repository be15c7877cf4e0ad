package httpapi

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/matchday-feed/internal/usecase"
)

func (h *Handler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTransfers")
	defer span.End()

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidInput))
			return
		}
		limit = parsed
	}

	items, err := h.transferService.ListRecent(ctx, limit)
	if err != nil {
		h.writeServiceError(r, w, err)
		return
	}

	out := make([]transferDTO, 0, len(items))
	for _, item := range items {
		out = append(out, transferToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueStandings")
	defer span.End()

	items, err := h.leagueStandingService.ListByLeague(ctx, r.PathValue("leagueID"))
	if err != nil {
		h.writeServiceError(r, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(ctx, items))
}

func (h *Handler) ListAllStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAllStandings")
	defer span.End()

	grouped, err := h.leagueStandingService.ListAll(ctx)
	if err != nil {
		h.writeServiceError(r, w, err)
		return
	}

	leagues := make([]string, 0, len(grouped))
	for leagueID := range grouped {
		leagues = append(leagues, leagueID)
	}
	sort.Strings(leagues)

	out := make(map[string][]standingDTO, len(grouped))
	for _, leagueID := range leagues {
		out[leagueID] = standingsToDTO(ctx, grouped[leagueID])
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListLiveScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLiveScores")
	defer span.End()

	groups, err := h.liveScoreService.ListGrouped(ctx)
	if err != nil {
		h.writeServiceError(r, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, competitionsToDTO(groups))
}

// writeServiceError logs failures that surface as 5xx before writing the envelope.
func (h *Handler) writeServiceError(r *http.Request, w http.ResponseWriter, err error) {
	ctx := r.Context()
	if classifyError(err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeError(ctx, w, err)
}
