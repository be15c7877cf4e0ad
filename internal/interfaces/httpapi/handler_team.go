package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/matchday-feed/internal/usecase"
)

const (
	scrapeTeamSucceeded = "Team data scraped successfully"
	scrapeTeamFailed    = "Failed to scrape team data"
)

func (h *Handler) GetTeamDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamDetail")
	defer span.End()

	leagueID := strings.TrimSpace(r.URL.Query().Get("league"))
	detail, err := h.teamService.GetDetail(ctx, r.PathValue("teamID"), leagueID)
	if err != nil {
		h.writeServiceError(r, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamDetailToDTO(ctx, detail))
}

// ScrapeTeam keeps the flat {success,message,data} shape existing clients
// of the re-scrape endpoint expect instead of the API envelope.
func (h *Handler) ScrapeTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScrapeTeam")
	defer span.End()

	var req scrapeTeamRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeJSON(ctx, w, http.StatusBadRequest, scrapeTeamResponse{
			Error: fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err).Error(),
		})
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeJSON(ctx, w, http.StatusBadRequest, scrapeTeamResponse{Error: err.Error()})
		return
	}

	detail, err := h.teamService.Rescrape(ctx, r.PathValue("teamID"), req.LeagueID)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			writeJSON(ctx, w, http.StatusBadRequest, scrapeTeamResponse{Error: err.Error()})
			return
		}
		h.logger.ErrorContext(ctx, "team re-scrape failed", "team_id", r.PathValue("teamID"), "error", err)
		writeJSON(ctx, w, http.StatusInternalServerError, scrapeTeamResponse{Error: scrapeTeamFailed})
		return
	}

	writeJSON(ctx, w, http.StatusOK, scrapeTeamResponse{
		Success: true,
		Message: scrapeTeamSucceeded,
		Data:    teamProfileToDTO(detail.Profile),
	})
}
