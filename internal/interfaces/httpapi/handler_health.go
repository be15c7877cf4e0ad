package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/matchday-feed/internal/usecase"
)

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	if h.health != nil {
		if err := h.health.Ping(ctx); err != nil {
			h.logger.WarnContext(ctx, "health check failed", "error", err)
			writeError(ctx, w, fmt.Errorf("%w: store ping failed", usecase.ErrDependencyUnavailable))
			return
		}
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
