package httpapi

import "net/http"

type route struct {
	pattern string
	handle  http.HandlerFunc
}

func feedRoutes(h *Handler) []route {
	return []route{
		{"GET /api/transfers", h.ListTransfers},
		{"GET /api/leagues/standings", h.ListAllStandings},
		{"GET /api/leagues/{leagueID}/standings", h.ListLeagueStandings},
		{"GET /api/teams/{teamID}", h.GetTeamDetail},
		{"POST /api/teams/{teamID}/scrape", h.ScrapeTeam},
		{"GET /api/livescores", h.ListLiveScores},
	}
}

func docsRoutes(h *Handler) []route {
	return []route{
		{"GET /openapi.yaml", h.OpenAPI},
		{"GET /docs", h.SwaggerUI},
		{"GET /docs/", h.SwaggerUI},
	}
}

func registerSystemRoutes(mux *http.ServeMux, h *Handler, swaggerEnabled bool, metrics http.Handler) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
	if swaggerEnabled {
		register(mux, docsRoutes(h))
	}
}

func registerFeedRoutes(mux *http.ServeMux, h *Handler) {
	register(mux, feedRoutes(h))
}

func register(mux *http.ServeMux, routes []route) {
	for _, rt := range routes {
		mux.HandleFunc(rt.pattern, rt.handle)
	}
}
