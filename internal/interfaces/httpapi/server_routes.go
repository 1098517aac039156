package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/slots", handler.ListSlots)
	mux.HandleFunc("GET /v1/seasons", handler.ListSeasons)
	mux.HandleFunc("GET /v1/rules", handler.ListRules)

	mux.HandleFunc("GET /v1/slots/{slotID}/keeper-costs", handler.GetRosterCosts)
	mux.HandleFunc("GET /v1/slots/{slotID}/players/{playerID}/keeper-cost", handler.GetPlayerCost)
	mux.HandleFunc("GET /v1/slots/{slotID}/players/{playerID}/keeper-cost/progression", handler.GetCostProgression)

	mux.HandleFunc("GET /v1/slots/{slotID}/seasons/{seasonYear}/selections", handler.GetSelectionOverview)
	mux.HandleFunc("POST /v1/slots/{slotID}/seasons/{seasonYear}/selections", handler.SelectKeeper)
	mux.HandleFunc("DELETE /v1/slots/{slotID}/seasons/{seasonYear}/selections/{playerID}", handler.RemoveKeeper)
	mux.HandleFunc("GET /v1/slots/{slotID}/seasons/{seasonYear}/selections/conflicts", handler.ListSelectionConflicts)
	mux.HandleFunc("GET /v1/slots/{slotID}/seasons/{seasonYear}/selections/{playerID}/bump-options", handler.GetBumpOptions)
	mux.HandleFunc("POST /v1/slots/{slotID}/seasons/{seasonYear}/selections/{playerID}/bump", handler.BumpKeeper)
	mux.HandleFunc("POST /v1/slots/{slotID}/seasons/{seasonYear}/selections/finalize", handler.FinalizeSelections)
}

func registerCommissionerRoutes(mux *http.ServeMux, handler *Handler, commissionerKey string) {
	guard := func(h http.HandlerFunc) http.Handler {
		return RequireCommissionerKey(commissionerKey, h)
	}

	mux.Handle("PUT /v1/seasons", guard(handler.UpsertSeason))
	mux.Handle("PUT /v1/rules/{code}", guard(handler.SetRule))
	mux.Handle("POST /v1/trades", guard(handler.ExecuteTrade))
	mux.Handle("POST /v1/overrides", guard(handler.SetOverride))
	mux.Handle("GET /v1/seasons/{seasonYear}/overrides", guard(handler.ListOverrides))
	mux.Handle("DELETE /v1/seasons/{seasonYear}/overrides/{slotID}/{playerID}", guard(handler.RemoveOverride))
	mux.Handle("POST /v1/slots/{slotID}/seasons/{seasonYear}/selections/reopen", guard(handler.ReopenSelections))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/import-season", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunImportSeasonJob)))
}
