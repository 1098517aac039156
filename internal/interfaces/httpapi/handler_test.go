package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/draftroom/keeper-league/internal/infrastructure/repository/memory"
	"github.com/draftroom/keeper-league/internal/platform/cache"
	"github.com/draftroom/keeper-league/internal/platform/id"
	"github.com/draftroom/keeper-league/internal/platform/logging"
	"github.com/draftroom/keeper-league/internal/usecase"
)

const (
	testCommissionerKey  = "commissioner-secret"
	testInternalJobToken = "job-secret"
)

type staticFeed struct {
	rows []usecase.ExternalTransaction
}

func (f staticFeed) FetchTransactions(_ context.Context, _ int) ([]usecase.ExternalTransaction, error) {
	return f.rows, nil
}

func newTestRouter(t *testing.T, feedRows []usecase.ExternalTransaction) http.Handler {
	t.Helper()

	acqRepo := memory.NewAcquisitionRepository(memory.SeedAcquisitions())
	teamRepo := memory.NewTeamRepository(memory.SeedSlots(), memory.SeedAliases())
	seasonRepo := memory.NewSeasonRepository(memory.SeedSeasons())
	overrideRepo := memory.NewOverrideRepository(nil)
	selectionRepo := memory.NewSelectionRepository()

	rules := usecase.NewRuleService(memory.NewRuleRepository(memory.SeedRules()), cache.NewStore(time.Minute))
	resolver := usecase.NewChainResolver(acqRepo, rules, logging.NewNop())
	keepers := usecase.NewKeeperService(resolver, rules, overrideRepo, seasonRepo, logging.NewNop())
	selections := usecase.NewSelectionService(selectionRepo, seasonRepo, keepers, id.NewRandomGenerator(), logging.NewNop())
	trades := usecase.NewTradeService(acqRepo, acqRepo, teamRepo, logging.NewNop())
	overrides := usecase.NewOverrideService(overrideRepo, logging.NewNop())
	league := usecase.NewLeagueService(teamRepo, seasonRepo, logging.NewNop())
	imports := usecase.NewImportService(staticFeed{rows: feedRows}, acqRepo, id.NewRandomGenerator(), logging.NewNop())

	handler := NewHandler(keepers, selections, trades, overrides, rules, league, imports, logging.NewNop())

	return NewRouter(handler, logging.NewNop(), []string{"*"}, testCommissionerKey, testInternalJobToken)
}

func doRequest(t *testing.T, router http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	return body["data"]
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doRequest(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_ListSlots_ActiveSeasonAliases(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doRequest(t, router, http.MethodGet, "/v1/slots", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	slots, ok := decodeData(t, rec).([]any)
	if !ok || len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %v", decodeData(t, rec))
	}

	first, _ := slots[0].(map[string]any)
	if got, _ := first["displayName"].(string); got != "Waiver Wire Wizards" {
		t.Fatalf("expected current alias for slot one, got %q", got)
	}
}

func TestRouter_GetPlayerCost(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doRequest(t, router, http.MethodGet,
		"/v1/slots/"+memory.SlotIDWizards+"/players/wr-chase/keeper-cost?year=2026", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data, _ := decodeData(t, rec).(map[string]any)
	cost, _ := data["cost"].(map[string]any)
	if got, _ := cost["baseRound"].(float64); got != 6 {
		t.Fatalf("expected base round 6, got %v", cost["baseRound"])
	}
	if eligible, _ := cost["eligible"].(bool); eligible {
		t.Fatal("expected ineligible in year three of the chain")
	}
}

func TestRouter_GetPlayerCost_UnknownPlayer(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doRequest(t, router, http.MethodGet,
		"/v1/slots/"+memory.SlotIDWizards+"/players/nobody/keeper-cost?year=2026", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_GetRosterCosts(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doRequest(t, router, http.MethodGet,
		"/v1/slots/"+memory.SlotIDWizards+"/keeper-costs?year=2026", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	costs, ok := decodeData(t, rec).([]any)
	if !ok || len(costs) != 4 {
		t.Fatalf("expected 4 roster entries, got %v", decodeData(t, rec))
	}
}

func TestRouter_CostProgression_RequiresRange(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doRequest(t, router, http.MethodGet,
		"/v1/slots/"+memory.SlotIDWizards+"/players/te-kelce/keeper-cost/progression", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without from/to, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet,
		"/v1/slots/"+memory.SlotIDWizards+"/players/te-kelce/keeper-cost/progression?from=2026&to=2028", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	steps, ok := decodeData(t, rec).([]any)
	if !ok || len(steps) != 3 {
		t.Fatalf("expected 3 progression steps, got %v", decodeData(t, rec))
	}
}

func TestRouter_ExecuteTrade_RequiresCommissionerKey(t *testing.T) {
	router := newTestRouter(t, nil)
	payload := `{"seasonYear":2025,"moves":[{"playerId":"qb-allen","fromSlotId":"slot-02","toSlotId":"slot-03"}]}`

	rec := doRequest(t, router, http.MethodPost, "/v1/trades", payload, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/trades", payload, map[string]string{
		"X-Commissioner-Key": testCommissionerKey,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with key, got %d: %s", rec.Code, rec.Body.String())
	}

	// The traded player now prices off the inherited round-1 pick.
	rec = doRequest(t, router, http.MethodGet,
		"/v1/slots/slot-03/players/qb-allen/keeper-cost?year=2026", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after trade, got %d: %s", rec.Code, rec.Body.String())
	}
	data, _ := decodeData(t, rec).(map[string]any)
	if got, _ := data["resolution"].(string); got != string(usecase.ResolutionTradeInheritedDraft) {
		t.Fatalf("expected trade_inherited_draft resolution, got %q", got)
	}
}

func TestRouter_SetOverride_AndList(t *testing.T) {
	router := newTestRouter(t, nil)
	payload := `{"playerId":"wr-hill","slotId":"slot-01","seasonYear":2026,"round":9,"note":"injury settlement"}`

	rec := doRequest(t, router, http.MethodPost, "/v1/overrides", payload, map[string]string{
		"X-Commissioner-Key": testCommissionerKey,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/seasons/2026/overrides", "", map[string]string{
		"X-Commissioner-Key": testCommissionerKey,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	items, ok := decodeData(t, rec).([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected 1 override, got %v", decodeData(t, rec))
	}

	// Overridden player prices at the forced round.
	rec = doRequest(t, router, http.MethodGet,
		"/v1/slots/slot-01/players/wr-hill/keeper-cost?year=2026", "", nil)
	data, _ := decodeData(t, rec).(map[string]any)
	if overridden, _ := data["overridden"].(bool); !overridden {
		t.Fatalf("expected overridden cost, got %v", data)
	}
}

func TestRouter_SetRule_InvalidBodyRejected(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doRequest(t, router, http.MethodPut, "/v1/rules/TRUE_FA_ROUND_15", `{"bogus":true}`, map[string]string{
		"X-Commissioner-Key": testCommissionerKey,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown fields, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_ImportSeasonJob(t *testing.T) {
	occurred := time.Date(2024, time.September, 1, 17, 0, 0, 0, time.UTC)
	router := newTestRouter(t, []usecase.ExternalTransaction{
		{
			ExternalRef: "txn-9001",
			PlayerID:    "rb-gibbs",
			SlotID:      "slot-04",
			SeasonYear:  2024,
			Type:        "DRAFT",
			Round:       intPtrOf(3),
			OccurredAt:  occurred,
		},
	})

	rec := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/import-season",
		`{"seasonYear":2024}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without job token, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/internal/jobs/import-season",
		`{"seasonYear":2024}`, map[string]string{"X-Internal-Job-Token": testInternalJobToken})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data, _ := decodeData(t, rec).(map[string]any)
	if got, _ := data["imported"].(float64); got != 1 {
		t.Fatalf("expected 1 imported row, got %v", data["imported"])
	}
}

func intPtrOf(v int) *int { return &v }
