package statsfeed

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/draftroom/keeper-league/internal/platform/logging"
)

const sampleTransactions = `{
	"data": [
		{
			"ref": "tx-1001",
			"playerId": "wr-chase",
			"slot": "slot-01",
			"season": 2025,
			"type": "draft",
			"round": 2,
			"pick": 15,
			"timestamp": "2025-09-01T19:00:00Z"
		},
		{
			"ref": "tx-1002",
			"playerId": "wr-hill",
			"slot": "slot-01",
			"season": 2025,
			"type": "waiver",
			"timestamp": "2025-10-07T15:00:00Z"
		},
		{
			"ref": "tx-1003",
			"playerId": "te-kelce",
			"slot": "slot-01",
			"season": 2025,
			"type": "trade",
			"round": 8,
			"fromSlot": "slot-02",
			"timestamp": "2025-10-30 17:00:00"
		}
	]
}`

func TestClient_FetchTransactions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transactions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("season") != "2025" {
			t.Fatalf("unexpected season query: %s", r.URL.RawQuery)
		}
		if r.URL.Query().Get("token") != "secret" {
			t.Fatalf("expected token on request")
		}
		_, _ = w.Write([]byte(sampleTransactions))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Token:   "secret",
		Logger:  logging.NewNop(),
	})

	rows, err := client.FetchTransactions(t.Context(), 2025)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	draft := rows[0]
	if draft.ExternalRef != "tx-1001" || draft.Type != "draft" {
		t.Fatalf("unexpected first row: %+v", draft)
	}
	if draft.Round == nil || *draft.Round != 2 {
		t.Fatalf("expected round 2, got %v", draft.Round)
	}
	if draft.OccurredAt != time.Date(2025, time.September, 1, 19, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected timestamp: %v", draft.OccurredAt)
	}

	trade := rows[2]
	if trade.FromSlotID == nil || *trade.FromSlotID != "slot-02" {
		t.Fatalf("expected sending slot, got %v", trade.FromSlotID)
	}
	if trade.OccurredAt.IsZero() {
		t.Fatal("expected fallback timestamp layout to parse")
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Token:      "secret",
		MaxRetries: 2,
		Logger:     logging.NewNop(),
	})

	rows, err := client.FetchTransactions(t.Context(), 2025)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty result, got %d", len(rows))
	}
	if calls.Load() != 2 {
		t.Fatalf("expected one retry, got %d calls", calls.Load())
	}
}

func TestClient_NonRetryableStatusFailsFast(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "bad token"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Token:      "secret",
		MaxRetries: 3,
		Logger:     logging.NewNop(),
	})

	_, err := client.FetchTransactions(t.Context(), 2025)
	if err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected no retries on 401, got %d calls", calls.Load())
	}
}

func TestSanitizeSensitiveText(t *testing.T) {
	out := sanitizeSensitiveText(`dial failed for https://host/transactions?season=2025&token=secret-value`, "secret-value")
	if strings.Contains(out, "secret-value") {
		t.Fatalf("token leaked: %s", out)
	}
}
