package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/stowage-io/stowage/internal/api"
	"github.com/stowage-io/stowage/internal/storage"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	store := storage.NewMemoryStore()
	handler := api.NewHandler(store, zaptest.NewLogger(t), 1.0)
	return api.NewRouter(handler, zaptest.NewLogger(t))
}

func performRequest(t *testing.T, handler http.Handler, method, target string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestIntegrationFlow(t *testing.T) {
	handler := newRouter(t)
	jsonHeaders := map[string]string{"Content-Type": "application/json"}

	rec := performRequest(t, handler, http.MethodGet, "/api/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from health, got %d", rec.Code)
	}

	rulesPayload := map[string]any{
		"rules": []map[string]any{
			{"classA": "3", "classB": "5.1", "prohibited": true},
		},
	}
	payload, _ := json.Marshal(rulesPayload)
	rec = performRequest(t, handler, http.MethodPut, "/api/segregation-rules", payload, jsonHeaders)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from rules update, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = performRequest(t, handler, http.MethodGet, "/api/segregation-rules", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from rules fetch, got %d", rec.Code)
	}
	var rules struct {
		Rules []struct {
			ClassA     string `json:"classA"`
			ClassB     string `json:"classB"`
			Prohibited bool   `json:"prohibited"`
		} `json:"rules"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&rules); err != nil {
		t.Fatalf("decode rules: %v", err)
	}
	if len(rules.Rules) != 1 || rules.Rules[0].ClassA != "3" || rules.Rules[0].ClassB != "5.1" {
		t.Fatalf("unexpected rules after update: %+v", rules.Rules)
	}

	packPayload := map[string]any{
		"items": []map[string]any{
			{"name": "fuel-drum", "width": 2, "height": 2, "depth": 2, "weight": 50, "hazardClass": "3"},
			{"name": "oxidizer", "width": 2, "height": 2, "depth": 2, "weight": 50, "hazardClass": "5.1"},
			{"name": "crate", "width": 4, "height": 4, "depth": 4, "weight": 80},
		},
		"containers": []map[string]any{
			{
				"id": "mtc-1", "width": 12, "height": 10, "depth": 10, "capacity": 1000,
				"maritime": map[string]any{"tareWeight": 100, "maxGrossWeight": 5000},
			},
		},
	}
	body, _ := json.Marshal(packPayload)
	rec = performRequest(t, handler, http.MethodPost, "/api/pack", body, jsonHeaders)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from pack, got %d: %s", rec.Code, rec.Body.String())
	}

	var response struct {
		RunID   string `json:"runId"`
		Results []struct {
			Item   string `json:"item"`
			Placed bool   `json:"placed"`
			Reason string `json:"reason"`
		} `json:"results"`
		PackedCount int `json:"packedCount"`
		UnfitCount  int `json:"unfitCount"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decode pack response: %v", err)
	}
	if response.RunID == "" {
		t.Fatal("expected a run id")
	}
	if response.PackedCount != 2 || response.UnfitCount != 1 {
		t.Fatalf("expected 2 packed and 1 unfit, got %d/%d", response.PackedCount, response.UnfitCount)
	}

	// The crate sorts first by volume; of the two hazardous items the one
	// that comes later in input order loses the segregation conflict.
	byItem := map[string]struct {
		placed bool
		reason string
	}{}
	for _, res := range response.Results {
		byItem[res.Item] = struct {
			placed bool
			reason string
		}{res.Placed, res.Reason}
	}
	if !byItem["crate"].placed || !byItem["fuel-drum"].placed {
		t.Fatalf("expected crate and fuel-drum placed: %+v", byItem)
	}
	if byItem["oxidizer"].placed {
		t.Fatal("expected oxidizer to be rejected by segregation")
	}
	if byItem["oxidizer"].reason != "hazard_segregation_conflict" {
		t.Fatalf("unexpected rejection reason %q", byItem["oxidizer"].reason)
	}
}
