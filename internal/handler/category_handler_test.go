package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gearlog-server/internal/domain"

	"github.com/gorilla/mux"
)

func TestCategoryHandler_Replace(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/categories/replace",
		strings.NewReader(`{"category":"Chain","date":"2024-05-20"}`))
	rr := httptest.NewRecorder()
	env.categories.Replace(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp domain.RecordReplacementResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.ReplacementDate != "2024-05-20" || resp.ToppedOff {
		t.Errorf("unexpected response %+v", resp)
	}

	latest, err := env.replacements.Latest(domain.CategoryChain)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if latest == nil || latest.ReplacementDate != "2024-05-20" {
		t.Errorf("expected ledger row for 2024-05-20, got %+v", latest)
	}
}

func TestCategoryHandler_Replace_InvalidCategory(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/categories/replace",
		strings.NewReader(`{"category":"Saddle"}`))
	rr := httptest.NewRecorder()
	env.categories.Replace(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "Invalid category" {
		t.Errorf("expected Invalid category, got %q", resp.Error)
	}
}

func TestCategoryHandler_Replace_BadPayload(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"category":`},
		{"missing category", `{"date":"2024-05-20"}`},
		{"bad date format", `{"category":"Chain","date":"05/20/2024"}`},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/api/categories/replace",
			strings.NewReader(tt.body))
		rr := httptest.NewRecorder()
		env.categories.Replace(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tt.name, rr.Code)
		}
	}

	if latest, _ := env.replacements.Latest(domain.CategoryChain); latest != nil {
		t.Errorf("expected no ledger writes, got %+v", latest)
	}
}

func TestCategoryHandler_Stats(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/categories/stats", nil)
	rr := httptest.NewRecorder()
	env.categories.Stats(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var stats map[string]*domain.CategoryStats
	if err := json.Unmarshal(rr.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(stats) != len(domain.Categories) {
		t.Fatalf("expected %d categories, got %d", len(domain.Categories), len(stats))
	}
	if stats[domain.CategoryChain].Time != "0:00" {
		t.Errorf("expected 0:00 on empty store, got %s", stats[domain.CategoryChain].Time)
	}
}

func TestCategoryHandler_ResetHistory(t *testing.T) {
	env := newTestEnv(t)
	env.replacements.Append(domain.CategoryChain, "2024-05-20")

	r := mux.NewRouter()
	r.HandleFunc("/api/categories/history/{category}", env.categories.ResetHistory).Methods("DELETE")

	req := httptest.NewRequest(http.MethodDelete, "/api/categories/history/Chain", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if latest, _ := env.replacements.Latest(domain.CategoryChain); latest != nil {
		t.Errorf("expected ledger cleared, got %+v", latest)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/categories/history/Saddle", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown category, got %d", rr.Code)
	}
}
