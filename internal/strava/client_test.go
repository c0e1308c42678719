package strava

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestClient_AuthorizationURL(t *testing.T) {
	client := NewClient("123", "secret", "http://localhost:3000/api/strava/callback")

	raw := client.AuthorizationURL("state-token")
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}

	q := parsed.Query()
	if q.Get("client_id") != "123" {
		t.Errorf("expected client_id 123, got %s", q.Get("client_id"))
	}
	if q.Get("response_type") != "code" {
		t.Errorf("expected response_type code, got %s", q.Get("response_type"))
	}
	if q.Get("scope") != "activity:read_all" {
		t.Errorf("expected read-all scope, got %s", q.Get("scope"))
	}
	if q.Get("state") != "state-token" {
		t.Errorf("expected state token, got %s", q.Get("state"))
	}
}

func TestClient_Configured(t *testing.T) {
	if NewClient("", "", "").Configured() {
		t.Error("expected unconfigured client")
	}
	if !NewClient("123", "secret", "").Configured() {
		t.Error("expected configured client")
	}
}

func TestClient_ExchangeCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.Form.Get("grant_type") != "authorization_code" {
			t.Errorf("expected authorization_code grant, got %s", r.Form.Get("grant_type"))
		}
		if r.Form.Get("code") != "auth-code" {
			t.Errorf("expected code auth-code, got %s", r.Form.Get("code"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"access","refresh_token":"refresh","expires_at":1700000000}`))
	}))
	defer server.Close()

	client := NewClient("123", "secret", "")
	client.TokenURL = server.URL

	token, err := client.ExchangeCode("auth-code")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if token.AccessToken != "access" || token.RefreshToken != "refresh" {
		t.Errorf("unexpected token %+v", token)
	}
	if token.ExpiresAt != 1700000000 {
		t.Errorf("expected expires_at 1700000000, got %d", token.ExpiresAt)
	}
}

func TestClient_ListActivities(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/athlete/activities" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer access" {
			t.Errorf("unexpected auth header %s", r.Header.Get("Authorization"))
		}
		if r.URL.Query().Get("per_page") != "200" {
			t.Errorf("expected per_page 200, got %s", r.URL.Query().Get("per_page"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":101,"name":"Morning Ride","distance":32000,"moving_time":5400,"elapsed_time":5600,"start_date":"2024-05-20T14:00:00Z","type":"Ride"}]`))
	}))
	defer server.Close()

	client := NewClient("123", "secret", "")
	client.APIBaseURL = server.URL

	activities, err := client.ListActivities("access", 200)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(activities) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(activities))
	}
	if activities[0].ID != 101 || activities[0].Type != "Ride" {
		t.Errorf("unexpected activity %+v", activities[0])
	}
}

func TestClient_ListActivities_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Authorization Error"}`))
	}))
	defer server.Close()

	client := NewClient("123", "secret", "")
	client.APIBaseURL = server.URL

	_, err := client.ListActivities("stale", 200)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", apiErr.StatusCode)
	}
}
