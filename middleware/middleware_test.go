// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/danielhkuo/quickly-vote/models"
)

const testProposalKey = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"

func TestWithLogging_PassesThrough(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		status int
		body   string
	}{
		{"voting page", "GET", "/voting", http.StatusOK, "<main>"},
		{"vote redirect", "POST", "/voting/proposals/" + testProposalKey + "/vote", http.StatusSeeOther, ""},
		{"api create", "POST", "/api/proposals", http.StatusCreated, `{"signature":"5sig"}`},
		{"api conflict", "POST", "/api/proposals/" + testProposalKey + "/votes", http.StatusConflict, `{"error":"Conflict"}`},
		{"program error", "GET", "/api/proposals", http.StatusBadGateway, `{"error":"Bad Gateway"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			w := httptest.NewRecorder()
			handler(w, httptest.NewRequest(tt.method, tt.path, nil))

			if !called {
				t.Fatal("Expected wrapped handler to run")
			}
			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
			if w.Body.String() != tt.body {
				t.Errorf("Expected body %q, got %q", tt.body, w.Body.String())
			}
		})
	}
}

func TestJSONResponse(t *testing.T) {
	tests := []struct {
		name   string
		status int
		data   interface{}
		want   string
	}{
		{
			name:   "program status",
			status: http.StatusOK,
			data:   models.ProgramStatusResponse{ProgramID: testProposalKey, Cluster: "devnet", Exists: true},
			want:   `{"program_id":"` + testProposalKey + `","cluster":"devnet","exists":true}`,
		},
		{
			name:   "transaction",
			status: http.StatusCreated,
			data:   models.VoteResponse{Signature: "5sig", ExplorerURL: "https://explorer.solana.com/tx/5sig?cluster=devnet"},
			want:   `{"signature":"5sig","explorer_url":"https://explorer.solana.com/tx/5sig?cluster=devnet"}`,
		},
		{
			name:   "empty proposal list",
			status: http.StatusOK,
			data:   models.ProposalsResponse{ProgramAccount: false, Proposals: []models.Proposal{}},
			want:   `{"program_account":false,"proposals":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSONResponse(w, tt.status, tt.data)

			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected JSON content type, got %q", ct)
			}
			if got := strings.TrimSpace(w.Body.String()); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		status  int
		message string
	}{
		{http.StatusUnauthorized, "Wallet not connected"},
		{http.StatusNotFound, "Proposal not found"},
		{http.StatusConflict, "Wallet already voted on this proposal"},
		{http.StatusServiceUnavailable, "Proposals are still loading"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			w := httptest.NewRecorder()
			ErrorResponse(w, tt.status, tt.message)

			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error != http.StatusText(tt.status) || resp.Message != tt.message {
				t.Errorf("Unexpected error body: %+v", resp)
			}
		})
	}
}

func TestParseJSONBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		want    models.VoteRequest
	}{
		{"vote for", `{"vote_for":true}`, false, models.VoteRequest{VoteFor: true}},
		{"vote against", `{"vote_for":false}`, false, models.VoteRequest{}},
		{"unknown fields ignored", `{"vote_for":true,"nft_mint":"x"}`, false, models.VoteRequest{VoteFor: true}},
		{"wrong type", `{"vote_for":"yes"}`, true, models.VoteRequest{}},
		{"malformed", `{vote_for}`, true, models.VoteRequest{}},
		{"empty", ``, true, models.VoteRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/proposals/"+testProposalKey+"/votes", strings.NewReader(tt.body))

			var got models.VoteRequest
			err := ParseJSONBody(req, &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseJSONBody() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseJSONBody() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	cors := CORS([]string{"https://dao.example", "http://localhost:5173"})
	handler := cors(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "proposals")
	})

	tests := []struct {
		name        string
		method      string
		origin      string
		wantStatus  int
		wantBody    string
		wantAllowed string
	}{
		{"allowed preflight", "OPTIONS", "http://localhost:5173", http.StatusNoContent, "", "http://localhost:5173"},
		{"unknown preflight", "OPTIONS", "https://evil.example", http.StatusForbidden, "", ""},
		{"allowed read", "GET", "https://dao.example", http.StatusOK, "proposals", "https://dao.example"},
		{"unknown read", "GET", "https://evil.example", http.StatusOK, "proposals", ""},
		{"same origin", "POST", "", http.StatusOK, "proposals", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/proposals", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			handler(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if w.Body.String() != tt.wantBody {
				t.Errorf("Expected body %q, got %q", tt.wantBody, w.Body.String())
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllowed {
				t.Errorf("Expected Allow-Origin %q, got %q", tt.wantAllowed, got)
			}
			if tt.wantAllowed != "" {
				if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
					t.Error("Expected credentials for an allowed origin")
				}
				if !strings.Contains(w.Header().Get("Access-Control-Allow-Headers"), "X-Wallet-Session") {
					t.Error("Expected X-Wallet-Session in allowed headers")
				}
			}
			if w.Header().Get("Vary") != "Origin" {
				t.Error("Expected Vary: Origin")
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		realIP     string
		remoteAddr string
		want       string
	}{
		{"proxy chain uses first hop", "198.51.100.7, 10.0.0.2", "", "10.0.0.2:443", "198.51.100.7"},
		{"forwarded wins over real ip", "198.51.100.7", "203.0.113.9", "10.0.0.2:443", "198.51.100.7"},
		{"real ip from nginx", "", "203.0.113.9", "10.0.0.2:443", "203.0.113.9"},
		{"direct connection", "", "", "192.0.2.44:51234", "192.0.2.44"},
		{"ipv6 direct connection", "", "", "[2001:db8::5]:8080", "[2001:db8::5]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/voting/proposals", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}

			if got := GetClientIP(req); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWithLogging_RequestID(t *testing.T) {
	var seen string
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/voting", nil))

	if seen == "" {
		t.Fatal("Expected a request id in the handler context")
	}
	if w.Header().Get(RequestIDHeader) != seen {
		t.Errorf("Expected %s header %q, got %q", RequestIDHeader, seen, w.Header().Get(RequestIDHeader))
	}

	// An incoming id is kept
	req := httptest.NewRequest("GET", "/voting", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	w = httptest.NewRecorder()
	handler(w, req)

	if seen != "upstream-id" {
		t.Errorf("Expected upstream request id, got %q", seen)
	}
}

func TestRequestID_Missing(t *testing.T) {
	if id := RequestID(httptest.NewRequest("GET", "/", nil).Context()); id != "" {
		t.Errorf("Expected empty request id, got %q", id)
	}
}

func TestWithMetrics(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /metrics-test/{key}", WithMetrics(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	counter := requestsTotal.WithLabelValues("GET", "GET /metrics-test/{key}", "418")
	before := testutil.ToFloat64(counter)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/metrics-test/abc", nil))
		if w.Code != http.StatusTeapot {
			t.Fatalf("Expected status 418, got %d", w.Code)
		}
	}

	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("Expected 3 counted requests, got %v", got)
	}
}

func TestWithMetrics_DefaultStatus(t *testing.T) {
	handler := WithMetrics(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	counter := requestsTotal.WithLabelValues("GET", "unmatched", "200")
	before := testutil.ToFloat64(counter)

	handler(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("Expected 1 counted request, got %v", got)
	}
}

func TestNoCache(t *testing.T) {
	handler := NoCache(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/voting", nil))

	if !strings.Contains(w.Header().Get("Cache-Control"), "no-store") {
		t.Errorf("Expected no-store Cache-Control, got %q", w.Header().Get("Cache-Control"))
	}
	if w.Header().Get("Pragma") != "no-cache" {
		t.Error("Expected Pragma no-cache")
	}
}
