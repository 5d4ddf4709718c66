package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tabsplit/internal/auth"
	"github.com/mmynk/tabsplit/internal/config"
	"github.com/mmynk/tabsplit/internal/metrics"
	"github.com/mmynk/tabsplit/pkg/api"
)

const testSecret = "0123456789abcdef"

func newTestServer(t *testing.T, secret string) *httptest.Server {
	t.Helper()

	cfg := &config.Config{JWTSecret: secret, TokenTTL: time.Hour}
	server := httptest.NewServer(newRouter(routerDeps{
		cfg:      cfg,
		tabs:     api.UnimplementedTabServiceHandler{},
		expenses: api.UnimplementedExpenseServiceHandler{},
		metrics:  metrics.New(),
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRouter_HTTPRoutes(t *testing.T) {
	server := newTestServer(t, "")

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode int
		wantBody string
	}{
		{"health", http.MethodGet, "/healthz", http.StatusOK, `"status":"ok"`},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK, "go_goroutines"},
		{"preflight", http.MethodOptions, "/tabsplit.v1.TabService/ListTabs", http.StatusOK, ""},
		{"unknown", http.MethodGet, "/nope", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, server.URL+tt.path, nil)
			if err != nil {
				t.Fatalf("failed to build request: %v", err)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantCode {
				t.Errorf("status: expected %d, got %d", tt.wantCode, resp.StatusCode)
			}
			body, _ := io.ReadAll(resp.Body)
			if !strings.Contains(string(body), tt.wantBody) {
				t.Errorf("body: expected to contain %q, got %q", tt.wantBody, body)
			}
			if tt.method == http.MethodOptions && resp.Header.Get("Access-Control-Allow-Origin") != "*" {
				t.Error("expected CORS headers on preflight")
			}
		})
	}
}

func TestRouter_Auth(t *testing.T) {
	server := newTestServer(t, testSecret)
	client := api.NewTabServiceClient(http.DefaultClient, server.URL)

	_, err := client.ListTabs(context.Background(), connect.NewRequest(&api.ListTabsRequest{}))
	if got := connect.CodeOf(err); got != connect.CodeUnauthenticated {
		t.Errorf("without token: expected unauthenticated, got %v", got)
	}

	token, err := auth.NewJWTManager(testSecret, time.Hour).Generate("tab-1", "participant-1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	req := connect.NewRequest(&api.ListTabsRequest{})
	req.Header().Set("Authorization", "Bearer "+token)

	// Authenticated calls reach the handler.
	_, err = client.ListTabs(context.Background(), req)
	if got := connect.CodeOf(err); got != connect.CodeUnimplemented {
		t.Errorf("with token: expected unimplemented, got %v", got)
	}
}

func TestRouter_NoAuth(t *testing.T) {
	server := newTestServer(t, "")
	client := api.NewExpenseServiceClient(http.DefaultClient, server.URL)

	_, err := client.PreviewSplit(context.Background(), connect.NewRequest(&api.PreviewSplitRequest{}))
	if got := connect.CodeOf(err); got != connect.CodeUnimplemented {
		t.Errorf("expected unimplemented, got %v", got)
	}
}
