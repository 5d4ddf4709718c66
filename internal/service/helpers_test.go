package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"connectrpc.com/connect"
	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/metrics"
	"github.com/mmynk/tabsplit/internal/middleware"
	"github.com/mmynk/tabsplit/internal/notify"
	"github.com/mmynk/tabsplit/internal/storage/sqlite"
	"github.com/mmynk/tabsplit/pkg/api"
)

// Test callers pick their identity with these headers.
const (
	testParticipantHeader = "X-Test-Participant"
	testTabHeader         = "X-Test-Tab"
)

// testAuthInterceptor returns a Connect interceptor that puts the caller named in
// the test headers into the context.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			participantID := req.Header().Get(testParticipantHeader)
			tabID := req.Header().Get(testTabHeader)
			if participantID != "" || tabID != "" {
				ctx = middleware.WithCaller(ctx, tabID, participantID)
			}
			return next(ctx, req)
		}
	}
}

// recordingPublisher keeps every snapshot it is handed.
type recordingPublisher struct {
	mu       sync.Mutex
	messages []*notify.BalanceSnapshotMessage
}

func (p *recordingPublisher) PublishBalances(_ context.Context, msg *notify.BalanceSnapshotMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) last() *notify.BalanceSnapshotMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.messages) == 0 {
		return nil
	}
	return p.messages[len(p.messages)-1]
}

type testEnv struct {
	tabs      api.TabServiceClient
	expenses  api.ExpenseServiceClient
	publisher *recordingPublisher
	metrics   *metrics.Metrics
}

// setupTestServer creates a test server backed by a temporary SQLite database.
func setupTestServer(t *testing.T, policy calculator.RemainderPolicy) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	publisher := &recordingPublisher{}
	m := metrics.New()
	ledger := NewLedger(store, publisher, m, 2)

	interceptors := connect.WithInterceptors(testAuthInterceptor())
	tabPath, tabHandler := api.NewTabServiceHandler(NewTabService(store, ledger), interceptors)
	expensePath, expenseHandler := api.NewExpenseServiceHandler(NewExpenseService(store, ledger, m, policy), interceptors)

	mux := http.NewServeMux()
	mux.Handle(tabPath, tabHandler)
	mux.Handle(expensePath, expenseHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{
		tabs:      api.NewTabServiceClient(http.DefaultClient, server.URL),
		expenses:  api.NewExpenseServiceClient(http.DefaultClient, server.URL),
		publisher: publisher,
		metrics:   m,
	}
}

// createTab creates a tab and returns it with participant ids keyed by name.
func (e *testEnv) createTab(t *testing.T, name string, participants ...string) (*api.Tab, map[string]string) {
	t.Helper()

	resp, err := e.tabs.CreateTab(context.Background(), connect.NewRequest(&api.CreateTabRequest{
		Name:             name,
		ParticipantNames: participants,
	}))
	if err != nil {
		t.Fatalf("CreateTab failed: %v", err)
	}

	ids := make(map[string]string, len(resp.Msg.Tab.Participants))
	for _, p := range resp.Msg.Tab.Participants {
		ids[p.DisplayName] = p.ID
	}
	return resp.Msg.Tab, ids
}

// scoped returns a request carrying a tab-scoped caller identity.
func scoped[T any](msg *T, tabID, participantID string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set(testTabHeader, tabID)
	req.Header().Set(testParticipantHeader, participantID)
	return req
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("code: expected %v, got %v (%v)", want, got, err)
	}
}
