package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
)

type echoExpenseService struct {
	UnimplementedExpenseServiceHandler
}

func (echoExpenseService) PreviewSplit(_ context.Context, req *connect.Request[PreviewSplitRequest]) (*connect.Response[PreviewSplitResponse], error) {
	return connect.NewResponse(&PreviewSplitResponse{
		Mode:       req.Msg.Mode,
		TotalCents: int64(len(req.Msg.ParticipantIDs)),
	}), nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	path, handler := NewExpenseServiceHandler(echoExpenseService{})
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestHandler_PlainJSON(t *testing.T) {
	server := newTestServer(t)

	body := `{"mode":"split","total":"10","participantIds":["a","b"]}`
	resp, err := http.Post(server.URL+ExpenseServicePreviewSplitProcedure, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("status: expected 200, got %d: %s", resp.StatusCode, raw)
	}

	var got map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got["mode"] != "split" || got["totalCents"] != float64(2) {
		t.Errorf("unexpected response: %v", got)
	}
}

func TestHandler_Routing(t *testing.T) {
	server := newTestServer(t)
	client := NewExpenseServiceClient(http.DefaultClient, server.URL+"/")

	resp, err := client.PreviewSplit(context.Background(), connect.NewRequest(&PreviewSplitRequest{
		SplitInput: SplitInput{Mode: "claim", ParticipantIDs: []string{"a", "b", "c"}},
	}))
	if err != nil {
		t.Fatalf("PreviewSplit failed: %v", err)
	}
	if resp.Msg.Mode != "claim" || resp.Msg.TotalCents != 3 {
		t.Errorf("unexpected response: %+v", resp.Msg)
	}

	_, err = client.GetExpense(context.Background(), connect.NewRequest(&GetExpenseRequest{ExpenseID: "x"}))
	if got := connect.CodeOf(err); got != connect.CodeUnimplemented {
		t.Errorf("GetExpense: expected unimplemented, got %v", got)
	}

	notFound, err := http.Post(server.URL+"/tabsplit.v1.ExpenseService/Nope", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	notFound.Body.Close()
	if notFound.StatusCode != http.StatusNotFound {
		t.Errorf("unknown procedure: expected 404, got %d", notFound.StatusCode)
	}
}

func TestCodec(t *testing.T) {
	var c Codec
	if c.Name() != "json" {
		t.Errorf("name: expected json, got %s", c.Name())
	}

	var msg ListTabsRequest
	if err := c.Unmarshal(nil, &msg); err != nil {
		t.Errorf("empty body: unexpected error %v", err)
	}

	var tab GetTabRequest
	if err := c.Unmarshal([]byte(`{"tabId":"t1"}`), &tab); err != nil || tab.TabID != "t1" {
		t.Errorf("expected tabId t1, got %+v (%v)", tab, err)
	}
}
