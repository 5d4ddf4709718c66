package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/pkg/api"
)

func TestCreateTab(t *testing.T) {
	env := setupTestServer(t, calculator.RemainderToClaimants)

	resp, err := env.tabs.CreateTab(context.Background(), connect.NewRequest(&api.CreateTabRequest{
		Name:             "  Roommates ",
		ParticipantNames: []string{"Alice", "Bob", "Charlie"},
	}))
	if err != nil {
		t.Fatalf("CreateTab failed: %v", err)
	}

	tab := resp.Msg.Tab
	if tab.ID == "" {
		t.Error("expected non-empty tab ID")
	}
	if tab.Name != "Roommates" {
		t.Errorf("name: expected 'Roommates', got '%s'", tab.Name)
	}
	if len(tab.Participants) != 3 {
		t.Fatalf("participants: expected 3, got %d", len(tab.Participants))
	}
	for _, p := range tab.Participants {
		if p.ID == "" || p.TabID != tab.ID {
			t.Errorf("participant not attached to tab: %+v", p)
		}
	}
	if tab.CreatedAt == 0 {
		t.Error("expected non-zero CreatedAt")
	}
}

func TestCreateTab_Rejected(t *testing.T) {
	env := setupTestServer(t, calculator.RemainderToClaimants)

	tests := []struct {
		name string
		req  *api.CreateTabRequest
		want connect.Code
	}{
		{"empty name", &api.CreateTabRequest{Name: "  "}, connect.CodeInvalidArgument},
		{"blank participant", &api.CreateTabRequest{Name: "Trip", ParticipantNames: []string{"Alice", ""}}, connect.CodeInvalidArgument},
		{"duplicate participant", &api.CreateTabRequest{Name: "Trip", ParticipantNames: []string{"Alice", "Alice"}}, connect.CodeAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.tabs.CreateTab(context.Background(), connect.NewRequest(tt.req))
			assertCode(t, err, tt.want)
		})
	}
}

func TestGetTab_NotFound(t *testing.T) {
	env := setupTestServer(t, calculator.RemainderToClaimants)

	_, err := env.tabs.GetTab(context.Background(), connect.NewRequest(&api.GetTabRequest{TabID: "non-existent-id"}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = env.tabs.GetTab(context.Background(), connect.NewRequest(&api.GetTabRequest{}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestScopedCaller(t *testing.T) {
	env := setupTestServer(t, calculator.RemainderToClaimants)
	mine, ids := env.createTab(t, "Mine", "Alice")
	theirs, _ := env.createTab(t, "Theirs", "Bob")

	if _, err := env.tabs.GetTab(context.Background(), scoped(&api.GetTabRequest{TabID: mine.ID}, mine.ID, ids["Alice"])); err != nil {
		t.Fatalf("GetTab on own tab failed: %v", err)
	}

	_, err := env.tabs.GetTab(context.Background(), scoped(&api.GetTabRequest{TabID: theirs.ID}, mine.ID, ids["Alice"]))
	assertCode(t, err, connect.CodePermissionDenied)

	_, err = env.tabs.DeleteTab(context.Background(), scoped(&api.DeleteTabRequest{TabID: theirs.ID}, mine.ID, ids["Alice"]))
	assertCode(t, err, connect.CodePermissionDenied)

	listResp, err := env.tabs.ListTabs(context.Background(), scoped(&api.ListTabsRequest{}, mine.ID, ids["Alice"]))
	if err != nil {
		t.Fatalf("ListTabs failed: %v", err)
	}
	if len(listResp.Msg.Tabs) != 1 || listResp.Msg.Tabs[0].ID != mine.ID {
		t.Errorf("scoped ListTabs: expected only %s, got %+v", mine.ID, listResp.Msg.Tabs)
	}

	listResp, err = env.tabs.ListTabs(context.Background(), connect.NewRequest(&api.ListTabsRequest{}))
	if err != nil {
		t.Fatalf("ListTabs failed: %v", err)
	}
	if len(listResp.Msg.Tabs) != 2 {
		t.Errorf("ListTabs: expected 2 tabs, got %d", len(listResp.Msg.Tabs))
	}
}

func TestAddParticipant(t *testing.T) {
	env := setupTestServer(t, calculator.RemainderToClaimants)
	tab, _ := env.createTab(t, "Ski trip", "Alice")

	resp, err := env.tabs.AddParticipant(context.Background(), connect.NewRequest(&api.AddParticipantRequest{
		TabID:       tab.ID,
		DisplayName: "Bob",
	}))
	if err != nil {
		t.Fatalf("AddParticipant failed: %v", err)
	}
	if resp.Msg.Participant.ID == "" || resp.Msg.Participant.DisplayName != "Bob" {
		t.Errorf("unexpected participant: %+v", resp.Msg.Participant)
	}

	getResp, err := env.tabs.GetTab(context.Background(), connect.NewRequest(&api.GetTabRequest{TabID: tab.ID}))
	if err != nil {
		t.Fatalf("GetTab failed: %v", err)
	}
	if len(getResp.Msg.Tab.Participants) != 2 {
		t.Errorf("participants: expected 2, got %d", len(getResp.Msg.Tab.Participants))
	}

	_, err = env.tabs.AddParticipant(context.Background(), connect.NewRequest(&api.AddParticipantRequest{TabID: tab.ID, DisplayName: "Bob"}))
	assertCode(t, err, connect.CodeAlreadyExists)

	_, err = env.tabs.AddParticipant(context.Background(), connect.NewRequest(&api.AddParticipantRequest{TabID: "missing", DisplayName: "Eve"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestBalancesAndSettlement(t *testing.T) {
	env := setupTestServer(t, calculator.RemainderToClaimants)
	tab, ids := env.createTab(t, "Friday dinner", "Alice", "Bob", "Carol")
	alice, bob, carol := ids["Alice"], ids["Bob"], ids["Carol"]

	_, err := env.expenses.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		TabID:   tab.ID,
		PayerID: alice,
		SplitInput: api.SplitInput{
			Mode: "claim",
			Tax:  "4.00",
			Tip:  "6.00",
			Items: []*api.ItemInput{
				{Description: "Pizza", Amount: "30.00", Claimants: []string{alice, bob}},
				{Description: "Salad", Amount: "10.00", Claimants: []string{carol}},
			},
		},
	}))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	balances := func() *api.GetTabBalancesResponse {
		t.Helper()
		resp, err := env.tabs.GetTabBalances(context.Background(), connect.NewRequest(&api.GetTabBalancesRequest{TabID: tab.ID}))
		if err != nil {
			t.Fatalf("GetTabBalances failed: %v", err)
		}
		return resp.Msg
	}

	got := balances()
	wantNet := map[string]int64{alice: 3125, bob: -1875, carol: -1250}
	for _, b := range got.Balances {
		if b.NetCents != wantNet[b.ParticipantID] {
			t.Errorf("%s net: expected %d, got %d", b.DisplayName, wantNet[b.ParticipantID], b.NetCents)
		}
	}
	if len(got.Transfers) != 2 {
		t.Fatalf("transfers: expected 2, got %d", len(got.Transfers))
	}
	if tr := got.Transfers[0]; tr.FromID != bob || tr.ToID != alice || tr.AmountCents != 1875 {
		t.Errorf("first transfer: expected bob->alice 1875, got %+v", tr)
	}

	settleResp, err := env.tabs.RecordSettlement(context.Background(), connect.NewRequest(&api.RecordSettlementRequest{
		TabID:  tab.ID,
		FromID: bob,
		ToID:   alice,
		Amount: "18.75",
		Note:   "venmo",
	}))
	if err != nil {
		t.Fatalf("RecordSettlement failed: %v", err)
	}
	if settleResp.Msg.Settlement.AmountCents != 1875 {
		t.Errorf("settlement amount: expected 1875, got %d", settleResp.Msg.Settlement.AmountCents)
	}

	got = balances()
	if len(got.Outstanding) != 2 {
		t.Errorf("outstanding: expected 2 after bob settles, got %d", len(got.Outstanding))
	}
	for _, b := range got.Balances {
		if b.ParticipantID == bob && b.Status != string(calculator.StatusSettled) {
			t.Errorf("bob: expected settled, got %s", b.Status)
		}
	}

	snapshot := env.publisher.last()
	if snapshot == nil || len(snapshot.Balances) != 2 {
		t.Errorf("expected snapshot with 2 outstanding, got %+v", snapshot)
	}
}

func TestRecordSettlement_Rejected(t *testing.T) {
	env := setupTestServer(t, calculator.RemainderToClaimants)
	tab, ids := env.createTab(t, "Trip", "Alice", "Bob")

	tests := []struct {
		name string
		req  *api.RecordSettlementRequest
		want connect.Code
	}{
		{"self settlement", &api.RecordSettlementRequest{TabID: tab.ID, FromID: ids["Alice"], ToID: ids["Alice"], Amount: "5"}, connect.CodeInvalidArgument},
		{"zero amount", &api.RecordSettlementRequest{TabID: tab.ID, FromID: ids["Alice"], ToID: ids["Bob"], Amount: "0"}, connect.CodeInvalidArgument},
		{"stranger", &api.RecordSettlementRequest{TabID: tab.ID, FromID: "mallory", ToID: ids["Bob"], Amount: "5"}, connect.CodeInvalidArgument},
		{"missing tab", &api.RecordSettlementRequest{TabID: "missing", FromID: ids["Alice"], ToID: ids["Bob"], Amount: "5"}, connect.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.tabs.RecordSettlement(context.Background(), connect.NewRequest(tt.req))
			assertCode(t, err, tt.want)
		})
	}
}

func TestDeleteTab(t *testing.T) {
	env := setupTestServer(t, calculator.RemainderToClaimants)
	tab, ids := env.createTab(t, "Old", "Alice", "Bob")

	if _, err := env.expenses.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		TabID:      tab.ID,
		PayerID:    ids["Alice"],
		SplitInput: api.SplitInput{Mode: "split", Total: "8"},
	})); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	if _, err := env.tabs.DeleteTab(context.Background(), connect.NewRequest(&api.DeleteTabRequest{TabID: tab.ID})); err != nil {
		t.Fatalf("DeleteTab failed: %v", err)
	}

	_, err := env.tabs.GetTab(context.Background(), connect.NewRequest(&api.GetTabRequest{TabID: tab.ID}))
	assertCode(t, err, connect.CodeNotFound)

	snapshot := env.publisher.last()
	if snapshot == nil || snapshot.TabID != tab.ID || len(snapshot.Balances) != 0 {
		t.Errorf("expected closing snapshot for %s, got %+v", tab.ID, snapshot)
	}

	_, err = env.tabs.DeleteTab(context.Background(), connect.NewRequest(&api.DeleteTabRequest{TabID: tab.ID}))
	assertCode(t, err, connect.CodeNotFound)
}
