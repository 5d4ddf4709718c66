package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/middleware"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/money"
	"github.com/mmynk/tabsplit/internal/storage"
	"github.com/mmynk/tabsplit/pkg/api"
)

// TabService implements the Connect TabService
type TabService struct {
	api.UnimplementedTabServiceHandler
	store  storage.Store
	ledger *Ledger
}

// NewTabService creates a new TabService with the given storage backend.
func NewTabService(store storage.Store, ledger *Ledger) *TabService {
	return &TabService{store: store, ledger: ledger}
}

// authorizeTab rejects callers whose token is scoped to another tab.
func authorizeTab(ctx context.Context, tabID string) error {
	if scoped := middleware.GetTabID(ctx); scoped != "" && scoped != tabID {
		return fmt.Errorf("%w: %s", ErrForbidden, tabID)
	}
	return nil
}

// getTab loads a tab the caller may see.
func getTab(ctx context.Context, store storage.Store, tabID string) (*models.Tab, error) {
	if tabID == "" {
		return nil, fmt.Errorf("%w: tab_id required", ErrInvalidRequest)
	}
	if err := authorizeTab(ctx, tabID); err != nil {
		return nil, err
	}
	return store.GetTab(ctx, tabID)
}

// CreateTab creates a new tab with its initial participants.
func (s *TabService) CreateTab(ctx context.Context, req *connect.Request[api.CreateTabRequest]) (*connect.Response[api.CreateTabResponse], error) {
	slog.Info("CreateTab request received",
		"name", req.Msg.Name,
		"participants_count", len(req.Msg.ParticipantNames),
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, rpcError("CreateTab", fmt.Errorf("%w: name required", ErrInvalidRequest))
	}

	tab := &models.Tab{Name: name}
	for _, displayName := range req.Msg.ParticipantNames {
		displayName = strings.TrimSpace(displayName)
		if displayName == "" {
			return nil, rpcError("CreateTab", fmt.Errorf("%w: participant name required", ErrInvalidRequest))
		}
		tab.Participants = append(tab.Participants, models.Participant{DisplayName: displayName})
	}

	// Save to storage (generates IDs and CreatedAt)
	if err := s.store.CreateTab(ctx, tab); err != nil {
		return nil, rpcError("CreateTab", err)
	}

	slog.Info("Tab created", "tab_id", tab.ID)

	return connect.NewResponse(&api.CreateTabResponse{Tab: tabToAPI(tab)}), nil
}

// GetTab retrieves a tab by ID.
func (s *TabService) GetTab(ctx context.Context, req *connect.Request[api.GetTabRequest]) (*connect.Response[api.GetTabResponse], error) {
	slog.Info("GetTab request received", "tab_id", req.Msg.TabID)

	tab, err := getTab(ctx, s.store, req.Msg.TabID)
	if err != nil {
		return nil, rpcError("GetTab", err, "tab_id", req.Msg.TabID)
	}

	return connect.NewResponse(&api.GetTabResponse{Tab: tabToAPI(tab)}), nil
}

// ListTabs lists tabs, newest first. Callers scoped to a tab only see that tab.
func (s *TabService) ListTabs(ctx context.Context, req *connect.Request[api.ListTabsRequest]) (*connect.Response[api.ListTabsResponse], error) {
	slog.Info("ListTabs request received")

	tabs, err := s.store.ListTabs(ctx)
	if err != nil {
		return nil, rpcError("ListTabs", err)
	}

	scoped := middleware.GetTabID(ctx)
	out := make([]*api.Tab, 0, len(tabs))
	for _, tab := range tabs {
		if scoped != "" && tab.ID != scoped {
			continue
		}
		out = append(out, tabToAPI(tab))
	}

	slog.Info("ListTabs successful", "count", len(out))

	return connect.NewResponse(&api.ListTabsResponse{Tabs: out}), nil
}

// AddParticipant adds a participant to a tab.
func (s *TabService) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	slog.Info("AddParticipant request received", "tab_id", req.Msg.TabID, "display_name", req.Msg.DisplayName)

	if err := authorizeTab(ctx, req.Msg.TabID); err != nil {
		return nil, rpcError("AddParticipant", err, "tab_id", req.Msg.TabID)
	}
	name := strings.TrimSpace(req.Msg.DisplayName)
	if name == "" {
		return nil, rpcError("AddParticipant", fmt.Errorf("%w: display_name required", ErrInvalidRequest))
	}

	participant := &models.Participant{TabID: req.Msg.TabID, DisplayName: name}
	if err := s.store.AddParticipant(ctx, participant); err != nil {
		return nil, rpcError("AddParticipant", err, "tab_id", req.Msg.TabID)
	}

	slog.Info("Participant added", "tab_id", req.Msg.TabID, "participant_id", participant.ID)

	return connect.NewResponse(&api.AddParticipantResponse{Participant: participantToAPI(participant)}), nil
}

// DeleteTab removes a tab and everything recorded on it.
func (s *TabService) DeleteTab(ctx context.Context, req *connect.Request[api.DeleteTabRequest]) (*connect.Response[api.DeleteTabResponse], error) {
	slog.Info("DeleteTab request received", "tab_id", req.Msg.TabID)

	if err := authorizeTab(ctx, req.Msg.TabID); err != nil {
		return nil, rpcError("DeleteTab", err, "tab_id", req.Msg.TabID)
	}
	if err := s.store.DeleteTab(ctx, req.Msg.TabID); err != nil {
		return nil, rpcError("DeleteTab", err, "tab_id", req.Msg.TabID)
	}

	slog.Info("Tab deleted", "tab_id", req.Msg.TabID)
	s.ledger.PublishClosed(ctx, req.Msg.TabID)

	return connect.NewResponse(&api.DeleteTabResponse{}), nil
}

// GetTabBalances computes who owes whom on a tab.
func (s *TabService) GetTabBalances(ctx context.Context, req *connect.Request[api.GetTabBalancesRequest]) (*connect.Response[api.GetTabBalancesResponse], error) {
	slog.Info("GetTabBalances request received", "tab_id", req.Msg.TabID)

	tab, err := getTab(ctx, s.store, req.Msg.TabID)
	if err != nil {
		return nil, rpcError("GetTabBalances", err, "tab_id", req.Msg.TabID)
	}

	balances, err := s.ledger.Balances(ctx, tab)
	if err != nil {
		return nil, rpcError("GetTabBalances", err, "tab_id", tab.ID)
	}

	names := make(map[string]string, len(tab.Participants))
	for _, p := range tab.Participants {
		names[p.ID] = p.DisplayName
	}

	slog.Debug("Balances calculated", "tab_id", tab.ID, "participants", len(balances))

	return connect.NewResponse(&api.GetTabBalancesResponse{
		TabID:       tab.ID,
		Balances:    balancesToAPI(balances, names),
		Outstanding: balancesToAPI(calculator.Outstanding(balances), names),
		Transfers:   transfersToAPI(calculator.SuggestTransfers(balances)),
	}), nil
}

// RecordSettlement records a repayment between two participants of a tab.
func (s *TabService) RecordSettlement(ctx context.Context, req *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error) {
	slog.Info("RecordSettlement request received",
		"tab_id", req.Msg.TabID,
		"from_id", req.Msg.FromID,
		"to_id", req.Msg.ToID,
		"amount", req.Msg.Amount,
	)

	tab, err := getTab(ctx, s.store, req.Msg.TabID)
	if err != nil {
		return nil, rpcError("RecordSettlement", err, "tab_id", req.Msg.TabID)
	}

	amount, err := parseRequired("amount", req.Msg.Amount)
	if err != nil {
		return nil, rpcError("RecordSettlement", err)
	}
	if req.Msg.FromID == req.Msg.ToID {
		return nil, rpcError("RecordSettlement", fmt.Errorf("%w: cannot settle with yourself", ErrInvalidRequest))
	}
	for _, id := range []string{req.Msg.FromID, req.Msg.ToID} {
		if !tab.HasParticipant(id) {
			return nil, rpcError("RecordSettlement", fmt.Errorf("%w: %q", ErrNotInTab, id))
		}
	}

	settlement := &models.Settlement{
		TabID:       tab.ID,
		FromID:      req.Msg.FromID,
		ToID:        req.Msg.ToID,
		AmountCents: amount,
		Note:        strings.TrimSpace(req.Msg.Note),
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, rpcError("RecordSettlement", err, "tab_id", tab.ID)
	}

	slog.Info("Settlement recorded",
		"tab_id", tab.ID,
		"settlement_id", settlement.ID,
		"amount", money.FormatCents(amount),
	)
	s.ledger.Publish(ctx, tab.ID)

	return connect.NewResponse(&api.RecordSettlementResponse{Settlement: settlementToAPI(settlement)}), nil
}
