package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/metrics"
	"github.com/mmynk/tabsplit/internal/middleware"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/money"
	"github.com/mmynk/tabsplit/internal/storage"
	"github.com/mmynk/tabsplit/pkg/api"
)

// ExpenseService implements the Connect ExpenseService
type ExpenseService struct {
	api.UnimplementedExpenseServiceHandler
	store   storage.Store
	ledger  *Ledger
	metrics *metrics.Metrics
	policy  calculator.RemainderPolicy
}

// NewExpenseService creates a new ExpenseService. policy decides what happens to
// item remainders in claim mode.
func NewExpenseService(store storage.Store, ledger *Ledger, m *metrics.Metrics, policy calculator.RemainderPolicy) *ExpenseService {
	return &ExpenseService{store: store, ledger: ledger, metrics: m, policy: policy}
}

// PreviewSplit computes a split without storing anything. Participant ids are
// free-form here.
func (s *ExpenseService) PreviewSplit(ctx context.Context, req *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	slog.Debug("PreviewSplit request received",
		"mode", req.Msg.Mode,
		"participants", req.Msg.ParticipantIDs,
		"items_count", len(req.Msg.Items),
	)

	split, err := computeSplit(req.Msg.SplitInput, nil, s.policy)
	if err != nil {
		return nil, rpcError("PreviewSplit", err, "mode", req.Msg.Mode)
	}

	return connect.NewResponse(&api.PreviewSplitResponse{
		Mode:            string(split.Mode),
		SubtotalCents:   split.SubtotalCents,
		TaxCents:        split.TaxCents,
		FeeCents:        split.FeeCents,
		TipCents:        split.TipCents,
		TotalCents:      split.TotalCents,
		Total:           money.FormatCents(split.TotalCents),
		Splits:          personSplitsToAPI(split.Breakdown),
		UnassignedCents: split.UnassignedCents,
	}), nil
}

// CreateExpense computes and stores an expense on a tab.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	slog.Info("CreateExpense request received",
		"tab_id", req.Msg.TabID,
		"payer_id", req.Msg.PayerID,
		"mode", req.Msg.Mode,
	)

	tab, err := getTab(ctx, s.store, req.Msg.TabID)
	if err != nil {
		return nil, rpcError("CreateExpense", err, "tab_id", req.Msg.TabID)
	}
	if req.Msg.PayerID == "" {
		return nil, rpcError("CreateExpense", calculator.ErrMissingPayer)
	}

	split, err := computeSplit(req.Msg.SplitInput, tab.ParticipantIDs(), s.policy)
	if err != nil {
		return nil, rpcError("CreateExpense", err, "tab_id", tab.ID, "mode", req.Msg.Mode)
	}

	// Every id the split mentions, and the payer, must be on the tab.
	for _, id := range append(split.participants(), req.Msg.PayerID) {
		if !tab.HasParticipant(id) {
			return nil, rpcError("CreateExpense", fmt.Errorf("%w: %q", ErrNotInTab, id), "tab_id", tab.ID)
		}
	}

	expense := &models.Expense{
		TabID:         tab.ID,
		Description:   strings.TrimSpace(req.Msg.Description),
		PayerID:       req.Msg.PayerID,
		Mode:          split.Mode,
		SubtotalCents: split.SubtotalCents,
		TaxCents:      split.TaxCents,
		FeeCents:      split.FeeCents,
		TipCents:      split.TipCents,
		TotalCents:    split.TotalCents,
		Splits:        split.splitsFor(req.Msg.PayerID),
		Items:         split.Items,
		CreatedBy:     middleware.GetParticipantID(ctx),
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, rpcError("CreateExpense", err, "tab_id", tab.ID)
	}

	s.metrics.ExpenseCreated(string(expense.Mode))
	if split.UnassignedCents > 0 {
		s.metrics.UnassignedCents(split.UnassignedCents)
		slog.Warn("Item remainders charged to payer",
			"expense_id", expense.ID,
			"payer_id", expense.PayerID,
			"cents", split.UnassignedCents,
		)
	}
	slog.Info("Expense created",
		"expense_id", expense.ID,
		"tab_id", tab.ID,
		"total", money.FormatCents(expense.TotalCents),
	)
	s.ledger.Publish(ctx, tab.ID)

	return connect.NewResponse(&api.CreateExpenseResponse{
		Expense:   expenseToAPI(expense),
		Breakdown: personSplitsToAPI(split.Breakdown),
	}), nil
}

// GetExpense retrieves an expense by ID.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	slog.Info("GetExpense request received", "expense_id", req.Msg.ExpenseID)

	expense, err := s.getExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, rpcError("GetExpense", err, "expense_id", req.Msg.ExpenseID)
	}

	return connect.NewResponse(&api.GetExpenseResponse{Expense: expenseToAPI(expense)}), nil
}

// ListExpenses lists a tab's expenses, oldest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	slog.Info("ListExpenses request received", "tab_id", req.Msg.TabID)

	tab, err := getTab(ctx, s.store, req.Msg.TabID)
	if err != nil {
		return nil, rpcError("ListExpenses", err, "tab_id", req.Msg.TabID)
	}

	expenses, err := s.ledger.Expenses(ctx, tab.ID)
	if err != nil {
		return nil, rpcError("ListExpenses", err, "tab_id", tab.ID)
	}

	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = expenseToAPI(e)
	}

	slog.Info("ListExpenses successful", "tab_id", tab.ID, "count", len(out))

	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// DeleteExpense removes an expense.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received", "expense_id", req.Msg.ExpenseID)

	expense, err := s.getExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, rpcError("DeleteExpense", err, "expense_id", req.Msg.ExpenseID)
	}
	if err := s.store.DeleteExpense(ctx, expense.ID); err != nil {
		return nil, rpcError("DeleteExpense", err, "expense_id", expense.ID)
	}

	slog.Info("Expense deleted", "expense_id", expense.ID, "tab_id", expense.TabID)
	s.ledger.Publish(ctx, expense.TabID)

	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// getExpense loads an expense on a tab the caller may see.
func (s *ExpenseService) getExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	if expenseID == "" {
		return nil, fmt.Errorf("%w: expense_id required", ErrInvalidRequest)
	}
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if err := authorizeTab(ctx, expense.TabID); err != nil {
		return nil, err
	}
	return expense, nil
}
