package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/metrics"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/notify"
	"github.com/mmynk/tabsplit/internal/storage"
)

// Ledger loads a tab's expenses and settlements, computes net balances, and
// publishes them after writes.
type Ledger struct {
	store       storage.Store
	publisher   notify.BalancePublisher
	metrics     *metrics.Metrics
	concurrency int
}

// NewLedger creates a Ledger. A nil publisher publishes nothing; concurrency
// bounds the number of expenses loaded at once.
func NewLedger(store storage.Store, publisher notify.BalancePublisher, m *metrics.Metrics, concurrency int) *Ledger {
	if publisher == nil {
		publisher = notify.LogPublisher{}
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Ledger{store: store, publisher: publisher, metrics: m, concurrency: concurrency}
}

// Expenses loads every expense on a tab, oldest first.
func (l *Ledger) Expenses(ctx context.Context, tabID string) ([]*models.Expense, error) {
	ids, err := l.store.ListExpenseIDs(ctx, tabID)
	if err != nil {
		return nil, err
	}

	expenses := make([]*models.Expense, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			expense, err := l.store.GetExpense(ctx, id)
			if err != nil {
				return fmt.Errorf("load expense %s: %w", id, err)
			}
			expenses[i] = expense
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return expenses, nil
}

// Balances computes every participant's net position on tab.
func (l *Ledger) Balances(ctx context.Context, tab *models.Tab) ([]calculator.NetBalance, error) {
	expenses, err := l.Expenses(ctx, tab.ID)
	if err != nil {
		return nil, err
	}
	settlements, err := l.store.ListSettlementsByTab(ctx, tab.ID)
	if err != nil {
		return nil, err
	}

	expenseRecords := make([]calculator.ExpenseRecord, len(expenses))
	for i, e := range expenses {
		expenseRecords[i] = e.Record()
	}
	settlementRecords := make([]calculator.SettlementRecord, len(settlements))
	for i, s := range settlements {
		settlementRecords[i] = s.Record()
	}

	return calculator.CalculateNetBalances(tab.ParticipantIDs(), expenseRecords, settlementRecords)
}

// Publish recomputes tabID's balances and hands them to the publisher. Failures
// are logged and counted; they never fail the write that triggered them.
func (l *Ledger) Publish(ctx context.Context, tabID string) {
	tab, err := l.store.GetTab(ctx, tabID)
	if err != nil {
		slog.Warn("Balance publish skipped", "tab_id", tabID, "error", err)
		return
	}
	balances, err := l.Balances(ctx, tab)
	if err != nil {
		slog.Error("Balance publish failed", "tab_id", tabID, "error", err)
		l.metrics.BalancePublished(err)
		return
	}
	l.publish(ctx, notify.NewBalanceSnapshot(tabID, balances))
}

// PublishClosed announces that a deleted tab has nothing outstanding.
func (l *Ledger) PublishClosed(ctx context.Context, tabID string) {
	l.publish(ctx, notify.NewBalanceSnapshot(tabID, nil))
}

func (l *Ledger) publish(ctx context.Context, msg *notify.BalanceSnapshotMessage) {
	err := l.publisher.PublishBalances(ctx, msg)
	l.metrics.BalancePublished(err)
	if err != nil {
		slog.Error("Balance publish failed", "tab_id", msg.TabID, "error", err)
	}
}
