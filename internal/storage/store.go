// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tabsplit/internal/models"
)

var (
	// ErrNotFound is wrapped by every lookup that finds nothing.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is wrapped when a write collides with a unique key.
	ErrAlreadyExists = errors.New("already exists")
)

// Store defines the interface for tab storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateTab persists a new tab together with its initial participants.
	// ID and CreatedAt fields left empty are populated by the store.
	CreateTab(ctx context.Context, tab *models.Tab) error

	// GetTab retrieves a tab and its participants.
	GetTab(ctx context.Context, tabID string) (*models.Tab, error)

	// ListTabs returns all tabs, newest first, without participants.
	ListTabs(ctx context.Context) ([]*models.Tab, error)

	// DeleteTab removes a tab and everything recorded on it.
	DeleteTab(ctx context.Context, tabID string) error

	// AddParticipant adds a participant to an existing tab.
	AddParticipant(ctx context.Context, participant *models.Participant) error

	// CreateExpense persists an expense with its splits and items atomically.
	// It refuses expenses whose splits don't sum to the total.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its splits and items.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpenseIDs returns the ids of a tab's expenses, oldest first.
	ListExpenseIDs(ctx context.Context, tabID string) ([]string, error)

	// DeleteExpense removes an expense with its splits and items.
	DeleteExpense(ctx context.Context, expenseID string) error

	// CreateSettlement persists a repayment between two participants.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlementsByTab returns a tab's settlements, newest first.
	ListSettlementsByTab(ctx context.Context, tabID string) ([]*models.Settlement, error)

	// Close releases any resources held by the store.
	Close() error
}
