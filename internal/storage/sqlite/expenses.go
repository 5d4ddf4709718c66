package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/storage"
)

// CreateExpense persists an expense, its splits, and its items in one transaction.
// A closed expense is required; a partially written expense would corrupt every
// balance computed for the tab afterwards.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if err := expense.Validate(); err != nil {
		return err
	}

	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var createdBy any
	if expense.CreatedBy != "" {
		createdBy = expense.CreatedBy
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, tab_id, description, payer_id, mode, subtotal_cents, tax_cents, fee_cents, tip_cents, total_cents, created_at, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.TabID, expense.Description, expense.PayerID, string(expense.Mode),
		expense.SubtotalCents, expense.TaxCents, expense.FeeCents, expense.TipCents, expense.TotalCents,
		expense.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, split := range expense.Splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, participant_id, position, amount_cents) VALUES (?, ?, ?, ?)",
			expense.ID, split.ParticipantID, i, split.AmountCents,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	for i := range expense.Items {
		item := &expense.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_items (id, expense_id, position, description, amount_cents) VALUES (?, ?, ?, ?, ?)",
			item.ID, expense.ID, i, item.Description, item.AmountCents,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		for j, participant := range item.Claimants {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO item_claims (item_id, participant_id, position) VALUES (?, ?, ?)",
				item.ID, participant, j,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item claim: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID, including splits and items in their original order.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var mode string
	var createdBy sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, tab_id, description, payer_id, mode, subtotal_cents, tax_cents, fee_cents, tip_cents, total_cents, created_at, created_by
		 FROM expenses WHERE id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.TabID, &expense.Description, &expense.PayerID, &mode,
		&expense.SubtotalCents, &expense.TaxCents, &expense.FeeCents, &expense.TipCents, &expense.TotalCents,
		&expense.CreatedAt, &createdBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	expense.Mode = calculator.SplitMode(mode)
	if createdBy.Valid {
		expense.CreatedBy = createdBy.String
	}

	if expense.Splits, err = s.getSplits(ctx, expenseID); err != nil {
		return nil, err
	}
	if expense.Items, err = s.getItems(ctx, expenseID); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *SQLiteStore) getSplits(ctx context.Context, expenseID string) ([]models.Split, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT participant_id, amount_cents FROM expense_splits WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []models.Split
	for rows.Next() {
		var split models.Split
		if err := rows.Scan(&split.ParticipantID, &split.AmountCents); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return splits, nil
}

// getItems loads items and then all of their claims in a second query, so no
// result set is held open while another query runs.
func (s *SQLiteStore) getItems(ctx context.Context, expenseID string) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, description, amount_cents FROM expense_items WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}

	var items []models.Item
	index := make(map[string]int)
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.Description, &item.AmountCents); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		index[item.ID] = len(items)
		items = append(items, item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	claimRows, err := s.db.QueryContext(ctx,
		`SELECT c.item_id, c.participant_id
		 FROM item_claims c JOIN expense_items i ON i.id = c.item_id
		 WHERE i.expense_id = ?
		 ORDER BY i.position, c.position`,
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get item claims: %w", err)
	}
	defer claimRows.Close()

	for claimRows.Next() {
		var itemID, participant string
		if err := claimRows.Scan(&itemID, &participant); err != nil {
			return nil, fmt.Errorf("failed to scan item claim: %w", err)
		}
		if i, ok := index[itemID]; ok {
			items[i].Claimants = append(items[i].Claimants, participant)
		}
	}
	if err := claimRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item claims: %w", err)
	}
	return items, nil
}

// ListExpenseIDs returns the ids of a tab's expenses, oldest first.
func (s *SQLiteStore) ListExpenseIDs(ctx context.Context, tabID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM expenses WHERE tab_id = ? ORDER BY created_at, rowid",
		tabID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan expense id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return ids, nil
}

// DeleteExpense removes an expense; its splits, items and claims cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return expectOneRow(res, "expense", expenseID)
}
