package models

import (
	"errors"
	"fmt"

	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/money"
)

// Expense is a single payment on a tab and how it was divided.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// TabID is the tab the expense belongs to.
	TabID string

	// Description is the human-readable label (e.g., "Dinner at Rui's").
	Description string

	// PayerID is the participant who paid the full total.
	PayerID string

	// Mode is the split strategy used to compute Splits.
	Mode calculator.SplitMode

	// SubtotalCents is the pre-extras amount: the expense total in split mode, the
	// sum of custom bases in custom mode, the sum of items in claim mode.
	SubtotalCents int64

	// TaxCents, FeeCents and TipCents are apportioned on top of the subtotal.
	// FeeCents is only used in claim mode; all three are zero in split mode.
	TaxCents int64
	FeeCents int64
	TipCents int64

	// TotalCents is what the payer paid.
	TotalCents int64

	// Splits is what each participant owes. Always sums to TotalCents.
	Splits []Split

	// Items are the claimed receipt lines (claim mode only).
	Items []Item

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// CreatedBy is the participant id of the caller that recorded the expense, if known.
	CreatedBy string
}

// Split is one participant's share of an expense.
type Split struct {
	ParticipantID string
	AmountCents   int64
}

// Item represents a single line item on a receipt.
// Items can be shared among multiple participants.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// Description is the name of the item (e.g., "Pizza", "Beer").
	Description string

	// AmountCents is the pre-tax price of this item.
	AmountCents int64

	// Claimants are the participant ids splitting this item.
	Claimants []string
}

var (
	ErrEmptyExpense  = errors.New("expense has no splits")
	ErrNegativeSplit = errors.New("split amount is negative")
)

// Validate checks the expense closes: its splits sum exactly to its total.
func (e *Expense) Validate() error {
	if e.PayerID == "" {
		return calculator.ErrMissingPayer
	}
	if len(e.Splits) == 0 {
		return ErrEmptyExpense
	}
	var sum int64
	for _, s := range e.Splits {
		if s.AmountCents < 0 {
			return fmt.Errorf("%w: %s owes %d", ErrNegativeSplit, s.ParticipantID, s.AmountCents)
		}
		var err error
		if sum, err = money.Sum(sum, s.AmountCents); err != nil {
			return fmt.Errorf("%w: splits overflow", calculator.ErrUnbalancedExpense)
		}
	}
	if sum != e.TotalCents {
		return fmt.Errorf("%w: total %d, splits %d", calculator.ErrUnbalancedExpense, e.TotalCents, sum)
	}
	return nil
}

// Record converts the expense into the ledger's input form.
func (e *Expense) Record() calculator.ExpenseRecord {
	shares := make([]calculator.Share, len(e.Splits))
	for i, s := range e.Splits {
		shares[i] = calculator.Share{ParticipantID: s.ParticipantID, AmountCents: s.AmountCents}
	}
	return calculator.ExpenseRecord{
		ID:         e.ID,
		PayerID:    e.PayerID,
		TotalCents: e.TotalCents,
		Splits:     shares,
	}
}

// Record converts the settlement into the ledger's input form.
func (s *Settlement) Record() calculator.SettlementRecord {
	return calculator.SettlementRecord{
		FromID:      s.FromID,
		ToID:        s.ToID,
		AmountCents: s.AmountCents,
	}
}

// SplitsFromShares converts calculator output into persisted splits.
func SplitsFromShares(shares []calculator.Share) []Split {
	splits := make([]Split, len(shares))
	for i, s := range shares {
		splits[i] = Split{ParticipantID: s.ParticipantID, AmountCents: s.AmountCents}
	}
	return splits
}
