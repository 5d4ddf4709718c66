package models

// Settlement represents a payment between tab participants to clear debts.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// TabID is the tab this settlement belongs to.
	TabID string

	// FromID is the participant who paid (debtor settling up).
	FromID string

	// ToID is the participant who received payment (creditor being paid).
	ToID string

	// AmountCents is the payment amount.
	AmountCents int64

	// Note is an optional description for the settlement.
	Note string

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64
}
