package calculator

import (
	"fmt"
	"sort"
)

// ExpenseRecord is an expense with the minimal information needed for balance calculations.
type ExpenseRecord struct {
	ID         string
	PayerID    string
	TotalCents int64
	Splits     []Share
}

// SettlementRecord is a repayment with the minimal information needed for balance calculations.
type SettlementRecord struct {
	FromID      string // Who paid (debtor settling up)
	ToID        string // Who received (creditor being paid)
	AmountCents int64
}

// BalanceStatus classifies a net balance by sign.
type BalanceStatus string

const (
	StatusCreditor BalanceStatus = "creditor" // owed money
	StatusDebtor   BalanceStatus = "debtor"   // owes money
	StatusSettled  BalanceStatus = "settled"
)

// NetBalance is one participant's position across a tab.
type NetBalance struct {
	ParticipantID string
	PaidCents     int64
	OwedCents     int64
	NetCents      int64 // Positive = owed money, Negative = owes money
}

// Status reports whether the participant is a creditor, a debtor, or settled.
func (b NetBalance) Status() BalanceStatus {
	switch {
	case b.NetCents > 0:
		return StatusCreditor
	case b.NetCents < 0:
		return StatusDebtor
	default:
		return StatusSettled
	}
}

// Transfer is a suggested payment that moves a debtor towards zero.
type Transfer struct {
	FromID      string
	ToID        string
	AmountCents int64
}

// CalculateNetBalances aggregates who paid what and who owes what across a tab.
//
//   - each expense credits its payer with the full total and debits every split
//   - each settlement credits the sender and debits the receiver, as if the sender
//     had paid an expense owed entirely by the receiver
//   - net = paid - owed
//
// Every participant in participantIDs appears in the output, even with no activity;
// anyone else who shows up in an expense or settlement is added. Output is sorted by
// participant id. Because each expense's splits must sum to its total, the net
// balances always sum to zero; an expense that breaks this is rejected.
func CalculateNetBalances(participantIDs []string, expenses []ExpenseRecord, settlements []SettlementRecord) ([]NetBalance, error) {
	balances := make(map[string]*NetBalance, len(participantIDs))
	get := func(id string) *NetBalance {
		b, ok := balances[id]
		if !ok {
			b = &NetBalance{ParticipantID: id}
			balances[id] = b
		}
		return b
	}

	for _, id := range participantIDs {
		get(id)
	}

	for _, e := range expenses {
		if e.PayerID == "" {
			return nil, fmt.Errorf("%w: expense %s", ErrMissingPayer, e.ID)
		}
		if sum := SumShares(e.Splits); sum != e.TotalCents {
			return nil, fmt.Errorf("%w: expense %s has total %d but splits sum to %d",
				ErrUnbalancedExpense, e.ID, e.TotalCents, sum)
		}

		get(e.PayerID).PaidCents += e.TotalCents
		for _, s := range e.Splits {
			get(s.ParticipantID).OwedCents += s.AmountCents
		}
	}

	for _, s := range settlements {
		get(s.FromID).PaidCents += s.AmountCents
		get(s.ToID).OwedCents += s.AmountCents
	}

	result := make([]NetBalance, 0, len(balances))
	for _, b := range balances {
		b.NetCents = b.PaidCents - b.OwedCents
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ParticipantID < result[j].ParticipantID
	})
	return result, nil
}

// Outstanding drops settled participants. This is the set the reminder feed reports.
func Outstanding(balances []NetBalance) []NetBalance {
	var out []NetBalance
	for _, b := range balances {
		if b.NetCents != 0 {
			out = append(out, b)
		}
	}
	return out
}

// SuggestTransfers proposes payments that settle every balance, matching the
// largest debt with the largest credit until both sides are exhausted. Ties are
// broken by participant id so the suggestion is stable across reads.
func SuggestTransfers(balances []NetBalance) []Transfer {
	type position struct {
		id     string
		amount int64
	}

	var debtors, creditors []position
	for _, b := range balances {
		if b.NetCents < 0 {
			debtors = append(debtors, position{b.ParticipantID, -b.NetCents})
		} else if b.NetCents > 0 {
			creditors = append(creditors, position{b.ParticipantID, b.NetCents})
		}
	}

	byLargest := func(p []position) func(i, j int) bool {
		return func(i, j int) bool {
			if p[i].amount != p[j].amount {
				return p[i].amount > p[j].amount
			}
			return p[i].id < p[j].id
		}
	}
	sort.Slice(debtors, byLargest(debtors))
	sort.Slice(creditors, byLargest(creditors))

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := min(debtors[i].amount, creditors[j].amount)
		transfers = append(transfers, Transfer{
			FromID:      debtors[i].id,
			ToID:        creditors[j].id,
			AmountCents: amount,
		})

		debtors[i].amount -= amount
		creditors[j].amount -= amount
		if debtors[i].amount == 0 {
			i++
		}
		if creditors[j].amount == 0 {
			j++
		}
	}
	return transfers
}
