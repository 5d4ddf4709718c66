// Package calculator is the allocation and ledger core of tabsplit.
//
// Every function here is pure: no I/O, no shared state, integer cents only.
// Callers may invoke any of them concurrently.
package calculator

import (
	"errors"
	"fmt"
)

// SplitMode selects how an expense is divided. It is the client-supplied mode flag.
type SplitMode string

const (
	SplitModeEven   SplitMode = "split"
	SplitModeCustom SplitMode = "custom"
	SplitModeClaim  SplitMode = "claim"
)

var (
	ErrEmptyParticipantSet = errors.New("at least one participant is required")
	ErrUnknownSplitMode    = errors.New("unknown split mode")
	ErrUnclaimedItem       = errors.New("item has no claimants")
	ErrUnknownClaimant     = errors.New("claimant is not a participant of the expense")
	ErrUnbalancedExpense   = errors.New("expense splits do not sum to its total")
	ErrMissingPayer        = errors.New("expense has no payer")
)

// ParseSplitMode validates a mode flag from a request.
func ParseSplitMode(s string) (SplitMode, error) {
	switch mode := SplitMode(s); mode {
	case SplitModeEven, SplitModeCustom, SplitModeClaim:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q (want split, custom or claim)", ErrUnknownSplitMode, s)
	}
}

// Share is the amount one participant owes for an expense.
type Share struct {
	ParticipantID string
	AmountCents   int64
}

// ItemShare is one participant's portion of a claimed receipt item.
type ItemShare struct {
	ItemID      string
	Description string
	AmountCents int64
}

// PersonSplit is the full breakdown of one participant's share.
// TotalCents always equals SubtotalCents + TaxCents + FeeCents + TipCents.
type PersonSplit struct {
	ParticipantID string
	SubtotalCents int64
	TaxCents      int64
	FeeCents      int64
	TipCents      int64
	TotalCents    int64

	// Items is only populated in claim mode.
	Items []ItemShare
}

// Shares flattens breakdowns into the (participant, amount) pairs that get persisted.
func Shares(splits []PersonSplit) []Share {
	shares := make([]Share, len(splits))
	for i, s := range splits {
		shares[i] = Share{ParticipantID: s.ParticipantID, AmountCents: s.TotalCents}
	}
	return shares
}

// SumShares returns the total of all share amounts.
func SumShares(shares []Share) int64 {
	var sum int64
	for _, s := range shares {
		sum += s.AmountCents
	}
	return sum
}
