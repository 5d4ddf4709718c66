package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/money"
	"github.com/mmynk/tabsplit/pkg/api"
)

// computedSplit is a parsed and calculated SplitInput.
type computedSplit struct {
	Mode          calculator.SplitMode
	SubtotalCents int64
	TaxCents      int64
	FeeCents      int64
	TipCents      int64
	TotalCents    int64

	Breakdown []calculator.PersonSplit
	Items     []models.Item

	// UnassignedCents is what RemainderLeak left off the breakdown.
	UnassignedCents int64
}

// computeSplit parses in and runs the selected strategy. defaultParticipants is
// used by even splits that list nobody.
func computeSplit(in api.SplitInput, defaultParticipants []string, policy calculator.RemainderPolicy) (*computedSplit, error) {
	mode, err := calculator.ParseSplitMode(in.Mode)
	if err != nil {
		return nil, err
	}

	out := &computedSplit{Mode: mode}
	if out.TaxCents, err = parseOptional("tax", in.Tax); err != nil {
		return nil, err
	}
	if out.FeeCents, err = parseOptional("fee", in.Fee); err != nil {
		return nil, err
	}
	if out.TipCents, err = parseOptional("tip", in.Tip); err != nil {
		return nil, err
	}

	switch mode {
	case calculator.SplitModeEven:
		err = out.even(in, defaultParticipants)
	case calculator.SplitModeCustom:
		err = out.custom(in)
	case calculator.SplitModeClaim:
		err = out.claim(in, policy)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *computedSplit) even(in api.SplitInput, defaultParticipants []string) error {
	if c.TaxCents != 0 || c.FeeCents != 0 || c.TipCents != 0 {
		return fmt.Errorf("%w: tax, fee and tip apply to custom and claim modes; include them in the total", ErrInvalidRequest)
	}
	total, err := parseRequired("total", in.Total)
	if err != nil {
		return err
	}

	participants := in.ParticipantIDs
	if len(participants) == 0 {
		participants = defaultParticipants
	}
	if err := noDuplicates(participants); err != nil {
		return err
	}

	c.Breakdown, err = calculator.EvenBreakdown(total, participants)
	if err != nil {
		return err
	}
	c.SubtotalCents = total
	c.TotalCents = total
	return nil
}

func (c *computedSplit) custom(in api.SplitInput) error {
	if c.FeeCents != 0 {
		return fmt.Errorf("%w: fee applies to claim mode only", ErrInvalidRequest)
	}
	subtotal, err := parseRequired("subtotal", in.Subtotal)
	if err != nil {
		return err
	}
	if len(in.CustomAmounts) == 0 {
		return calculator.ErrEmptyParticipantSet
	}

	bases := make([]calculator.BaseAmount, len(in.CustomAmounts))
	ids := make([]string, len(in.CustomAmounts))
	var sum int64
	for i, ca := range in.CustomAmounts {
		cents, err := money.ParseCents(ca.Amount, true)
		if err != nil {
			return fmt.Errorf("amount for %s: %w", ca.ParticipantID, err)
		}
		bases[i] = calculator.BaseAmount{ParticipantID: ca.ParticipantID, BaseCents: cents}
		ids[i] = ca.ParticipantID
		if sum, err = money.Sum(sum, cents); err != nil {
			return fmt.Errorf("custom amounts: %w", err)
		}
	}
	if err := noDuplicates(ids); err != nil {
		return err
	}
	if sum != subtotal {
		return fmt.Errorf("%w: subtotal %s, custom amounts %s", ErrSplitMismatch, money.FormatCents(subtotal), money.FormatCents(sum))
	}

	total, err := money.Sum(subtotal, c.TaxCents, c.TipCents)
	if err != nil {
		return fmt.Errorf("expense total: %w", err)
	}

	c.Breakdown = calculator.CustomBreakdown(bases, c.TaxCents, c.TipCents)
	c.SubtotalCents = subtotal
	c.TotalCents = total
	return nil
}

func (c *computedSplit) claim(in api.SplitInput, policy calculator.RemainderPolicy) error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: claim mode needs at least one item", ErrInvalidRequest)
	}

	items := make([]calculator.ClaimItem, len(in.Items))
	c.Items = make([]models.Item, len(in.Items))
	for i, item := range in.Items {
		cents, err := money.ParseCents(item.Amount, false)
		if err != nil {
			return fmt.Errorf("item %q: %w", item.Description, err)
		}
		id := uuid.New().String()
		items[i] = calculator.ClaimItem{
			ID:          id,
			Description: item.Description,
			AmountCents: cents,
			Claimants:   item.Claimants,
		}
		c.Items[i] = models.Item{
			ID:          id,
			Description: item.Description,
			AmountCents: cents,
			Claimants:   firstOccurrences(item.Claimants),
		}
		if c.SubtotalCents, err = money.Sum(c.SubtotalCents, cents); err != nil {
			return fmt.Errorf("item subtotal: %w", err)
		}
	}

	total, err := money.Sum(c.SubtotalCents, c.TaxCents, c.FeeCents, c.TipCents)
	if err != nil {
		return fmt.Errorf("expense total: %w", err)
	}

	result, err := calculator.CalculateItemClaims(items, in.ParticipantIDs, calculator.Extras{
		TaxCents: c.TaxCents,
		FeeCents: c.FeeCents,
		TipCents: c.TipCents,
	}, policy)
	if err != nil {
		return err
	}

	c.Breakdown = result.Splits
	c.UnassignedCents = result.UnassignedCents
	c.TotalCents = total
	return nil
}

// participants returns every participant id the split refers to.
func (c *computedSplit) participants() []string {
	ids := make([]string, 0, len(c.Breakdown))
	for _, s := range c.Breakdown {
		ids = append(ids, s.ParticipantID)
	}
	return ids
}

// splitsFor turns the breakdown into persisted splits. Cents left unassigned by
// RemainderLeak are charged to the payer so the expense still closes.
func (c *computedSplit) splitsFor(payerID string) []models.Split {
	splits := models.SplitsFromShares(calculator.Shares(c.Breakdown))
	if c.UnassignedCents == 0 {
		return splits
	}
	for i := range splits {
		if splits[i].ParticipantID == payerID {
			splits[i].AmountCents += c.UnassignedCents
			return splits
		}
	}
	return append(splits, models.Split{ParticipantID: payerID, AmountCents: c.UnassignedCents})
}

func parseOptional(field, s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	cents, err := money.ParseCents(s, true)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return cents, nil
}

func parseRequired(field, s string) (int64, error) {
	cents, err := money.ParseCents(s, false)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return cents, nil
}

func firstOccurrences(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func noDuplicates(ids []string) error {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: empty participant id", ErrInvalidRequest)
		}
		if seen[id] {
			return fmt.Errorf("%w: participant %s listed twice", ErrInvalidRequest, id)
		}
		seen[id] = true
	}
	return nil
}
