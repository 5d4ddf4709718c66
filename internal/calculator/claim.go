package calculator

import (
	"fmt"
	"sort"
)

// ClaimItem is a receipt line claimed by one or more participants.
type ClaimItem struct {
	ID          string
	Description string
	AmountCents int64
	Claimants   []string
}

// Extras are the receipt-level amounts apportioned on top of claimed items.
type Extras struct {
	TaxCents int64
	FeeCents int64
	TipCents int64
}

// Total returns tax + fees + tip.
func (e Extras) Total() int64 {
	return e.TaxCents + e.FeeCents + e.TipCents
}

// RemainderPolicy decides what happens to the cents left over when an item's
// amount doesn't divide evenly among its claimants.
type RemainderPolicy string

const (
	// RemainderToClaimants gives each item's leftover cents to its claimants, one
	// each, lowest id first. Claim expenses always close under this policy.
	RemainderToClaimants RemainderPolicy = "claimants"

	// RemainderLeak floors each claimant's portion and drops the leftover, reporting
	// it in ClaimResult.UnassignedCents.
	RemainderLeak RemainderPolicy = "leak"
)

// ParseRemainderPolicy maps a config value to a policy. Empty means RemainderToClaimants.
func ParseRemainderPolicy(s string) (RemainderPolicy, error) {
	switch p := RemainderPolicy(s); p {
	case "", RemainderToClaimants:
		return RemainderToClaimants, nil
	case RemainderLeak:
		return RemainderLeak, nil
	default:
		return "", fmt.Errorf("unknown remainder policy %q (want claimants or leak)", s)
	}
}

// ClaimResult is the outcome of an item-claim split.
type ClaimResult struct {
	// Splits are in participant order.
	Splits []PersonSplit

	// UnassignedCents is the sum of per-item remainders that were not given to
	// anyone. Always zero under RemainderToClaimants.
	UnassignedCents int64
}

// CalculateItemClaims splits claimed receipt items and then apportions extras over
// the claimed subtotals in a fixed cascade:
//
//	tax  over subtotal
//	fees over subtotal + tax
//	tip  over subtotal + tax + fees
//
// The cascade gives different rounding than allocating all three against the raw
// subtotal, and callers rely on it.
//
// participantIDs fixes the participant order and may include people who claimed
// nothing (they still share extras if nobody claimed anything). When it is empty,
// the sorted set of claimants is used.
func CalculateItemClaims(items []ClaimItem, participantIDs []string, extras Extras, policy RemainderPolicy) (*ClaimResult, error) {
	participants := participantIDs
	if len(participants) == 0 {
		participants = claimantsOf(items)
	}
	participants = dedupe(participants)
	if len(participants) == 0 {
		return nil, ErrEmptyParticipantSet
	}

	index := make(map[string]int, len(participants))
	splits := make([]PersonSplit, len(participants))
	for i, id := range participants {
		index[id] = i
		splits[i].ParticipantID = id
	}

	result := &ClaimResult{}
	for _, item := range items {
		claimants := dedupe(item.Claimants)
		if len(claimants) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnclaimedItem, item.Description)
		}
		for _, c := range claimants {
			if _, ok := index[c]; !ok {
				return nil, fmt.Errorf("%w: %q on item %q", ErrUnknownClaimant, c, item.Description)
			}
		}

		portions := splitItem(item.AmountCents, claimants, policy)
		for i, c := range claimants {
			result.UnassignedCents -= portions[i]
			split := &splits[index[c]]
			split.SubtotalCents += portions[i]
			split.Items = append(split.Items, ItemShare{
				ItemID:      item.ID,
				Description: item.Description,
				AmountCents: portions[i],
			})
		}
		result.UnassignedCents += item.AmountCents
	}

	buckets := make([]Bucket, len(splits))
	for i, s := range splits {
		buckets[i] = Bucket{ID: s.ParticipantID, Weight: s.SubtotalCents}
	}
	tax := Allocate(buckets, extras.TaxCents)

	for i := range buckets {
		buckets[i].Weight += tax[i]
	}
	fees := Allocate(buckets, extras.FeeCents)

	for i := range buckets {
		buckets[i].Weight += fees[i]
	}
	tip := Allocate(buckets, extras.TipCents)

	for i := range splits {
		splits[i].TaxCents = tax[i]
		splits[i].FeeCents = fees[i]
		splits[i].TipCents = tip[i]
		splits[i].TotalCents = splits[i].SubtotalCents + tax[i] + fees[i] + tip[i]
	}
	result.Splits = splits
	return result, nil
}

func splitItem(amount int64, claimants []string, policy RemainderPolicy) []int64 {
	if policy == RemainderLeak {
		each := amount / int64(len(claimants))
		portions := make([]int64, len(claimants))
		for i := range portions {
			portions[i] = each
		}
		return portions
	}

	buckets := make([]Bucket, len(claimants))
	for i, c := range claimants {
		buckets[i] = Bucket{ID: c, Weight: 1}
	}
	return Allocate(buckets, amount)
}

func claimantsOf(items []ClaimItem) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, item := range items {
		for _, c := range item.Claimants {
			if !seen[c] {
				seen[c] = true
				ids = append(ids, c)
			}
		}
	}
	sort.Strings(ids)
	return ids
}

// dedupe drops repeated ids, keeping first occurrences in order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
