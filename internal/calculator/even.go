package calculator

import "sort"

// DistributeEvenSplit divides total equally among participants. Ids are sorted
// first, and when total doesn't divide evenly the LAST total%N participants in
// sorted order absorb the extra cent.
//
// Allocate hands extra cents to the first buckets instead. The two rules must stay
// distinct: existing tabs depend on who absorbed the odd cent.
func DistributeEvenSplit(total int64, participantIDs []string) ([]Share, error) {
	splits, err := EvenBreakdown(total, participantIDs)
	if err != nil {
		return nil, err
	}
	return Shares(splits), nil
}

// EvenBreakdown is DistributeEvenSplit returning full breakdowns, in sorted id order.
func EvenBreakdown(total int64, participantIDs []string) ([]PersonSplit, error) {
	if len(participantIDs) == 0 {
		return nil, ErrEmptyParticipantSet
	}

	ids := make([]string, len(participantIDs))
	copy(ids, participantIDs)
	sort.Strings(ids)

	n := int64(len(ids))
	base := total / n
	remainder := total % n

	splits := make([]PersonSplit, len(ids))
	for i, id := range ids {
		amount := base
		if int64(i) >= n-remainder {
			amount++
		}
		splits[i] = PersonSplit{
			ParticipantID: id,
			SubtotalCents: amount,
			TotalCents:    amount,
		}
	}
	return splits, nil
}
