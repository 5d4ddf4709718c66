package calculator

// BaseAmount is a participant's custom pre-tax amount for an expense.
type BaseAmount struct {
	ParticipantID string
	BaseCents     int64
}

// DistributeCustomExtras adds tax and tip on top of caller-chosen base amounts.
// Each base is used as an allocator weight, and tax and tip are allocated
// independently, so each of them is conserved on its own. Results keep input order.
//
// The bases are assumed to already sum to the expense subtotal; checking that is
// the caller's job.
func DistributeCustomExtras(splits []BaseAmount, taxCents, tipCents int64) []Share {
	return Shares(CustomBreakdown(splits, taxCents, tipCents))
}

// CustomBreakdown is DistributeCustomExtras with the tax and tip portions kept apart.
func CustomBreakdown(splits []BaseAmount, taxCents, tipCents int64) []PersonSplit {
	buckets := make([]Bucket, len(splits))
	for i, s := range splits {
		buckets[i] = Bucket{ID: s.ParticipantID, Weight: s.BaseCents}
	}

	tax := Allocate(buckets, taxCents)
	tip := Allocate(buckets, tipCents)

	result := make([]PersonSplit, len(splits))
	for i, s := range splits {
		result[i] = PersonSplit{
			ParticipantID: s.ParticipantID,
			SubtotalCents: s.BaseCents,
			TaxCents:      tax[i],
			TipCents:      tip[i],
			TotalCents:    s.BaseCents + tax[i] + tip[i],
		}
	}
	return result
}
