package calculator

import (
	"cmp"
	"math/big"
	"math/bits"
	"sort"
)

// Bucket is an allocation target (an item or a participant) and the weight that
// determines its proportional share, usually a subtotal in cents.
type Bucket struct {
	ID     string
	Weight int64
}

// AllocateProportionally distributes total across buckets in proportion to their
// weights using the largest remainder (Hamilton) method. The returned shares always
// sum to exactly total. Buckets sharing an id have their shares added together.
//
// Weights and total must be non-negative.
func AllocateProportionally(buckets []Bucket, total int64) map[string]int64 {
	shares := Allocate(buckets, total)
	result := make(map[string]int64, len(buckets))
	for i, b := range buckets {
		result[b.ID] += shares[i]
	}
	return result
}

// Allocate is the positional form of AllocateProportionally: shares[i] belongs to buckets[i].
//
// Algorithm:
//   - no buckets or a zero total: everyone gets 0
//   - all weights zero: even split, the first total%N buckets in input order get the extra cent
//   - otherwise each bucket gets floor(weight*total/sum), and the leftover cents go one each
//     to the buckets with the largest remainders, ties broken by ascending id
func Allocate(buckets []Bucket, total int64) []int64 {
	n := len(buckets)
	shares := make([]int64, n)
	if n == 0 || total == 0 {
		return shares
	}

	var sum uint64
	wide := false
	for _, b := range buckets {
		var carry uint64
		sum, carry = bits.Add64(sum, uint64(b.Weight), 0)
		if carry != 0 {
			wide = true
		}
	}

	if sum == 0 && !wide {
		base := total / int64(n)
		remainder := total % int64(n)
		for i := range shares {
			shares[i] = base
			if int64(i) < remainder {
				shares[i]++
			}
		}
		return shares
	}

	var compareRemainders func(i, j int) int
	if wide {
		compareRemainders = allocateWide(buckets, total, shares)
	} else {
		compareRemainders = allocateNarrow(buckets, total, sum, shares)
	}

	var assigned int64
	for _, s := range shares {
		assigned += s
	}
	leftover := total - assigned
	if leftover == 0 {
		return shares
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if c := compareRemainders(order[a], order[b]); c != 0 {
			return c > 0
		}
		return buckets[order[a]].ID < buckets[order[b]].ID
	})

	for _, i := range order[:leftover] {
		shares[i]++
	}
	return shares
}

// allocateNarrow fills shares when the weight sum fits in 64 bits. weight*total can
// still exceed 64 bits, so the quotient and remainder come from the full 128-bit
// product. Every remainder is over the same denominator (sum), which makes comparing
// the numerators an exact comparison of fractional parts.
func allocateNarrow(buckets []Bucket, total int64, sum uint64, shares []int64) func(i, j int) int {
	remainders := make([]uint64, len(buckets))
	for i, b := range buckets {
		hi, lo := bits.Mul64(uint64(b.Weight), uint64(total))
		quo, rem := bits.Div64(hi, lo, sum)
		shares[i] = int64(quo)
		remainders[i] = rem
	}
	return func(i, j int) int { return cmp.Compare(remainders[i], remainders[j]) }
}

// allocateWide is allocateNarrow for weight sums past 2^64.
func allocateWide(buckets []Bucket, total int64, shares []int64) func(i, j int) int {
	sum := new(big.Int)
	for _, b := range buckets {
		sum.Add(sum, big.NewInt(b.Weight))
	}

	t := big.NewInt(total)
	remainders := make([]*big.Int, len(buckets))
	for i, b := range buckets {
		product := new(big.Int).Mul(big.NewInt(b.Weight), t)
		quo, rem := product.QuoRem(product, sum, new(big.Int))
		// weight <= sum, so the quotient never exceeds total
		shares[i] = quo.Int64()
		remainders[i] = rem
	}
	return func(i, j int) int { return remainders[i].Cmp(remainders[j]) }
}
