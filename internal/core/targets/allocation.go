// Package targets splits monthly sales targets across employees and calendar days using integer
// arithmetic that always reconciles to the whole.
package targets

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// ErrNoShares is returned when there is nobody to allocate to.
var ErrNoShares = errors.New("allocation needs at least one share")

// Share is one participant of an allocation. Weights only need to be proportional.
type Share struct {
	Key    string
	Weight decimal.Decimal
}

// Allocation is the integer amount given to a share.
type Allocation struct {
	Key    string
	Amount int64
}

// AllocateLargestRemainder splits total across shares in proportion to their weights.
//
// Every raw share total*w/sum(w) is floored, then the leftover units go one at a time to the
// largest fractional remainders. Equal remainders are broken by input order. When every weight
// is zero the total is split evenly the same way.
func AllocateLargestRemainder(total int64, shares []Share) ([]Allocation, error) {
	if len(shares) == 0 {
		return nil, ErrNoShares
	}
	if total < 0 {
		return nil, fmt.Errorf("allocation total must be non-negative, got %d", total)
	}

	weights := make([]decimal.Decimal, len(shares))
	sum := decimal.Zero
	for i, s := range shares {
		if s.Weight.IsNegative() {
			return nil, fmt.Errorf("share %s has negative weight %s", s.Key, s.Weight)
		}
		weights[i] = s.Weight
		sum = sum.Add(s.Weight)
	}
	if sum.IsZero() {
		for i := range weights {
			weights[i] = decimal.NewFromInt(1)
		}
		sum = decimal.NewFromInt(int64(len(weights)))
	}

	whole := decimal.NewFromInt(total)
	out := make([]Allocation, len(shares))
	remainders := make([]decimal.Decimal, len(shares))
	var floors int64
	for i, s := range shares {
		// total*w = sum*q + r with 0 <= r < sum, so q is the exact floor and r/sum the fraction
		q, r := whole.Mul(weights[i]).QuoRem(sum, 0)
		out[i] = Allocation{Key: s.Key, Amount: q.IntPart()}
		remainders[i] = r
		floors += out[i].Amount
	}

	leftover := total - floors
	if leftover < 0 || leftover >= int64(len(shares)) {
		return nil, fmt.Errorf("largest remainder leftover %d out of range for %d shares", leftover, len(shares))
	}

	order := make([]int, len(shares))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]].GreaterThan(remainders[order[b]])
	})
	for i := int64(0); i < leftover; i++ {
		out[order[i]].Amount++
	}
	return out, nil
}

// Sum adds up allocated amounts.
func Sum(allocs []Allocation) int64 {
	var s int64
	for _, a := range allocs {
		s += a.Amount
	}
	return s
}
