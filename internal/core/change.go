package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	cent    = decimal.New(1, -2)
)

// PercentChange returns the percentage change from previous to current.
// A zero previous value yields 100 when current is positive and 0 otherwise.
func PercentChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return current.Sub(previous).Mul(hundred).Div(previous)
}

// Percentage returns part as a percentage of whole, or 0 when whole is 0.
func Percentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole)
}

// RoundPercent rounds a percentage to two decimal places for presentation.
func RoundPercent(p decimal.Decimal) decimal.Decimal {
	return p.Round(2)
}

// apportion returns each part's share of whole, rounded to two decimals with
// the largest-remainder method: the rounded shares add up to the rounded sum
// of the exact shares, capped at 100.
func apportion(parts []decimal.Decimal, whole decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(parts))
	if whole.IsZero() {
		for i := range out {
			out[i] = decimal.Zero
		}
		return out
	}

	exact := make([]decimal.Decimal, len(parts))
	sumExact := decimal.Zero
	for i, p := range parts {
		if p.IsNegative() || whole.IsNegative() {
			// negative totals: no apportioning, round each share on its own
			for j, q := range parts {
				out[j] = RoundPercent(Percentage(q, whole))
			}
			return out
		}
		exact[i] = Percentage(p, whole)
		sumExact = sumExact.Add(exact[i])
	}

	target := decimal.Min(RoundPercent(sumExact), hundred)
	assigned := decimal.Zero
	for i, e := range exact {
		out[i] = e.Truncate(2)
		assigned = assigned.Add(out[i])
	}

	order := make([]int, len(parts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra := exact[order[a]].Sub(out[order[a]])
		rb := exact[order[b]].Sub(out[order[b]])
		return ra.GreaterThan(rb)
	})

	for _, i := range order {
		if !assigned.LessThan(target) {
			break
		}
		out[i] = out[i].Add(cent)
		assigned = assigned.Add(cent)
	}
	return out
}
