package core

import "github.com/shopspring/decimal"

// SavingsSummary is the derived view of one savings goal. It is recomputed
// from the canonical deposit list on every read and never cached.
type SavingsSummary struct {
	TotalSaved decimal.Decimal
	Remaining  decimal.Decimal
	Progress   float64 // 0-100
	IsComplete bool
}

// TotalSaved sums all deposit amounts. An empty list sums to zero.
func TotalSaved(deposits []SavingsDeposit) decimal.Decimal {
	total := decimal.Zero
	for _, d := range deposits {
		total = total.Add(d.Amount)
	}
	return total
}

// Progress returns saved/target as a percentage clamped to [0,100].
// A target of zero or less yields 0.
func Progress(saved, target decimal.Decimal) float64 {
	if target.Sign() <= 0 {
		return 0
	}
	pct := saved.Div(target).InexactFloat64() * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// SummarizeSavings derives the full view of a goal from its deposits.
func SummarizeSavings(g SavingsGoal) SavingsSummary {
	total := TotalSaved(g.Deposits)
	remaining := g.TargetAmount.Sub(total)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return SavingsSummary{
		TotalSaved: total,
		Remaining:  remaining,
		Progress:   Progress(total, g.TargetAmount),
		IsComplete: total.Cmp(g.TargetAmount) >= 0,
	}
}

// EstimateCompletion projects when a goal will be reached, based on the
// average monthly deposit over the span between the earliest and latest
// deposit dates (minimum one-month denominator). The projection runs forward
// from today, not from the last deposit date. At least two deposits are
// required; ok is false when no estimate can be made.
func EstimateCompletion(g SavingsGoal, today Date) (estimate Date, ok bool) {
	if len(g.Deposits) < 2 {
		return Date{}, false
	}

	earliest, latest := g.Deposits[0].Date, g.Deposits[0].Date
	for _, d := range g.Deposits[1:] {
		if d.Date.Before(earliest) {
			earliest = d.Date
		}
		if d.Date.After(latest) {
			latest = d.Date
		}
	}

	span := MonthsBetween(earliest, latest)
	if span < 1 {
		span = 1
	}

	total := TotalSaved(g.Deposits)
	avgMonthly := total.Div(decimal.NewFromInt(int64(span)))
	if !avgMonthly.IsPositive() {
		return Date{}, false
	}

	remaining := g.TargetAmount.Sub(total)
	if remaining.Sign() <= 0 {
		return today, true
	}

	months := remaining.Div(avgMonthly).Ceil().IntPart()
	return today.AddMonths(int(months)), true
}
