package core

import "github.com/shopspring/decimal"

// NetWorth sums current values of non-liability assets and subtracts current
// values of liabilities.
func NetWorth(assets []Asset) decimal.Decimal {
	total := decimal.Zero
	for _, a := range assets {
		if a.IsLiability {
			total = total.Sub(a.CurrentValue)
		} else {
			total = total.Add(a.CurrentValue)
		}
	}
	return total
}

// AssetChange is the derived value movement of one asset since creation.
type AssetChange struct {
	Change        decimal.Decimal
	ChangePercent float64 // 0 when initial value is zero
}

// SummarizeAsset derives the value change against the initial value.
func SummarizeAsset(a Asset) AssetChange {
	change := a.CurrentValue.Sub(a.InitialValue)
	pct := 0.0
	if !a.InitialValue.IsZero() {
		pct = change.Div(a.InitialValue).InexactFloat64() * 100
	}
	return AssetChange{Change: change, ChangePercent: pct}
}
