package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// WishlistProgress returns currentSaved/targetPrice as a percentage clamped
// to [0,100]; 0 when the target price is zero or less.
func WishlistProgress(w WishlistItem) float64 {
	return Progress(w.CurrentSaved, w.TargetPrice)
}

// MonthsToTarget estimates how many months of saving remain at the assumed
// monthly rate. It returns 0 when the target is already met and ok=false when
// the rate is not positive.
func MonthsToTarget(w WishlistItem, monthlyRate decimal.Decimal) (months int64, ok bool) {
	remaining := w.TargetPrice.Sub(w.CurrentSaved)
	if remaining.Sign() <= 0 {
		return 0, true
	}
	if !monthlyRate.IsPositive() {
		return 0, false
	}
	return remaining.Div(monthlyRate).Ceil().IntPart(), true
}

// WishlistSortKey selects the ordering for SortWishlist.
type WishlistSortKey string

const (
	SortByPriority WishlistSortKey = "priority" // higher priority first
	SortByProgress WishlistSortKey = "progress" // most progress first
	SortByDate     WishlistSortKey = "date"     // most recently created first
)

var priorityRank = map[WishlistPriority]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

// SortWishlist orders items in place by the given key. Unknown keys leave the
// slice untouched.
func SortWishlist(items []WishlistItem, key WishlistSortKey) {
	switch key {
	case SortByPriority:
		sort.SliceStable(items, func(i, j int) bool {
			return priorityRank[items[i].Priority] < priorityRank[items[j].Priority]
		})
	case SortByProgress:
		sort.SliceStable(items, func(i, j int) bool {
			return WishlistProgress(items[i]) > WishlistProgress(items[j])
		})
	case SortByDate:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	}
}
