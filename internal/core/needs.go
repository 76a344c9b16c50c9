package core

import "github.com/shopspring/decimal"

// ShouldShowNeed reports whether a monthly need is active in the given month.
//
// forever needs show in every month from the start month onward. monthly needs
// show for exactly 12 consecutive months from the start month. yearly needs
// show only in months sharing the start month's calendar month, in any year at
// or after its start year.
func ShouldShowNeed(n MonthlyNeed, month YearMonth) bool {
	if month.Before(n.StartMonth) {
		return false
	}
	switch n.RecurrencePeriod {
	case Forever:
		return true
	case Monthly:
		return month.Index()-n.StartMonth.Index() < 12
	case Yearly:
		return month.Month == n.StartMonth.Month
	default:
		return false
	}
}

// NeedMonthView is the derived payment state of one need in one month.
type NeedMonthView struct {
	IsPaid       bool
	ActualAmount decimal.Decimal
	Difference   decimal.Decimal // budget - actual
	IsOverBudget bool
}

// SummarizeNeedMonth derives a need's state for a month from its payment
// record, if any. A nil payment means unpaid with zero actual.
func SummarizeNeedMonth(n MonthlyNeed, payment *MonthlyNeedPayment) NeedMonthView {
	actual := decimal.Zero
	paid := false
	if payment != nil {
		actual = payment.ActualAmount
		paid = true
	}
	return NeedMonthView{
		IsPaid:       paid,
		ActualAmount: actual,
		Difference:   n.BudgetAmount.Sub(actual),
		IsOverBudget: actual.Cmp(n.BudgetAmount) > 0,
	}
}
