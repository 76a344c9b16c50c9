package services

import (
	"github.com/shopspring/decimal"

	"github.com/tzoee/personal-finance-manager-sub001/internal/core"
)

// MonthNeedStatus pairs a need with its derived state for one month.
type MonthNeedStatus struct {
	Need core.MonthlyNeed
	View core.NeedMonthView
}

// MonthSummary aggregates one month of activity across transactions and
// monthly needs. Everything here is recomputed on every call; collections
// are small and recomputation keeps the numbers impossible to go stale.
type MonthSummary struct {
	Month        core.YearMonth
	Income       decimal.Decimal
	Expenses     decimal.Decimal
	Net          decimal.Decimal
	NeedsBudget  decimal.Decimal
	NeedsPaid    decimal.Decimal
	NeedsUnpaid  int
	Needs        []MonthNeedStatus
	Transactions int
}

// MonthSummary derives the month's totals from current store state.
func (s *FinanceService) MonthSummary(month core.YearMonth) MonthSummary {
	out := MonthSummary{
		Month:       month,
		Income:      decimal.Zero,
		Expenses:    decimal.Zero,
		NeedsBudget: decimal.Zero,
		NeedsPaid:   decimal.Zero,
	}

	txs := s.stores.Transactions.ListMonth(month)
	out.Transactions = len(txs)
	for _, tx := range txs {
		switch tx.Type {
		case core.Income:
			out.Income = out.Income.Add(tx.Amount)
		case core.Expense:
			out.Expenses = out.Expenses.Add(tx.Amount)
		}
	}
	out.Net = out.Income.Sub(out.Expenses)

	for _, need := range s.stores.Needs.ListForMonth(month) {
		view := core.SummarizeNeedMonth(need, s.stores.Needs.PaymentFor(need.ID, month))
		out.NeedsBudget = out.NeedsBudget.Add(need.BudgetAmount)
		if view.IsPaid {
			out.NeedsPaid = out.NeedsPaid.Add(view.ActualAmount)
		} else {
			out.NeedsUnpaid++
		}
		out.Needs = append(out.Needs, MonthNeedStatus{Need: need, View: view})
	}

	return out
}

// Overview is the top-level dashboard aggregate.
type Overview struct {
	NetWorth       decimal.Decimal
	TotalSavings   decimal.Decimal
	ActiveSavings  int
	ActivePlans    int
	WishlistSaving int
}

func (s *FinanceService) Overview() Overview {
	out := Overview{
		NetWorth:     s.stores.Assets.NetWorth(),
		TotalSavings: decimal.Zero,
	}
	for _, g := range s.stores.Savings.List() {
		out.TotalSavings = out.TotalSavings.Add(core.TotalSaved(g.Deposits))
		if !core.SummarizeSavings(g).IsComplete {
			out.ActiveSavings++
		}
	}
	for _, ins := range s.stores.Installments.List() {
		if ins.Status == core.InstallmentActive {
			out.ActivePlans++
		}
	}
	for _, w := range s.stores.Wishlist.List() {
		if w.Status == core.WishlistSaving {
			out.WishlistSaving++
		}
	}
	return out
}
