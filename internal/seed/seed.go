// Package seed produces a complete, internally consistent demo dataset for
// first runs. Every transaction references a seeded category and every child
// record carries the right owner ID.
package seed

import (
	"fmt"
	"time"

	"github.com/tzoee/personal-finance-manager-sub001/internal/core"
	"github.com/tzoee/personal-finance-manager-sub001/internal/snapshot"
)

// Generate builds a starter snapshot anchored at the given month. IDs are
// deterministic so repeated merge imports stay idempotent.
func Generate(month core.YearMonth) snapshot.Snapshot {
	now := time.Date(month.Year, month.Month, 1, 9, 0, 0, 0, time.UTC)
	day := func(d int) core.Date { return core.NewDate(month.Year, int(month.Month), d) }

	categories := []core.Category{
		{
			ID:   "seed-cat-salary",
			Name: "Salary",
			Type: core.IncomeCategory,
			Subcategories: []core.Subcategory{
				{ID: "seed-sub-base", Name: "Base"},
				{ID: "seed-sub-bonus", Name: "Bonus"},
			},
			IsDefault: true,
			CreatedAt: now,
		},
		{
			ID:   "seed-cat-food",
			Name: "Food",
			Type: core.ExpenseCategory,
			Subcategories: []core.Subcategory{
				{ID: "seed-sub-groceries", Name: "Groceries"},
				{ID: "seed-sub-restaurants", Name: "Restaurants"},
			},
			IsDefault: true,
			CreatedAt: now,
		},
		{
			ID:            "seed-cat-bills",
			Name:          "Bills",
			Type:          core.ExpenseCategory,
			Subcategories: []core.Subcategory{},
			IsDefault:     true,
			CreatedAt:     now,
		},
		{
			ID:            "seed-cat-shopping",
			Name:          "Shopping",
			Type:          core.ExpenseCategory,
			Subcategories: []core.Subcategory{},
			IsDefault:     true,
			CreatedAt:     now,
		},
	}

	transactions := []core.Transaction{
		{
			ID:            "seed-tx-001",
			Date:          day(1),
			Type:          core.Income,
			Amount:        core.MustAmount("5200"),
			CategoryID:    "seed-cat-salary",
			SubcategoryID: "seed-sub-base",
			Note:          "Monthly salary",
		},
		{
			ID:            "seed-tx-002",
			Date:          day(3),
			Type:          core.Expense,
			Amount:        core.MustAmount("182.40"),
			CategoryID:    "seed-cat-food",
			SubcategoryID: "seed-sub-groceries",
			Note:          "Weekly groceries",
		},
		{
			ID:         "seed-tx-003",
			Date:       day(5),
			Type:       core.Expense,
			Amount:     core.MustAmount("1200"),
			CategoryID: "seed-cat-bills",
			Note:       "Rent",
		},
		{
			ID:            "seed-tx-004",
			Date:          day(9),
			Type:          core.Expense,
			Amount:        core.MustAmount("64.90"),
			CategoryID:    "seed-cat-food",
			SubcategoryID: "seed-sub-restaurants",
			Note:          "Dinner out",
		},
	}
	for i := range transactions {
		transactions[i].CreatedAt = now
		transactions[i].UpdatedAt = now
	}

	savings := []core.SavingsGoal{{
		ID:           "seed-sav-emergency",
		Name:         "Emergency Fund",
		TargetAmount: core.MustAmount("15000"),
		Deposits: []core.SavingsDeposit{
			{
				ID:        "seed-dep-001",
				SavingsID: "seed-sav-emergency",
				Amount:    core.MustAmount("2000"),
				Date:      day(1).AddMonths(-2),
				CreatedAt: now,
			},
			{
				ID:        "seed-dep-002",
				SavingsID: "seed-sav-emergency",
				Amount:    core.MustAmount("1500"),
				Date:      day(1).AddMonths(-1),
				CreatedAt: now,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}}

	wishlist := []core.WishlistItem{
		{
			ID:           "seed-wish-camera",
			Name:         "Mirrorless Camera",
			TargetPrice:  core.MustAmount("1800"),
			Priority:     core.PriorityHigh,
			CurrentSaved: core.MustAmount("600"),
			Status:       core.WishlistSaving,
			Category:     "Electronics",
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           "seed-wish-desk",
			Name:         "Standing Desk",
			TargetPrice:  core.MustAmount("550"),
			Priority:     core.PriorityLow,
			CurrentSaved: core.MustAmount("0"),
			Status:       core.WishlistPlanned,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}

	installments := []core.Installment{{
		ID:            "seed-ins-laptop",
		Name:          "Laptop",
		TotalAmount:   core.MustAmount("2400"),
		MonthlyAmount: core.MustAmount("200"),
		TotalTenor:    12,
		StartDate:     day(1).AddMonths(-3),
		Status:        core.InstallmentActive,
		Payments: []core.InstallmentPayment{
			{
				ID:            "seed-pay-001",
				InstallmentID: "seed-ins-laptop",
				Amount:        core.MustAmount("200"),
				Date:          day(1).AddMonths(-2),
				CreatedAt:     now,
			},
			{
				ID:            "seed-pay-002",
				InstallmentID: "seed-ins-laptop",
				Amount:        core.MustAmount("200"),
				Date:          day(1).AddMonths(-1),
				CreatedAt:     now,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}}

	needs := []core.MonthlyNeed{
		{
			ID:                      "seed-need-rent",
			Name:                    "Rent",
			BudgetAmount:            core.MustAmount("1200"),
			DueDay:                  5,
			RecurrencePeriod:        core.Forever,
			StartMonth:              month.AddMonths(-6),
			AutoGenerateTransaction: false,
			CreatedAt:               now,
			UpdatedAt:               now,
		},
		{
			ID:               "seed-need-insurance",
			Name:             "Car Insurance",
			BudgetAmount:     core.MustAmount("720"),
			RecurrencePeriod: core.Yearly,
			StartMonth:       core.NewYearMonth(month.Year, 3),
			CreatedAt:        now,
			UpdatedAt:        now,
		},
	}

	payments := []core.MonthlyNeedPayment{{
		ID:           "seed-np-001",
		NeedID:       "seed-need-rent",
		YearMonth:    month.AddMonths(-1),
		ActualAmount: core.MustAmount("1200"),
		PaidAt:       now.AddDate(0, -1, 0),
	}}

	assets := []core.Asset{
		{
			ID:           "seed-asset-checking",
			Name:         "Checking Account",
			Type:         "cash",
			InitialValue: core.MustAmount("4200"),
			CurrentValue: core.MustAmount("4750"),
			ValueHistory: []core.ValuePoint{
				{Date: day(1).AddMonths(-2), Value: core.MustAmount("4200")},
				{Date: day(1), Value: core.MustAmount("4750")},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:           "seed-asset-car-loan",
			Name:         "Car Loan",
			Type:         "loan",
			IsLiability:  true,
			InitialValue: core.MustAmount("9000"),
			CurrentValue: core.MustAmount("7500"),
			ValueHistory: []core.ValuePoint{
				{Date: day(1).AddMonths(-2), Value: core.MustAmount("9000")},
				{Date: day(1), Value: core.MustAmount("7500")},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	settings := core.DefaultSettings()
	settings.MonthlySavingsRate = core.MustAmount("800")
	settings.UpdatedAt = now

	return snapshot.Snapshot{
		Version:             snapshot.Version,
		Settings:            settings,
		Transactions:        transactions,
		Categories:          categories,
		Savings:             savings,
		Wishlist:            wishlist,
		Installments:        installments,
		MonthlyNeeds:        needs,
		MonthlyNeedPayments: payments,
		Assets:              assets,
		ExportedAt:          now,
	}
}

// Describe returns a short human summary of a generated snapshot.
func Describe(s snapshot.Snapshot) string {
	return fmt.Sprintf("%d categories, %d transactions, %d savings goals, %d wishlist items, %d installments, %d needs, %d assets",
		len(s.Categories), len(s.Transactions), len(s.Savings),
		len(s.Wishlist), len(s.Installments), len(s.MonthlyNeeds), len(s.Assets))
}
