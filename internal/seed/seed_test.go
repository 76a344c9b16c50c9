package seed

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tzoee/personal-finance-manager-sub001/internal/core"
	"github.com/tzoee/personal-finance-manager-sub001/internal/snapshot"
)

func TestGenerateIsInternallyConsistent(t *testing.T) {
	s := Generate(core.NewYearMonth(2024, 6))

	require.Equal(t, snapshot.Version, s.Version)
	require.False(t, s.IsEmpty())

	categories := make(map[string]core.Category, len(s.Categories))
	for _, c := range s.Categories {
		categories[c.ID] = c
	}

	for _, tx := range s.Transactions {
		cat, ok := categories[tx.CategoryID]
		require.True(t, ok, "transaction %s references unknown category %s", tx.ID, tx.CategoryID)
		if tx.SubcategoryID == "" {
			continue
		}
		found := false
		for _, sub := range cat.Subcategories {
			if sub.ID == tx.SubcategoryID {
				found = true
				break
			}
		}
		require.True(t, found, "transaction %s references unknown subcategory %s", tx.ID, tx.SubcategoryID)
	}

	for _, goal := range s.Savings {
		for _, dep := range goal.Deposits {
			require.Equal(t, goal.ID, dep.SavingsID)
		}
	}
	for _, ins := range s.Installments {
		for _, p := range ins.Payments {
			require.Equal(t, ins.ID, p.InstallmentID)
		}
	}

	needs := make(map[string]bool, len(s.MonthlyNeeds))
	for _, n := range s.MonthlyNeeds {
		needs[n.ID] = true
	}
	for _, p := range s.MonthlyNeedPayments {
		require.True(t, needs[p.NeedID], "payment %s references unknown need %s", p.ID, p.NeedID)
	}

	for _, a := range s.Assets {
		require.NotEmpty(t, a.ValueHistory)
		last := a.ValueHistory[len(a.ValueHistory)-1]
		require.True(t, last.Value.Equal(a.CurrentValue))
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	month := core.NewYearMonth(2024, 6)
	a := Generate(month)
	b := Generate(month)
	require.Equal(t, a, b)
}

func TestGenerateValidates(t *testing.T) {
	s := Generate(core.NewYearMonth(2024, 6))

	var existingNames []string
	for _, c := range s.Categories {
		require.Empty(t, core.ValidateCategory(c, existingNames).Errors, "category %s", c.Name)
		existingNames = append(existingNames, c.Name)
	}
	for _, tx := range s.Transactions {
		require.Empty(t, core.ValidateTransaction(tx).Errors, "transaction %s", tx.ID)
	}
	for _, n := range s.MonthlyNeeds {
		require.Empty(t, core.ValidateMonthlyNeed(n).Errors, "need %s", n.Name)
	}
	for _, ins := range s.Installments {
		require.Empty(t, core.ValidateInstallment(ins).Errors, "installment %s", ins.Name)
	}
}
