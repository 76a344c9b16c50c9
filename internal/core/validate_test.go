package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func fields(r ValidationResult) []string {
	out := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.Field
	}
	return out
}

func TestValidateTransactionCollectsAllErrors(t *testing.T) {
	r := ValidateTransaction(Transaction{Amount: decimal.Zero})
	assert.False(t, r.IsValid())
	assert.ElementsMatch(t, []string{"date", "type", "amount", "categoryId"}, fields(r))

	ok := ValidateTransaction(Transaction{
		Date:       MustParseDate("2024-05-01"),
		Type:       Expense,
		Amount:     MustAmount("12.50"),
		CategoryID: "cat-1",
	})
	assert.True(t, ok.IsValid())
}

func TestValidateCategoryUniqueness(t *testing.T) {
	existing := []string{"Groceries", "Rent"}

	tests := []struct {
		name    string
		input   string
		wantDup bool
	}{
		{"new name", "Transport", false},
		{"exact duplicate", "Groceries", true},
		{"case-insensitive duplicate", "gRoCeRiEs", true},
		{"whitespace-padded duplicate", "  Rent  ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ValidateCategory(Category{Name: tt.input, Type: ExpenseCategory}, existing)
			assert.Equal(t, tt.wantDup, !r.IsValid())
		})
	}
}

func TestValidateMonthlyNeedDueDayRange(t *testing.T) {
	base := MonthlyNeed{
		Name:             "Rent",
		BudgetAmount:     MustAmount("900"),
		RecurrencePeriod: Forever,
		StartMonth:       MustParseYearMonth("2024-01"),
	}

	for _, day := range []int{0, 1, 15, 31} {
		n := base
		n.DueDay = day
		assert.True(t, ValidateMonthlyNeed(n).IsValid(), "dueDay %d should be valid", day)
	}
	for _, day := range []int{-1, 32, 99} {
		n := base
		n.DueDay = day
		assert.False(t, ValidateMonthlyNeed(n).IsValid(), "dueDay %d should be invalid", day)
	}
}

func TestValidateWishlistItem(t *testing.T) {
	r := ValidateWishlistItem(WishlistItem{
		Name:         " ",
		TargetPrice:  decimal.Zero,
		CurrentSaved: MustAmount("10").Neg(),
		Priority:     "urgent",
		Status:       "dreaming",
	})
	assert.ElementsMatch(t, []string{"name", "targetPrice", "currentSaved", "priority", "status"}, fields(r))
}

func TestValidateAssetAllowsZeroValues(t *testing.T) {
	r := ValidateAsset(Asset{Name: "Cash", InitialValue: decimal.Zero, CurrentValue: decimal.Zero})
	assert.True(t, r.IsValid())

	r = ValidateAsset(Asset{Name: "Cash", InitialValue: MustAmount("1").Neg(), CurrentValue: decimal.Zero})
	assert.False(t, r.IsValid())
}

func TestValidateInstallment(t *testing.T) {
	r := ValidateInstallment(Installment{})
	assert.ElementsMatch(t, []string{"name", "monthlyAmount", "totalTenor", "startDate"}, fields(r))

	ok := ValidateInstallment(Installment{
		Name:          "Laptop",
		TotalAmount:   MustAmount("12000"),
		MonthlyAmount: MustAmount("1000"),
		TotalTenor:    12,
		StartDate:     MustParseDate("2024-01-01"),
	})
	assert.True(t, ok.IsValid())
}
