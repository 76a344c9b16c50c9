package core

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income   TransactionType = "income"
	Expense  TransactionType = "expense"
	Transfer TransactionType = "transfer"
)

const (
	IncomeCategory  CategoryType = "income"
	ExpenseCategory CategoryType = "expense"
	AssetCategory   CategoryType = "asset"
)

const (
	Forever RecurrencePeriod = "forever"
	Monthly RecurrencePeriod = "monthly" // active for 12 consecutive months
	Yearly  RecurrencePeriod = "yearly"  // active in the start month of every year
)

const (
	InstallmentActive  InstallmentStatus = "active"
	InstallmentPaidOff InstallmentStatus = "paid_off"
)

const (
	PriorityHigh   WishlistPriority = "high"
	PriorityMedium WishlistPriority = "medium"
	PriorityLow    WishlistPriority = "low"
)

const (
	WishlistPlanned WishlistStatus = "planned"
	WishlistSaving  WishlistStatus = "saving"
	WishlistBought  WishlistStatus = "bought"
)

type (
	TransactionType   string
	CategoryType      string
	RecurrencePeriod  string
	InstallmentStatus string
	WishlistPriority  string
	WishlistStatus    string

	// Transaction is a single income, expense, or transfer entry.
	Transaction struct {
		ID            string          `json:"id"`
		Date          Date            `json:"date"`
		Type          TransactionType `json:"type"`
		Amount        decimal.Decimal `json:"amount"`
		CategoryID    string          `json:"categoryId"`
		SubcategoryID string          `json:"subcategoryId,omitempty"`
		Note          string          `json:"note,omitempty"`
		CreatedAt     time.Time       `json:"createdAt"`
		UpdatedAt     time.Time       `json:"updatedAt"`
	}

	// Subcategory is owned by a Category; its ID is unique within that category only.
	Subcategory struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	Category struct {
		ID            string        `json:"id"`
		Name          string        `json:"name"`
		Type          CategoryType  `json:"type"`
		Subcategories []Subcategory `json:"subcategories"`
		IsDefault     bool          `json:"isDefault"`
		CreatedAt     time.Time     `json:"createdAt"`
	}

	// SavingsDeposit is exclusively owned by its SavingsGoal.
	SavingsDeposit struct {
		ID        string          `json:"id"`
		SavingsID string          `json:"savingsId"`
		Amount    decimal.Decimal `json:"amount"`
		Date      Date            `json:"date"`
		Note      string          `json:"note,omitempty"`
		CreatedAt time.Time       `json:"createdAt"`
	}

	SavingsGoal struct {
		ID               string           `json:"id"`
		Name             string           `json:"name"`
		TargetAmount     decimal.Decimal  `json:"targetAmount"`
		TargetDate       Date             `json:"targetDate,omitempty"`
		LinkedWishlistID string           `json:"linkedWishlistId,omitempty"`
		Deposits         []SavingsDeposit `json:"deposits"`
		Note             string           `json:"note,omitempty"`
		CreatedAt        time.Time        `json:"createdAt"`
		UpdatedAt        time.Time        `json:"updatedAt"`
	}

	// InstallmentPayment is exclusively owned by its Installment.
	InstallmentPayment struct {
		ID            string          `json:"id"`
		InstallmentID string          `json:"installmentId"`
		Amount        decimal.Decimal `json:"amount"`
		Date          Date            `json:"date"`
		Note          string          `json:"note,omitempty"`
		CreatedAt     time.Time       `json:"createdAt"`
	}

	Installment struct {
		ID            string               `json:"id"`
		Name          string               `json:"name"`
		TotalAmount   decimal.Decimal      `json:"totalAmount"`
		MonthlyAmount decimal.Decimal      `json:"monthlyAmount"`
		TotalTenor    int                  `json:"totalTenor"` // months
		StartDate     Date                 `json:"startDate"`
		Status        InstallmentStatus    `json:"status"`
		Payments      []InstallmentPayment `json:"payments"`
		Note          string               `json:"note,omitempty"`
		CreatedAt     time.Time            `json:"createdAt"`
		UpdatedAt     time.Time            `json:"updatedAt"`
	}

	MonthlyNeed struct {
		ID                      string           `json:"id"`
		Name                    string           `json:"name"`
		BudgetAmount            decimal.Decimal  `json:"budgetAmount"`
		DueDay                  int              `json:"dueDay,omitempty"` // 1-31, 0 means unset
		RecurrencePeriod        RecurrencePeriod `json:"recurrencePeriod"`
		StartMonth              YearMonth        `json:"startMonth"`
		AutoGenerateTransaction bool             `json:"autoGenerateTransaction"`
		Note                    string           `json:"note,omitempty"`
		CreatedAt               time.Time        `json:"createdAt"`
		UpdatedAt               time.Time        `json:"updatedAt"`
	}

	// MonthlyNeedPayment records the actual spend for one need in one month.
	// At most one exists per (NeedID, YearMonth) pair.
	MonthlyNeedPayment struct {
		ID           string          `json:"id"`
		NeedID       string          `json:"needId"`
		YearMonth    YearMonth       `json:"yearMonth"`
		ActualAmount decimal.Decimal `json:"actualAmount"`
		PaidAt       time.Time       `json:"paidAt"`
	}

	WishlistItem struct {
		ID              string           `json:"id"`
		Name            string           `json:"name"`
		TargetPrice     decimal.Decimal  `json:"targetPrice"`
		Priority        WishlistPriority `json:"priority"`
		CurrentSaved    decimal.Decimal  `json:"currentSaved"`
		Status          WishlistStatus   `json:"status"`
		TargetDate      Date             `json:"targetDate,omitempty"`
		LinkedSavingsID string           `json:"linkedSavingsId,omitempty"` // weak reference, may not resolve
		Category        string           `json:"category,omitempty"`
		Note            string           `json:"note,omitempty"`
		CreatedAt       time.Time        `json:"createdAt"`
		UpdatedAt       time.Time        `json:"updatedAt"`
	}

	// ValuePoint is one entry in an asset's value history.
	ValuePoint struct {
		Date  Date            `json:"date"`
		Value decimal.Decimal `json:"value"`
	}

	Asset struct {
		ID           string          `json:"id"`
		Name         string          `json:"name"`
		Type         string          `json:"type"`
		IsLiability  bool            `json:"isLiability"`
		InitialValue decimal.Decimal `json:"initialValue"`
		CurrentValue decimal.Decimal `json:"currentValue"`
		ValueHistory []ValuePoint    `json:"valueHistory"`
		Note         string          `json:"note,omitempty"`
		CreatedAt    time.Time       `json:"createdAt"`
		UpdatedAt    time.Time       `json:"updatedAt"`
	}

	// Settings is the process-wide singleton configuration. It is created with
	// defaults on first run and mutated in place; reset recreates the defaults.
	Settings struct {
		Currency            string          `json:"currency"`
		Theme               string          `json:"theme"`
		EmergencyFundMonths int             `json:"emergencyFundMonths"`
		MonthlySavingsRate  decimal.Decimal `json:"monthlySavingsRate"`
		UpdatedAt           time.Time       `json:"updatedAt"`
	}
)

// DefaultSettings returns the settings used on first run and after a reset.
func DefaultSettings() Settings {
	return Settings{
		Currency:            "USD",
		Theme:               "system",
		EmergencyFundMonths: 6,
		MonthlySavingsRate:  decimal.Zero,
		UpdatedAt:           time.Now().UTC(),
	}
}

// IsValidTransactionType reports whether t is a known transaction type.
func IsValidTransactionType(t TransactionType) bool {
	switch t {
	case Income, Expense, Transfer:
		return true
	default:
		return false
	}
}

// IsValidCategoryType reports whether t is a known category type.
func IsValidCategoryType(t CategoryType) bool {
	switch t {
	case IncomeCategory, ExpenseCategory, AssetCategory:
		return true
	default:
		return false
	}
}

// IsValidRecurrencePeriod reports whether p is a known recurrence period.
func IsValidRecurrencePeriod(p RecurrencePeriod) bool {
	switch p {
	case Forever, Monthly, Yearly:
		return true
	default:
		return false
	}
}

// IsValidPriority reports whether p is a known wishlist priority.
func IsValidPriority(p WishlistPriority) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// IsValidWishlistStatus reports whether s is a known wishlist status.
func IsValidWishlistStatus(s WishlistStatus) bool {
	switch s {
	case WishlistPlanned, WishlistSaving, WishlistBought:
		return true
	default:
		return false
	}
}
