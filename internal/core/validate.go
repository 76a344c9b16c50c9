package core

import "strings"

// FieldError describes one violated rule on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult carries every violated rule for one input. Validators never
// short-circuit: all independent rules are checked and all errors collected.
// Invalid input is reported as data, never as a Go error.
type ValidationResult struct {
	Errors []FieldError `json:"errors"`
}

// IsValid reports whether no rule was violated.
func (r ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

// ValidateTransaction checks a transaction input prior to store insertion.
func ValidateTransaction(t Transaction) ValidationResult {
	var r ValidationResult
	if t.Date.IsZero() {
		r.add("date", "date is required")
	}
	if !IsValidTransactionType(t.Type) {
		r.add("type", "type must be income, expense, or transfer")
	}
	if !t.Amount.IsPositive() {
		r.add("amount", "amount must be greater than zero")
	}
	if strings.TrimSpace(t.CategoryID) == "" {
		r.add("categoryId", "category is required")
	}
	return r
}

// ValidateCategory checks a category input. existingNames is the
// caller-supplied list of category names already in the store; comparison is
// case-insensitive. The validator never queries storage itself.
func ValidateCategory(c Category, existingNames []string) ValidationResult {
	var r ValidationResult
	name := strings.TrimSpace(c.Name)
	if name == "" {
		r.add("name", "name is required")
	}
	if !IsValidCategoryType(c.Type) {
		r.add("type", "type must be income, expense, or asset")
	}
	for _, existing := range existingNames {
		if strings.EqualFold(strings.TrimSpace(existing), name) && name != "" {
			r.add("name", "a category with this name already exists")
			break
		}
	}
	return r
}

// ValidateSavingsGoal checks a savings goal input.
func ValidateSavingsGoal(g SavingsGoal) ValidationResult {
	var r ValidationResult
	if strings.TrimSpace(g.Name) == "" {
		r.add("name", "name is required")
	}
	if !g.TargetAmount.IsPositive() {
		r.add("targetAmount", "target amount must be greater than zero")
	}
	return r
}

// ValidateSavingsDeposit checks a deposit input.
func ValidateSavingsDeposit(d SavingsDeposit) ValidationResult {
	var r ValidationResult
	if !d.Amount.IsPositive() {
		r.add("amount", "amount must be greater than zero")
	}
	if d.Date.IsZero() {
		r.add("date", "date is required")
	}
	return r
}

// ValidateInstallment checks an installment input.
func ValidateInstallment(ins Installment) ValidationResult {
	var r ValidationResult
	if strings.TrimSpace(ins.Name) == "" {
		r.add("name", "name is required")
	}
	if !ins.MonthlyAmount.IsPositive() {
		r.add("monthlyAmount", "monthly amount must be greater than zero")
	}
	if ins.TotalTenor <= 0 {
		r.add("totalTenor", "tenor must be at least one month")
	}
	if ins.StartDate.IsZero() {
		r.add("startDate", "start date is required")
	}
	return r
}

// ValidateInstallmentPayment checks a payment input.
func ValidateInstallmentPayment(p InstallmentPayment) ValidationResult {
	var r ValidationResult
	if !p.Amount.IsPositive() {
		r.add("amount", "amount must be greater than zero")
	}
	if p.Date.IsZero() {
		r.add("date", "date is required")
	}
	return r
}

// ValidateMonthlyNeed checks a monthly need input.
func ValidateMonthlyNeed(n MonthlyNeed) ValidationResult {
	var r ValidationResult
	if strings.TrimSpace(n.Name) == "" {
		r.add("name", "name is required")
	}
	if !n.BudgetAmount.IsPositive() {
		r.add("budgetAmount", "budget amount must be greater than zero")
	}
	if n.DueDay != 0 && (n.DueDay < 1 || n.DueDay > 31) {
		r.add("dueDay", "due day must be between 1 and 31")
	}
	if !IsValidRecurrencePeriod(n.RecurrencePeriod) {
		r.add("recurrencePeriod", "recurrence period must be forever, monthly, or yearly")
	}
	if n.StartMonth.IsZero() {
		r.add("startMonth", "start month is required")
	}
	return r
}

// ValidateWishlistItem checks a wishlist item input.
func ValidateWishlistItem(w WishlistItem) ValidationResult {
	var r ValidationResult
	if strings.TrimSpace(w.Name) == "" {
		r.add("name", "name is required")
	}
	if !w.TargetPrice.IsPositive() {
		r.add("targetPrice", "target price must be greater than zero")
	}
	if w.CurrentSaved.IsNegative() {
		r.add("currentSaved", "saved amount cannot be negative")
	}
	if !IsValidPriority(w.Priority) {
		r.add("priority", "priority must be high, medium, or low")
	}
	if !IsValidWishlistStatus(w.Status) {
		r.add("status", "status must be planned, saving, or bought")
	}
	return r
}

// ValidateAsset checks an asset input.
func ValidateAsset(a Asset) ValidationResult {
	var r ValidationResult
	if strings.TrimSpace(a.Name) == "" {
		r.add("name", "name is required")
	}
	if a.InitialValue.IsNegative() {
		r.add("initialValue", "initial value cannot be negative")
	}
	if a.CurrentValue.IsNegative() {
		r.add("currentValue", "current value cannot be negative")
	}
	return r
}
