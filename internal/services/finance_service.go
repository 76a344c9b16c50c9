package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tzoee/personal-finance-manager-sub001/internal/amqp"
	"github.com/tzoee/personal-finance-manager-sub001/internal/core"
	"github.com/tzoee/personal-finance-manager-sub001/internal/snapshot"
	"github.com/tzoee/personal-finance-manager-sub001/internal/store"
)

// ValidationError carries every violated field rule for one input. It
// matches store.ErrValidation under errors.Is.
type ValidationError struct {
	Result core.ValidationResult
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Result.Errors))
	for _, fe := range e.Result.Errors {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == store.ErrValidation }

// ChangePublisher announces dataset changes to interested consumers. A nil
// publisher is fine; changes then stay local.
type ChangePublisher interface {
	PublishChange(ctx context.Context, entity, action string) error
}

// FinanceService orchestrates operations that span validation, multiple
// stores, and change notification. Single-entity reads go straight to the
// stores; everything that mutates comes through here.
type FinanceService struct {
	stores    snapshot.Stores
	publisher ChangePublisher
	now       func() time.Time
}

func NewFinanceService(stores snapshot.Stores, publisher ChangePublisher) *FinanceService {
	return &FinanceService{
		stores:    stores,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Stores exposes the underlying stores for read paths.
func (s *FinanceService) Stores() snapshot.Stores { return s.stores }

func (s *FinanceService) publish(ctx context.Context, entity, action string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishChange(ctx, entity, action); err != nil {
		// Change messages are advisory. Local state is already committed.
		slog.ErrorContext(ctx, "Failed to publish change message",
			"entity", entity,
			"action", action,
			"error", err)
	}
}

func (s *FinanceService) AddTransaction(ctx context.Context, input core.Transaction) (core.Transaction, error) {
	if r := core.ValidateTransaction(input); !r.IsValid() {
		return core.Transaction{}, &ValidationError{Result: r}
	}
	added, err := s.stores.Transactions.Add(ctx, input)
	if err != nil {
		return core.Transaction{}, err
	}
	s.publish(ctx, amqp.EntityTransaction, amqp.ActionCreated)
	return added, nil
}

func (s *FinanceService) UpdateTransaction(ctx context.Context, id string, mutate func(*core.Transaction)) error {
	// Rehearse the mutation on a copy so invalid input never reaches the
	// store.
	cur, err := s.stores.Transactions.Get(id)
	if err != nil {
		return err
	}
	mutate(&cur)
	if r := core.ValidateTransaction(cur); !r.IsValid() {
		return &ValidationError{Result: r}
	}
	if err := s.stores.Transactions.Update(ctx, id, mutate); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntityTransaction, amqp.ActionUpdated)
	return nil
}

func (s *FinanceService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.stores.Transactions.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntityTransaction, amqp.ActionDeleted)
	return nil
}

func (s *FinanceService) AddCategory(ctx context.Context, input core.Category) (core.Category, error) {
	if r := core.ValidateCategory(input, s.stores.Categories.Names()); !r.IsValid() {
		return core.Category{}, &ValidationError{Result: r}
	}
	added, err := s.stores.Categories.Add(ctx, input)
	if err != nil {
		return core.Category{}, err
	}
	s.publish(ctx, amqp.EntityCategory, amqp.ActionCreated)
	return added, nil
}

func (s *FinanceService) AddSavingsGoal(ctx context.Context, input core.SavingsGoal) (core.SavingsGoal, error) {
	if r := core.ValidateSavingsGoal(input); !r.IsValid() {
		return core.SavingsGoal{}, &ValidationError{Result: r}
	}
	added, err := s.stores.Savings.Add(ctx, input)
	if err != nil {
		return core.SavingsGoal{}, err
	}
	s.publish(ctx, amqp.EntitySavings, amqp.ActionCreated)
	return added, nil
}

func (s *FinanceService) AddSavingsDeposit(ctx context.Context, goalID string, input core.SavingsDeposit) (core.SavingsDeposit, error) {
	if r := core.ValidateSavingsDeposit(input); !r.IsValid() {
		return core.SavingsDeposit{}, &ValidationError{Result: r}
	}
	added, err := s.stores.Savings.AddDeposit(ctx, goalID, input)
	if err != nil {
		return core.SavingsDeposit{}, err
	}
	s.publish(ctx, amqp.EntitySavings, amqp.ActionUpdated)
	return added, nil
}

func (s *FinanceService) AddInstallment(ctx context.Context, input core.Installment) (core.Installment, error) {
	if r := core.ValidateInstallment(input); !r.IsValid() {
		return core.Installment{}, &ValidationError{Result: r}
	}
	added, err := s.stores.Installments.Add(ctx, input)
	if err != nil {
		return core.Installment{}, err
	}
	s.publish(ctx, amqp.EntityInstallment, amqp.ActionCreated)
	return added, nil
}

// PayInstallment records one payment and books a matching expense
// transaction so the month's spending reflects it.
func (s *FinanceService) PayInstallment(ctx context.Context, installmentID string, input core.InstallmentPayment) (core.InstallmentPayment, error) {
	if r := core.ValidateInstallmentPayment(input); !r.IsValid() {
		return core.InstallmentPayment{}, &ValidationError{Result: r}
	}
	ins, err := s.stores.Installments.Get(installmentID)
	if err != nil {
		return core.InstallmentPayment{}, err
	}
	added, err := s.stores.Installments.AddPayment(ctx, installmentID, input)
	if err != nil {
		return core.InstallmentPayment{}, err
	}
	_, err = s.stores.Transactions.Add(ctx, core.Transaction{
		Date:       added.Date,
		Type:       core.Expense,
		Amount:     added.Amount,
		CategoryID: installmentCategoryID(s.stores.Categories),
		Note:       fmt.Sprintf("Installment payment: %s", ins.Name),
	})
	if err != nil {
		slog.ErrorContext(ctx, "Failed to book installment transaction",
			"installment", installmentID,
			"error", err)
	}
	s.publish(ctx, amqp.EntityInstallment, amqp.ActionUpdated)
	return added, nil
}

func (s *FinanceService) AddMonthlyNeed(ctx context.Context, input core.MonthlyNeed) (core.MonthlyNeed, error) {
	if r := core.ValidateMonthlyNeed(input); !r.IsValid() {
		return core.MonthlyNeed{}, &ValidationError{Result: r}
	}
	added, err := s.stores.Needs.Add(ctx, input)
	if err != nil {
		return core.MonthlyNeed{}, err
	}
	s.publish(ctx, amqp.EntityNeed, amqp.ActionCreated)
	return added, nil
}

// PayNeed records the actual spend for one need in one month. When the need
// is flagged for it, a matching expense transaction is booked on the due day
// of that month.
func (s *FinanceService) PayNeed(ctx context.Context, needID string, month core.YearMonth, actual decimal.Decimal) (core.MonthlyNeedPayment, error) {
	need, err := s.stores.Needs.Get(needID)
	if err != nil {
		return core.MonthlyNeedPayment{}, err
	}
	paid, err := s.stores.Needs.Pay(ctx, needID, month, actual)
	if err != nil {
		return core.MonthlyNeedPayment{}, err
	}
	if need.AutoGenerateTransaction {
		day := need.DueDay
		if day == 0 {
			day = 1
		}
		_, err := s.stores.Transactions.Add(ctx, core.Transaction{
			Date:       core.NewDate(month.Year, int(month.Month), day),
			Type:       core.Expense,
			Amount:     actual,
			CategoryID: needCategoryID(s.stores.Categories),
			Note:       fmt.Sprintf("Monthly need: %s", need.Name),
		})
		if err != nil {
			slog.ErrorContext(ctx, "Failed to book need transaction",
				"need", needID,
				"month", month.String(),
				"error", err)
		}
	}
	s.publish(ctx, amqp.EntityNeed, amqp.ActionUpdated)
	return paid, nil
}

func (s *FinanceService) AddWishlistItem(ctx context.Context, input core.WishlistItem) (core.WishlistItem, error) {
	if r := core.ValidateWishlistItem(input); !r.IsValid() {
		return core.WishlistItem{}, &ValidationError{Result: r}
	}
	added, err := s.stores.Wishlist.Add(ctx, input)
	if err != nil {
		return core.WishlistItem{}, err
	}
	s.publish(ctx, amqp.EntityWishlist, amqp.ActionCreated)
	return added, nil
}

// BuyWishlistItem marks the item bought at the given price, on the given
// date, and books the purchase as an expense transaction.
func (s *FinanceService) BuyWishlistItem(ctx context.Context, id string, price decimal.Decimal, date core.Date) error {
	item, err := s.stores.Wishlist.Get(id)
	if err != nil {
		return err
	}
	if item.Status == core.WishlistBought {
		return fmt.Errorf("%w: wishlist item %s", store.ErrAlreadyPaid, id)
	}
	if price.IsZero() {
		price = item.TargetPrice
	}
	err = s.stores.Wishlist.Update(ctx, id, func(w *core.WishlistItem) {
		w.Status = core.WishlistBought
	})
	if err != nil {
		return err
	}
	_, err = s.stores.Transactions.Add(ctx, core.Transaction{
		Date:       date,
		Type:       core.Expense,
		Amount:     price,
		CategoryID: wishlistCategoryID(s.stores.Categories),
		Note:       fmt.Sprintf("Wishlist purchase: %s", item.Name),
	})
	if err != nil {
		slog.ErrorContext(ctx, "Failed to book wishlist transaction",
			"item", id,
			"error", err)
	}
	s.publish(ctx, amqp.EntityWishlist, amqp.ActionUpdated)
	return nil
}

func (s *FinanceService) AddAsset(ctx context.Context, input core.Asset) (core.Asset, error) {
	if r := core.ValidateAsset(input); !r.IsValid() {
		return core.Asset{}, &ValidationError{Result: r}
	}
	added, err := s.stores.Assets.Add(ctx, input)
	if err != nil {
		return core.Asset{}, err
	}
	s.publish(ctx, amqp.EntityAsset, amqp.ActionCreated)
	return added, nil
}

func (s *FinanceService) UpdateAssetValue(ctx context.Context, id string, value decimal.Decimal, date core.Date) error {
	if err := s.stores.Assets.UpdateValue(ctx, id, value, date); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntityAsset, amqp.ActionUpdated)
	return nil
}

func (s *FinanceService) UpdateSettings(ctx context.Context, mutate func(*core.Settings)) error {
	if err := s.stores.Settings.Update(ctx, mutate); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntitySettings, amqp.ActionUpdated)
	return nil
}

// categoryByName finds a category by case-insensitive name, falling back to
// "" when absent. Booked transactions keep working with an empty category;
// the reference is weak.
func categoryByName(cats *store.CategoryStore, name string) string {
	for _, c := range cats.List() {
		if strings.EqualFold(c.Name, name) {
			return c.ID
		}
	}
	slog.Debug("No category with this name, booking without one", "name", name)
	return ""
}

func installmentCategoryID(cats *store.CategoryStore) string {
	return categoryByName(cats, "Installments")
}

func needCategoryID(cats *store.CategoryStore) string {
	return categoryByName(cats, "Bills")
}

func wishlistCategoryID(cats *store.CategoryStore) string {
	return categoryByName(cats, "Shopping")
}
