package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tzoee/personal-finance-manager-sub001/internal/core"
)

func newTestNeedStore(t *testing.T) *NeedStore {
	t.Helper()
	db := openTestDB(t)
	s := NewNeedStore(db.Table("monthly_needs"), db.Table("monthly_need_payments"), testOptions())
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func TestNeedStorePayOncePerMonth(t *testing.T) {
	ctx := context.Background()
	s := newTestNeedStore(t)

	need, err := s.Add(ctx, core.MonthlyNeed{
		Name:             "Rent",
		BudgetAmount:     core.MustAmount("1200"),
		RecurrencePeriod: core.Forever,
		StartMonth:       core.MustParseYearMonth("2024-01"),
	})
	require.NoError(t, err)

	june := core.MustParseYearMonth("2024-06")
	paid, err := s.Pay(ctx, need.ID, june, core.MustAmount("1150"))
	require.NoError(t, err)
	require.Equal(t, need.ID, paid.NeedID)
	require.True(t, paid.ActualAmount.Equal(core.MustAmount("1150")))

	_, err = s.Pay(ctx, need.ID, june, core.MustAmount("1200"))
	require.ErrorIs(t, err, ErrAlreadyPaid)

	// Other months are unaffected.
	_, err = s.Pay(ctx, need.ID, june.AddMonths(1), core.MustAmount("1200"))
	require.NoError(t, err)
}

func TestNeedStorePayUnknownNeed(t *testing.T) {
	ctx := context.Background()
	s := newTestNeedStore(t)

	_, err := s.Pay(ctx, "missing", core.MustParseYearMonth("2024-06"), core.MustAmount("10"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNeedStorePaymentFor(t *testing.T) {
	ctx := context.Background()
	s := newTestNeedStore(t)

	need, err := s.Add(ctx, core.MonthlyNeed{
		Name:             "Internet",
		BudgetAmount:     core.MustAmount("60"),
		RecurrencePeriod: core.Forever,
		StartMonth:       core.MustParseYearMonth("2024-01"),
	})
	require.NoError(t, err)

	june := core.MustParseYearMonth("2024-06")
	require.Nil(t, s.PaymentFor(need.ID, june))

	paid, err := s.Pay(ctx, need.ID, june, core.MustAmount("59.99"))
	require.NoError(t, err)

	got := s.PaymentFor(need.ID, june)
	require.NotNil(t, got)
	require.Equal(t, paid.ID, got.ID)
	require.Nil(t, s.PaymentFor(need.ID, june.AddMonths(1)))

	require.NoError(t, s.RemovePayment(ctx, paid.ID))
	require.Nil(t, s.PaymentFor(need.ID, june))
}

func TestNeedStoreDeleteCascadesPayments(t *testing.T) {
	ctx := context.Background()
	s := newTestNeedStore(t)

	need, err := s.Add(ctx, core.MonthlyNeed{
		Name:             "Gym",
		BudgetAmount:     core.MustAmount("40"),
		RecurrencePeriod: core.Forever,
		StartMonth:       core.MustParseYearMonth("2024-01"),
	})
	require.NoError(t, err)
	other, err := s.Add(ctx, core.MonthlyNeed{
		Name:             "Streaming",
		BudgetAmount:     core.MustAmount("15"),
		RecurrencePeriod: core.Forever,
		StartMonth:       core.MustParseYearMonth("2024-01"),
	})
	require.NoError(t, err)

	for _, m := range []string{"2024-04", "2024-05", "2024-06"} {
		_, err := s.Pay(ctx, need.ID, core.MustParseYearMonth(m), core.MustAmount("40"))
		require.NoError(t, err)
	}
	kept, err := s.Pay(ctx, other.ID, core.MustParseYearMonth("2024-06"), core.MustAmount("15"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, need.ID))
	_, err = s.Get(need.ID)
	require.ErrorIs(t, err, ErrNotFound)

	remaining := s.Payments()
	require.Len(t, remaining, 1)
	require.Equal(t, kept.ID, remaining[0].ID)
}

func TestNeedStoreListForMonth(t *testing.T) {
	ctx := context.Background()
	s := newTestNeedStore(t)

	_, err := s.Add(ctx, core.MonthlyNeed{
		Name:             "Rent",
		BudgetAmount:     core.MustAmount("1200"),
		RecurrencePeriod: core.Forever,
		StartMonth:       core.MustParseYearMonth("2024-01"),
	})
	require.NoError(t, err)
	_, err = s.Add(ctx, core.MonthlyNeed{
		Name:             "Insurance",
		BudgetAmount:     core.MustAmount("300"),
		RecurrencePeriod: core.Yearly,
		StartMonth:       core.MustParseYearMonth("2024-03"),
	})
	require.NoError(t, err)

	march := s.ListForMonth(core.MustParseYearMonth("2025-03"))
	require.Len(t, march, 2)

	june := s.ListForMonth(core.MustParseYearMonth("2025-06"))
	require.Len(t, june, 1)
	require.Equal(t, "Rent", june[0].Name)
}
