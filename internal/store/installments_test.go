package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tzoee/personal-finance-manager-sub001/internal/core"
)

func newTestInstallmentStore(t *testing.T) *InstallmentStore {
	t.Helper()
	db := openTestDB(t)
	s := NewInstallmentStore(db.Table("installments"), testOptions())
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func TestInstallmentStoreFullPayoff(t *testing.T) {
	ctx := context.Background()
	s := newTestInstallmentStore(t)

	plan, err := s.Add(ctx, core.Installment{
		Name:          "Laptop",
		TotalAmount:   core.MustAmount("12000000"),
		MonthlyAmount: core.MustAmount("1000000"),
		TotalTenor:    12,
		StartDate:     core.MustParseDate("2024-01-05"),
	})
	require.NoError(t, err)
	require.Equal(t, core.InstallmentActive, plan.Status)

	for i := 0; i < 12; i++ {
		_, err := s.AddPayment(ctx, plan.ID, core.InstallmentPayment{
			Amount: core.MustAmount("1000000"),
			Date:   core.MustParseDate("2024-01-05").AddMonths(i),
		})
		require.NoError(t, err)
	}

	got, err := s.Get(plan.ID)
	require.NoError(t, err)
	require.Equal(t, core.InstallmentPaidOff, got.Status)
	require.Len(t, got.Payments, 12)
	require.True(t, core.TotalInstallmentPaid(got.Payments).Equal(got.TotalAmount))

	_, err = s.AddPayment(ctx, plan.ID, core.InstallmentPayment{
		Amount: core.MustAmount("1"),
		Date:   core.MustParseDate("2025-01-05"),
	})
	require.ErrorIs(t, err, ErrPaidOff)
}

func TestInstallmentStoreRejectsOverpayment(t *testing.T) {
	ctx := context.Background()
	s := newTestInstallmentStore(t)

	plan, err := s.Add(ctx, core.Installment{
		Name:          "Phone",
		TotalAmount:   core.MustAmount("600"),
		MonthlyAmount: core.MustAmount("100"),
		TotalTenor:    6,
		StartDate:     core.MustParseDate("2024-01-01"),
	})
	require.NoError(t, err)

	_, err = s.AddPayment(ctx, plan.ID, core.InstallmentPayment{
		Amount: core.MustAmount("500"),
		Date:   core.MustParseDate("2024-01-01"),
	})
	require.NoError(t, err)

	_, err = s.AddPayment(ctx, plan.ID, core.InstallmentPayment{
		Amount: core.MustAmount("101"),
		Date:   core.MustParseDate("2024-02-01"),
	})
	require.ErrorIs(t, err, ErrOverpayment)

	// The failed payment must leave no trace.
	got, err := s.Get(plan.ID)
	require.NoError(t, err)
	require.Len(t, got.Payments, 1)
	require.Equal(t, core.InstallmentActive, got.Status)
}

func TestInstallmentStorePaymentGetsOwnership(t *testing.T) {
	ctx := context.Background()
	s := newTestInstallmentStore(t)

	plan, err := s.Add(ctx, core.Installment{
		Name:          "Couch",
		TotalAmount:   core.MustAmount("900"),
		MonthlyAmount: core.MustAmount("300"),
		TotalTenor:    3,
		StartDate:     core.MustParseDate("2024-03-01"),
	})
	require.NoError(t, err)

	paid, err := s.AddPayment(ctx, plan.ID, core.InstallmentPayment{
		Amount: core.MustAmount("300"),
		Date:   core.MustParseDate("2024-03-01"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, paid.ID)
	require.Equal(t, plan.ID, paid.InstallmentID)

	_, err = s.AddPayment(ctx, "missing", core.InstallmentPayment{
		Amount: core.MustAmount("300"),
		Date:   core.MustParseDate("2024-03-01"),
	})
	require.ErrorIs(t, err, ErrNotFound)
}
