package snapshot

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tzoee/personal-finance-manager-sub001/internal/core"
	"github.com/tzoee/personal-finance-manager-sub001/internal/storage"
	"github.com/tzoee/personal-finance-manager-sub001/internal/store"
)

func newTestStores(t *testing.T) Stores {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "finances.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var ids int
	opts := store.Options{
		NewID: func() string {
			ids++
			return fmt.Sprintf("id-%03d", ids)
		},
		Now: func() time.Time {
			return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
		},
	}

	stores := Stores{
		Transactions: store.NewTransactionStore(db.Table("transactions"), opts),
		Categories:   store.NewCategoryStore(db.Table("categories"), opts),
		Savings:      store.NewSavingsStore(db.Table("savings_goals"), opts),
		Wishlist:     store.NewWishlistStore(db.Table("wishlist_items"), opts),
		Installments: store.NewInstallmentStore(db.Table("installments"), opts),
		Needs:        store.NewNeedStore(db.Table("monthly_needs"), db.Table("monthly_need_payments"), opts),
		Assets:       store.NewAssetStore(db.Table("assets"), opts),
		Settings:     store.NewSettingsStore(db.Table("settings"), opts),
	}

	ctx := context.Background()
	require.NoError(t, stores.Transactions.Initialize(ctx))
	require.NoError(t, stores.Categories.Initialize(ctx))
	require.NoError(t, stores.Savings.Initialize(ctx))
	require.NoError(t, stores.Wishlist.Initialize(ctx))
	require.NoError(t, stores.Installments.Initialize(ctx))
	require.NoError(t, stores.Needs.Initialize(ctx))
	require.NoError(t, stores.Assets.Initialize(ctx))
	require.NoError(t, stores.Settings.Initialize(ctx))
	return stores
}

func seedDataset(t *testing.T, s Stores) {
	t.Helper()
	ctx := context.Background()

	cat, err := s.Categories.Add(ctx, core.Category{Name: "Food", Type: core.ExpenseCategory})
	require.NoError(t, err)
	_, err = s.Categories.Add(ctx, core.Category{Name: "Salary", Type: core.IncomeCategory})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := s.Transactions.Add(ctx, core.Transaction{
			Date:       core.MustParseDate("2024-06-10"),
			Type:       core.Expense,
			Amount:     core.MustAmount("25"),
			CategoryID: cat.ID,
		})
		require.NoError(t, err)
	}

	goal, err := s.Savings.Add(ctx, core.SavingsGoal{Name: "Emergency", TargetAmount: core.MustAmount("1000")})
	require.NoError(t, err)
	_, err = s.Savings.AddDeposit(ctx, goal.ID, core.SavingsDeposit{
		Amount: core.MustAmount("250"),
		Date:   core.MustParseDate("2024-06-01"),
	})
	require.NoError(t, err)

	need, err := s.Needs.Add(ctx, core.MonthlyNeed{
		Name:             "Rent",
		BudgetAmount:     core.MustAmount("1200"),
		RecurrencePeriod: core.Forever,
		StartMonth:       core.MustParseYearMonth("2024-01"),
	})
	require.NoError(t, err)
	_, err = s.Needs.Pay(ctx, need.ID, core.MustParseYearMonth("2024-06"), core.MustAmount("1180"))
	require.NoError(t, err)

	_, err = s.Wishlist.Add(ctx, core.WishlistItem{
		Name:        "Camera",
		TargetPrice: core.MustAmount("1500"),
		Priority:    core.PriorityHigh,
	})
	require.NoError(t, err)

	_, err = s.Installments.Add(ctx, core.Installment{
		Name:          "Laptop",
		TotalAmount:   core.MustAmount("1200"),
		MonthlyAmount: core.MustAmount("100"),
		TotalTenor:    12,
		StartDate:     core.MustParseDate("2024-01-01"),
	})
	require.NoError(t, err)

	_, err = s.Assets.Add(ctx, core.Asset{
		Name:         "Savings Account",
		Type:         "cash",
		InitialValue: core.MustAmount("5000"),
	})
	require.NoError(t, err)
}

func TestExportImportReplaceRoundTrip(t *testing.T) {
	ctx := context.Background()
	stores := newTestStores(t)
	seedDataset(t, stores)
	coord := NewCoordinator(stores, nil)

	before := coord.Export()
	require.Equal(t, Version, before.Version)
	require.Len(t, before.Transactions, 3)
	require.Len(t, before.Categories, 2)

	require.NoError(t, coord.Import(ctx, before, Replace))

	after := coord.Export()
	require.Equal(t, before.Transactions, after.Transactions)
	require.Equal(t, before.Categories, after.Categories)
	require.Equal(t, before.Savings, after.Savings)
	require.Equal(t, before.Wishlist, after.Wishlist)
	require.Equal(t, before.Installments, after.Installments)
	require.Equal(t, before.MonthlyNeeds, after.MonthlyNeeds)
	require.Equal(t, before.MonthlyNeedPayments, after.MonthlyNeedPayments)
	require.Equal(t, before.Assets, after.Assets)
	require.Equal(t, before.Settings, after.Settings)
}

func TestImportReplaceDropsLaterMutations(t *testing.T) {
	ctx := context.Background()
	stores := newTestStores(t)
	seedDataset(t, stores)
	coord := NewCoordinator(stores, nil)

	old := coord.Export()

	_, err := stores.Transactions.Add(ctx, core.Transaction{
		Date:       core.MustParseDate("2024-06-20"),
		Type:       core.Expense,
		Amount:     core.MustAmount("99"),
		CategoryID: old.Categories[0].ID,
	})
	require.NoError(t, err)
	require.Equal(t, 4, stores.Transactions.Count())

	require.NoError(t, coord.Import(ctx, old, Replace))
	require.Equal(t, 3, stores.Transactions.Count())
}

func TestImportMergeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	stores := newTestStores(t)
	seedDataset(t, stores)
	coord := NewCoordinator(stores, nil)

	snap := coord.Export()

	require.NoError(t, coord.Import(ctx, snap, Merge))
	once := coord.Export()
	require.NoError(t, coord.Import(ctx, snap, Merge))
	twice := coord.Export()

	require.Equal(t, once.EntityCount(), twice.EntityCount())
	require.Equal(t, once.Transactions, twice.Transactions)
	require.Equal(t, once.MonthlyNeedPayments, twice.MonthlyNeedPayments)
}

func TestImportMergeKeepsExistingEntities(t *testing.T) {
	ctx := context.Background()
	stores := newTestStores(t)
	coord := NewCoordinator(stores, nil)

	local, err := stores.Categories.Add(ctx, core.Category{Name: "Food", Type: core.ExpenseCategory})
	require.NoError(t, err)

	incoming := coord.Export()
	incoming.Categories = []core.Category{
		{ID: local.ID, Name: "Renamed", Type: core.ExpenseCategory},
		{ID: "cat-new", Name: "Travel", Type: core.ExpenseCategory},
	}
	incoming.Settings.Currency = "EUR"

	require.NoError(t, coord.Import(ctx, incoming, Merge))

	got, err := stores.Categories.Get(local.ID)
	require.NoError(t, err)
	require.Equal(t, "Food", got.Name, "merge must not overwrite existing entities")
	_, err = stores.Categories.Get("cat-new")
	require.NoError(t, err)
	require.Equal(t, "EUR", stores.Settings.Get().Currency, "settings follow the snapshot in every mode")
}

func TestImportUnknownMode(t *testing.T) {
	stores := newTestStores(t)
	coord := NewCoordinator(stores, nil)
	err := coord.Import(context.Background(), Snapshot{}, ImportMode("upsert"))
	require.ErrorIs(t, err, ErrUnknownMode)
}
