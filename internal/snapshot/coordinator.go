package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tzoee/personal-finance-manager-sub001/internal/store"
)

// ImportMode selects how an imported snapshot meets existing local data.
type ImportMode string

const (
	// Merge inserts only entities whose ID is not already present.
	Merge ImportMode = "merge"
	// Replace clears every collection first, then inserts the snapshot
	// verbatim, original IDs and timestamps included.
	Replace ImportMode = "replace"
)

// ErrUnknownMode is returned by Import for a mode that is neither Merge nor
// Replace.
var ErrUnknownMode = errors.New("unknown import mode")

// Stores bundles every entity store the coordinator reads and writes.
type Stores struct {
	Transactions *store.TransactionStore
	Categories   *store.CategoryStore
	Savings      *store.SavingsStore
	Wishlist     *store.WishlistStore
	Installments *store.InstallmentStore
	Needs        *store.NeedStore
	Assets       *store.AssetStore
	Settings     *store.SettingsStore
}

// Coordinator assembles snapshots from the stores and applies imported ones.
type Coordinator struct {
	stores Stores
	now    func() time.Time
}

func NewCoordinator(stores Stores, now func() time.Time) *Coordinator {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Coordinator{stores: stores, now: now}
}

// Export gathers the full current state. It only reads; the dataset is
// unchanged afterwards.
func (c *Coordinator) Export() Snapshot {
	return Snapshot{
		Version:             Version,
		Settings:            c.stores.Settings.Get(),
		Transactions:        c.stores.Transactions.List(),
		Categories:          c.stores.Categories.List(),
		Savings:             c.stores.Savings.List(),
		Wishlist:            c.stores.Wishlist.List(),
		Installments:        c.stores.Installments.List(),
		MonthlyNeeds:        c.stores.Needs.List(),
		MonthlyNeedPayments: c.stores.Needs.Payments(),
		Assets:              c.stores.Assets.List(),
		ExportedAt:          c.now(),
	}
}

// Import applies snap to the local dataset. Settings are overwritten in both
// modes; the settings row is a singleton, so merging it makes no sense.
// Entities are not re-validated: a snapshot is trusted input.
func (c *Coordinator) Import(ctx context.Context, snap Snapshot, mode ImportMode) error {
	switch mode {
	case Replace:
		if err := c.replace(ctx, snap); err != nil {
			return err
		}
	case Merge:
		if err := c.merge(ctx, snap); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return c.stores.Settings.Replace(ctx, snap.Settings)
}

// Categories go first so that category references resolve for any reader
// that runs between collections. References are weak, so failures midway
// leave a readable (if partial) dataset.
func (c *Coordinator) replace(ctx context.Context, snap Snapshot) error {
	if err := c.stores.Categories.ReplaceAll(ctx, snap.Categories); err != nil {
		return fmt.Errorf("import categories: %w", err)
	}
	if err := c.stores.Transactions.ReplaceAll(ctx, snap.Transactions); err != nil {
		return fmt.Errorf("import transactions: %w", err)
	}
	if err := c.stores.Savings.ReplaceAll(ctx, snap.Savings); err != nil {
		return fmt.Errorf("import savings: %w", err)
	}
	if err := c.stores.Wishlist.ReplaceAll(ctx, snap.Wishlist); err != nil {
		return fmt.Errorf("import wishlist: %w", err)
	}
	if err := c.stores.Installments.ReplaceAll(ctx, snap.Installments); err != nil {
		return fmt.Errorf("import installments: %w", err)
	}
	if err := c.stores.Needs.ReplaceAll(ctx, snap.MonthlyNeeds, snap.MonthlyNeedPayments); err != nil {
		return fmt.Errorf("import monthly needs: %w", err)
	}
	if err := c.stores.Assets.ReplaceAll(ctx, snap.Assets); err != nil {
		return fmt.Errorf("import assets: %w", err)
	}
	return nil
}

func (c *Coordinator) merge(ctx context.Context, snap Snapshot) error {
	if _, err := c.stores.Categories.MergeAll(ctx, snap.Categories); err != nil {
		return fmt.Errorf("import categories: %w", err)
	}
	if _, err := c.stores.Transactions.MergeAll(ctx, snap.Transactions); err != nil {
		return fmt.Errorf("import transactions: %w", err)
	}
	if _, err := c.stores.Savings.MergeAll(ctx, snap.Savings); err != nil {
		return fmt.Errorf("import savings: %w", err)
	}
	if _, err := c.stores.Wishlist.MergeAll(ctx, snap.Wishlist); err != nil {
		return fmt.Errorf("import wishlist: %w", err)
	}
	if _, err := c.stores.Installments.MergeAll(ctx, snap.Installments); err != nil {
		return fmt.Errorf("import installments: %w", err)
	}
	if _, err := c.stores.Needs.MergeAll(ctx, snap.MonthlyNeeds, snap.MonthlyNeedPayments); err != nil {
		return fmt.Errorf("import monthly needs: %w", err)
	}
	if _, err := c.stores.Assets.MergeAll(ctx, snap.Assets); err != nil {
		return fmt.Errorf("import assets: %w", err)
	}
	return nil
}
