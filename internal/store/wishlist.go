package store

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tzoee/personal-finance-manager-sub001/internal/core"
	"github.com/tzoee/personal-finance-manager-sub001/internal/storage"
)

// WishlistStore owns wishlist items.
type WishlistStore struct {
	col  *collection[core.WishlistItem]
	opts Options
}

func NewWishlistStore(table *storage.Table, opts Options) *WishlistStore {
	opts = opts.withDefaults()
	return &WishlistStore{
		col: newCollection(table, descriptor[core.WishlistItem]{
			id:        func(w core.WishlistItem) string { return w.ID },
			sortKey:   func(w core.WishlistItem) string { return w.Name },
			createdAt: func(w core.WishlistItem) time.Time { return w.CreatedAt },
		}, opts.Notify),
		opts: opts,
	}
}

func (s *WishlistStore) Initialize(ctx context.Context) error {
	return s.col.load(ctx)
}

func (s *WishlistStore) Add(ctx context.Context, input core.WishlistItem) (core.WishlistItem, error) {
	now := s.opts.Now()
	input.ID = s.opts.NewID()
	input.CreatedAt = now
	input.UpdatedAt = now
	if input.Status == "" {
		input.Status = core.WishlistPlanned
	}
	if err := s.col.insert(ctx, input); err != nil {
		return core.WishlistItem{}, err
	}
	return input, nil
}

func (s *WishlistStore) Update(ctx context.Context, id string, mutate func(*core.WishlistItem)) error {
	cur, ok := s.col.get(id)
	if !ok {
		return fmt.Errorf("%w: wishlist item %s", ErrNotFound, id)
	}
	mutate(&cur)
	cur.ID = id
	cur.UpdatedAt = s.opts.Now()
	return s.col.put(ctx, cur)
}

// Contribute adds amount to the item's saved total and promotes a planned
// item to saving.
func (s *WishlistStore) Contribute(ctx context.Context, id string, amount decimal.Decimal) error {
	return s.Update(ctx, id, func(w *core.WishlistItem) {
		w.CurrentSaved = w.CurrentSaved.Add(amount)
		if w.Status == core.WishlistPlanned {
			w.Status = core.WishlistSaving
		}
	})
}

func (s *WishlistStore) Delete(ctx context.Context, id string) error {
	return s.col.remove(ctx, id)
}

func (s *WishlistStore) Get(id string) (core.WishlistItem, error) {
	w, ok := s.col.get(id)
	if !ok {
		return core.WishlistItem{}, fmt.Errorf("%w: wishlist item %s", ErrNotFound, id)
	}
	return w, nil
}

func (s *WishlistStore) List() []core.WishlistItem { return s.col.snapshot() }

// ListSorted returns items ordered by the given key.
func (s *WishlistStore) ListSorted(key core.WishlistSortKey) []core.WishlistItem {
	items := s.col.snapshot()
	core.SortWishlist(items, key)
	return items
}

func (s *WishlistStore) Count() int { return s.col.len() }

func (s *WishlistStore) ReplaceAll(ctx context.Context, vs []core.WishlistItem) error {
	return s.col.replaceAll(ctx, vs)
}

func (s *WishlistStore) MergeAll(ctx context.Context, vs []core.WishlistItem) (int, error) {
	return s.col.mergeAll(ctx, vs)
}
