package store

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tzoee/personal-finance-manager-sub001/internal/core"
	"github.com/tzoee/personal-finance-manager-sub001/internal/storage"
)

// AssetStore owns assets and liabilities. Each value change is appended to
// the asset's history; the history is never rewritten.
type AssetStore struct {
	col  *collection[core.Asset]
	opts Options
}

func NewAssetStore(table *storage.Table, opts Options) *AssetStore {
	opts = opts.withDefaults()
	return &AssetStore{
		col: newCollection(table, descriptor[core.Asset]{
			id:        func(a core.Asset) string { return a.ID },
			sortKey:   func(a core.Asset) string { return a.Name },
			createdAt: func(a core.Asset) time.Time { return a.CreatedAt },
		}, opts.Notify),
		opts: opts,
	}
}

func (s *AssetStore) Initialize(ctx context.Context) error {
	return s.col.load(ctx)
}

// Add stores a new asset. The initial value becomes both the current value
// and the first history point.
func (s *AssetStore) Add(ctx context.Context, input core.Asset) (core.Asset, error) {
	now := s.opts.Now()
	input.ID = s.opts.NewID()
	input.CreatedAt = now
	input.UpdatedAt = now
	input.CurrentValue = input.InitialValue
	input.ValueHistory = []core.ValuePoint{{
		Date:  core.Date{Time: now},
		Value: input.InitialValue,
	}}
	if err := s.col.insert(ctx, input); err != nil {
		return core.Asset{}, err
	}
	return input, nil
}

func (s *AssetStore) Update(ctx context.Context, id string, mutate func(*core.Asset)) error {
	cur, ok := s.col.get(id)
	if !ok {
		return fmt.Errorf("%w: asset %s", ErrNotFound, id)
	}
	mutate(&cur)
	cur.ID = id
	cur.UpdatedAt = s.opts.Now()
	return s.col.put(ctx, cur)
}

// UpdateValue records a new current value as of date. The previous values
// stay in the history.
func (s *AssetStore) UpdateValue(ctx context.Context, id string, value decimal.Decimal, date core.Date) error {
	return s.Update(ctx, id, func(a *core.Asset) {
		a.CurrentValue = value
		a.ValueHistory = append(a.ValueHistory, core.ValuePoint{Date: date, Value: value})
	})
}

func (s *AssetStore) Delete(ctx context.Context, id string) error {
	return s.col.remove(ctx, id)
}

func (s *AssetStore) Get(id string) (core.Asset, error) {
	a, ok := s.col.get(id)
	if !ok {
		return core.Asset{}, fmt.Errorf("%w: asset %s", ErrNotFound, id)
	}
	return a, nil
}

func (s *AssetStore) List() []core.Asset { return s.col.snapshot() }

func (s *AssetStore) Count() int { return s.col.len() }

// NetWorth sums current values, subtracting liabilities.
func (s *AssetStore) NetWorth() decimal.Decimal {
	return core.NetWorth(s.col.snapshot())
}

func (s *AssetStore) ReplaceAll(ctx context.Context, vs []core.Asset) error {
	return s.col.replaceAll(ctx, vs)
}

func (s *AssetStore) MergeAll(ctx context.Context, vs []core.Asset) (int, error) {
	return s.col.mergeAll(ctx, vs)
}
