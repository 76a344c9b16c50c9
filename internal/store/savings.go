package store

import (
	"context"
	"fmt"
	"time"

	"github.com/tzoee/personal-finance-manager-sub001/internal/core"
	"github.com/tzoee/personal-finance-manager-sub001/internal/storage"
)

// SavingsStore owns savings goals. A goal exclusively owns its deposits;
// they live inside the goal record, so deleting the goal deletes them too.
type SavingsStore struct {
	col  *collection[core.SavingsGoal]
	opts Options
}

func NewSavingsStore(table *storage.Table, opts Options) *SavingsStore {
	opts = opts.withDefaults()
	return &SavingsStore{
		col: newCollection(table, descriptor[core.SavingsGoal]{
			id:        func(g core.SavingsGoal) string { return g.ID },
			sortKey:   func(g core.SavingsGoal) string { return g.Name },
			createdAt: func(g core.SavingsGoal) time.Time { return g.CreatedAt },
		}, opts.Notify),
		opts: opts,
	}
}

func (s *SavingsStore) Initialize(ctx context.Context) error {
	return s.col.load(ctx)
}

func (s *SavingsStore) Add(ctx context.Context, input core.SavingsGoal) (core.SavingsGoal, error) {
	now := s.opts.Now()
	input.ID = s.opts.NewID()
	input.CreatedAt = now
	input.UpdatedAt = now
	if input.Deposits == nil {
		input.Deposits = []core.SavingsDeposit{}
	}
	if err := s.col.insert(ctx, input); err != nil {
		return core.SavingsGoal{}, err
	}
	return input, nil
}

func (s *SavingsStore) Update(ctx context.Context, id string, mutate func(*core.SavingsGoal)) error {
	cur, ok := s.col.get(id)
	if !ok {
		return fmt.Errorf("%w: savings goal %s", ErrNotFound, id)
	}
	mutate(&cur)
	cur.ID = id
	cur.UpdatedAt = s.opts.Now()
	return s.col.put(ctx, cur)
}

// AddDeposit appends a deposit to the goal. The deposit gets its own ID and
// a back-reference to the goal.
func (s *SavingsStore) AddDeposit(ctx context.Context, goalID string, input core.SavingsDeposit) (core.SavingsDeposit, error) {
	input.ID = s.opts.NewID()
	input.SavingsID = goalID
	input.CreatedAt = s.opts.Now()
	err := s.Update(ctx, goalID, func(g *core.SavingsGoal) {
		g.Deposits = append(g.Deposits, input)
	})
	if err != nil {
		return core.SavingsDeposit{}, err
	}
	return input, nil
}

// RemoveDeposit is the only path by which a goal's saved total may decrease.
func (s *SavingsStore) RemoveDeposit(ctx context.Context, goalID, depositID string) error {
	cur, ok := s.col.get(goalID)
	if !ok {
		return fmt.Errorf("%w: savings goal %s", ErrNotFound, goalID)
	}
	idx := -1
	for i, d := range cur.Deposits {
		if d.ID == depositID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: deposit %s in goal %s", ErrNotFound, depositID, goalID)
	}
	return s.Update(ctx, goalID, func(g *core.SavingsGoal) {
		g.Deposits = append(g.Deposits[:idx:idx], g.Deposits[idx+1:]...)
	})
}

// Delete removes the goal and, by ownership, every deposit inside it.
func (s *SavingsStore) Delete(ctx context.Context, id string) error {
	return s.col.remove(ctx, id)
}

func (s *SavingsStore) Get(id string) (core.SavingsGoal, error) {
	g, ok := s.col.get(id)
	if !ok {
		return core.SavingsGoal{}, fmt.Errorf("%w: savings goal %s", ErrNotFound, id)
	}
	return g, nil
}

func (s *SavingsStore) List() []core.SavingsGoal { return s.col.snapshot() }

func (s *SavingsStore) Count() int { return s.col.len() }

func (s *SavingsStore) ReplaceAll(ctx context.Context, vs []core.SavingsGoal) error {
	return s.col.replaceAll(ctx, vs)
}

func (s *SavingsStore) MergeAll(ctx context.Context, vs []core.SavingsGoal) (int, error) {
	return s.col.mergeAll(ctx, vs)
}
