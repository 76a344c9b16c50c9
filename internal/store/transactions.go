package store

import (
	"context"
	"fmt"
	"time"

	"github.com/tzoee/personal-finance-manager-sub001/internal/core"
	"github.com/tzoee/personal-finance-manager-sub001/internal/storage"
)

// TransactionStore owns the transaction collection. Validation happens
// caller-side (services, CLI); the store assigns identity and timestamps.
type TransactionStore struct {
	col  *collection[core.Transaction]
	opts Options
}

func NewTransactionStore(table *storage.Table, opts Options) *TransactionStore {
	opts = opts.withDefaults()
	return &TransactionStore{
		col: newCollection(table, descriptor[core.Transaction]{
			id:        func(t core.Transaction) string { return t.ID },
			sortKey:   func(t core.Transaction) string { return t.Date.String() },
			createdAt: func(t core.Transaction) time.Time { return t.CreatedAt },
		}, opts.Notify),
		opts: opts,
	}
}

// Initialize loads the persisted collection into memory.
func (s *TransactionStore) Initialize(ctx context.Context) error {
	return s.col.load(ctx)
}

// Add assigns an ID and timestamps, persists, and returns the new entity.
func (s *TransactionStore) Add(ctx context.Context, input core.Transaction) (core.Transaction, error) {
	now := s.opts.Now()
	input.ID = s.opts.NewID()
	input.CreatedAt = now
	input.UpdatedAt = now
	if err := s.col.insert(ctx, input); err != nil {
		return core.Transaction{}, err
	}
	return input, nil
}

// Update applies mutate to the current record, refreshes UpdatedAt, and
// persists. The ID is immutable; a missing ID returns ErrNotFound.
func (s *TransactionStore) Update(ctx context.Context, id string, mutate func(*core.Transaction)) error {
	cur, ok := s.col.get(id)
	if !ok {
		return fmt.Errorf("%w: transaction %s", ErrNotFound, id)
	}
	mutate(&cur)
	cur.ID = id
	cur.UpdatedAt = s.opts.Now()
	return s.col.put(ctx, cur)
}

func (s *TransactionStore) Delete(ctx context.Context, id string) error {
	return s.col.remove(ctx, id)
}

func (s *TransactionStore) Get(id string) (core.Transaction, error) {
	t, ok := s.col.get(id)
	if !ok {
		return core.Transaction{}, fmt.Errorf("%w: transaction %s", ErrNotFound, id)
	}
	return t, nil
}

// List returns a snapshot ordered by date, then creation time.
func (s *TransactionStore) List() []core.Transaction {
	return s.col.snapshot()
}

// ListMonth returns the transactions dated within the given month.
func (s *TransactionStore) ListMonth(month core.YearMonth) []core.Transaction {
	var out []core.Transaction
	for _, t := range s.col.snapshot() {
		if t.Date.YearMonth() == month {
			out = append(out, t)
		}
	}
	return out
}

func (s *TransactionStore) Count() int { return s.col.len() }

// ReplaceAll wipes the collection and inserts vs verbatim (replace import).
func (s *TransactionStore) ReplaceAll(ctx context.Context, vs []core.Transaction) error {
	return s.col.replaceAll(ctx, vs)
}

// MergeAll inserts only unseen IDs (merge import).
func (s *TransactionStore) MergeAll(ctx context.Context, vs []core.Transaction) (int, error) {
	return s.col.mergeAll(ctx, vs)
}
