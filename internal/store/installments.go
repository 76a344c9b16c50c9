package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tzoee/personal-finance-manager-sub001/internal/core"
	"github.com/tzoee/personal-finance-manager-sub001/internal/storage"
)

// ErrOverpayment is returned when a payment would push the paid total past
// the installment's total amount.
var ErrOverpayment = errors.New("payment exceeds remaining installment balance")

// InstallmentStore owns installments and their embedded payments. Status is
// derived from the payment list and re-checked on every payment; paid_off is
// terminal.
type InstallmentStore struct {
	col  *collection[core.Installment]
	opts Options
}

func NewInstallmentStore(table *storage.Table, opts Options) *InstallmentStore {
	opts = opts.withDefaults()
	return &InstallmentStore{
		col: newCollection(table, descriptor[core.Installment]{
			id:        func(i core.Installment) string { return i.ID },
			sortKey:   func(i core.Installment) string { return i.StartDate.String() },
			createdAt: func(i core.Installment) time.Time { return i.CreatedAt },
		}, opts.Notify),
		opts: opts,
	}
}

func (s *InstallmentStore) Initialize(ctx context.Context) error {
	return s.col.load(ctx)
}

func (s *InstallmentStore) Add(ctx context.Context, input core.Installment) (core.Installment, error) {
	now := s.opts.Now()
	input.ID = s.opts.NewID()
	input.CreatedAt = now
	input.UpdatedAt = now
	if input.Status == "" {
		input.Status = core.InstallmentActive
	}
	if input.Payments == nil {
		input.Payments = []core.InstallmentPayment{}
	}
	if err := s.col.insert(ctx, input); err != nil {
		return core.Installment{}, err
	}
	return input, nil
}

func (s *InstallmentStore) Update(ctx context.Context, id string, mutate func(*core.Installment)) error {
	cur, ok := s.col.get(id)
	if !ok {
		return fmt.Errorf("%w: installment %s", ErrNotFound, id)
	}
	mutate(&cur)
	cur.ID = id
	cur.UpdatedAt = s.opts.Now()
	return s.col.put(ctx, cur)
}

// AddPayment records a payment against the installment. Payments against a
// paid_off installment are rejected, as are payments that would exceed the
// total amount. Reaching the total transitions the installment to paid_off.
func (s *InstallmentStore) AddPayment(ctx context.Context, installmentID string, input core.InstallmentPayment) (core.InstallmentPayment, error) {
	cur, ok := s.col.get(installmentID)
	if !ok {
		return core.InstallmentPayment{}, fmt.Errorf("%w: installment %s", ErrNotFound, installmentID)
	}
	if cur.Status == core.InstallmentPaidOff {
		return core.InstallmentPayment{}, fmt.Errorf("%w: installment %s", ErrPaidOff, installmentID)
	}

	progress := core.SummarizeInstallment(cur)
	if input.Amount.Cmp(progress.RemainingAmount) > 0 {
		return core.InstallmentPayment{}, fmt.Errorf("%w: installment %s", ErrOverpayment, installmentID)
	}

	input.ID = s.opts.NewID()
	input.InstallmentID = installmentID
	input.CreatedAt = s.opts.Now()

	cur.Payments = append(cur.Payments, input)
	if core.SummarizeInstallment(cur).IsPaidOff {
		cur.Status = core.InstallmentPaidOff
	}
	cur.UpdatedAt = s.opts.Now()
	if err := s.col.put(ctx, cur); err != nil {
		return core.InstallmentPayment{}, err
	}
	return input, nil
}

// Delete removes the installment and, by ownership, its payments.
func (s *InstallmentStore) Delete(ctx context.Context, id string) error {
	return s.col.remove(ctx, id)
}

func (s *InstallmentStore) Get(id string) (core.Installment, error) {
	i, ok := s.col.get(id)
	if !ok {
		return core.Installment{}, fmt.Errorf("%w: installment %s", ErrNotFound, id)
	}
	return i, nil
}

func (s *InstallmentStore) List() []core.Installment { return s.col.snapshot() }

func (s *InstallmentStore) Count() int { return s.col.len() }

func (s *InstallmentStore) ReplaceAll(ctx context.Context, vs []core.Installment) error {
	return s.col.replaceAll(ctx, vs)
}

func (s *InstallmentStore) MergeAll(ctx context.Context, vs []core.Installment) (int, error) {
	return s.col.mergeAll(ctx, vs)
}
