package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tzoee/personal-finance-manager-sub001/internal/core"
	"github.com/tzoee/personal-finance-manager-sub001/internal/storage"
)

// paymentKey is the payment sort key: "<needID>:<yearMonth>". A unique index
// on the column enforces at most one payment per (need, month) pair.
func paymentKey(needID string, month core.YearMonth) string {
	return needID + ":" + month.String()
}

// NeedStore owns monthly needs and their payment records. Payments are a
// separate collection (not embedded) because reads look them up per
// (need, month) pair independently of the need itself.
type NeedStore struct {
	needs    *collection[core.MonthlyNeed]
	payments *collection[core.MonthlyNeedPayment]
	opts     Options
}

func NewNeedStore(needsTable, paymentsTable *storage.Table, opts Options) *NeedStore {
	opts = opts.withDefaults()
	return &NeedStore{
		needs: newCollection(needsTable, descriptor[core.MonthlyNeed]{
			id:        func(n core.MonthlyNeed) string { return n.ID },
			sortKey:   func(n core.MonthlyNeed) string { return n.StartMonth.String() },
			createdAt: func(n core.MonthlyNeed) time.Time { return n.CreatedAt },
		}, opts.Notify),
		payments: newCollection(paymentsTable, descriptor[core.MonthlyNeedPayment]{
			id:        func(p core.MonthlyNeedPayment) string { return p.ID },
			sortKey:   func(p core.MonthlyNeedPayment) string { return paymentKey(p.NeedID, p.YearMonth) },
			createdAt: func(p core.MonthlyNeedPayment) time.Time { return p.PaidAt },
		}, opts.Notify),
		opts: opts,
	}
}

func (s *NeedStore) Initialize(ctx context.Context) error {
	if err := s.needs.load(ctx); err != nil {
		return err
	}
	return s.payments.load(ctx)
}

func (s *NeedStore) Add(ctx context.Context, input core.MonthlyNeed) (core.MonthlyNeed, error) {
	now := s.opts.Now()
	input.ID = s.opts.NewID()
	input.CreatedAt = now
	input.UpdatedAt = now
	if err := s.needs.insert(ctx, input); err != nil {
		return core.MonthlyNeed{}, err
	}
	return input, nil
}

func (s *NeedStore) Update(ctx context.Context, id string, mutate func(*core.MonthlyNeed)) error {
	cur, ok := s.needs.get(id)
	if !ok {
		return fmt.Errorf("%w: monthly need %s", ErrNotFound, id)
	}
	mutate(&cur)
	cur.ID = id
	cur.UpdatedAt = s.opts.Now()
	return s.needs.put(ctx, cur)
}

// Delete removes the need and cascades its payment records.
func (s *NeedStore) Delete(ctx context.Context, id string) error {
	if err := s.needs.remove(ctx, id); err != nil {
		return err
	}
	return s.purgePayments(ctx, id)
}

func (s *NeedStore) purgePayments(ctx context.Context, needID string) error {
	var ids []string
	for _, p := range s.payments.snapshot() {
		if p.NeedID == needID {
			ids = append(ids, p.ID)
		}
	}
	for _, id := range ids {
		if err := s.payments.remove(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	return nil
}

func (s *NeedStore) Get(id string) (core.MonthlyNeed, error) {
	n, ok := s.needs.get(id)
	if !ok {
		return core.MonthlyNeed{}, fmt.Errorf("%w: monthly need %s", ErrNotFound, id)
	}
	return n, nil
}

func (s *NeedStore) List() []core.MonthlyNeed { return s.needs.snapshot() }

// ListForMonth returns the needs visible in the given month per their
// recurrence period.
func (s *NeedStore) ListForMonth(month core.YearMonth) []core.MonthlyNeed {
	var out []core.MonthlyNeed
	for _, n := range s.needs.snapshot() {
		if core.ShouldShowNeed(n, month) {
			out = append(out, n)
		}
	}
	return out
}

// Pay records the actual spend for a need in a month. At most one payment may
// exist per (need, month); a second attempt returns ErrAlreadyPaid.
func (s *NeedStore) Pay(ctx context.Context, needID string, month core.YearMonth, actual decimal.Decimal) (core.MonthlyNeedPayment, error) {
	if _, ok := s.needs.get(needID); !ok {
		return core.MonthlyNeedPayment{}, fmt.Errorf("%w: monthly need %s", ErrNotFound, needID)
	}
	if s.PaymentFor(needID, month) != nil {
		return core.MonthlyNeedPayment{}, fmt.Errorf("%w: need %s month %s", ErrAlreadyPaid, needID, month)
	}
	payment := core.MonthlyNeedPayment{
		ID:           s.opts.NewID(),
		NeedID:       needID,
		YearMonth:    month,
		ActualAmount: actual,
		PaidAt:       s.opts.Now(),
	}
	if err := s.payments.insert(ctx, payment); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return core.MonthlyNeedPayment{}, fmt.Errorf("%w: need %s month %s", ErrAlreadyPaid, needID, month)
		}
		return core.MonthlyNeedPayment{}, err
	}
	return payment, nil
}

// RemovePayment reverts a month back to unpaid.
func (s *NeedStore) RemovePayment(ctx context.Context, paymentID string) error {
	return s.payments.remove(ctx, paymentID)
}

// PaymentFor returns the payment for a (need, month) pair, or nil when the
// month is unpaid.
func (s *NeedStore) PaymentFor(needID string, month core.YearMonth) *core.MonthlyNeedPayment {
	key := paymentKey(needID, month)
	for _, p := range s.payments.snapshot() {
		if paymentKey(p.NeedID, p.YearMonth) == key {
			return &p
		}
	}
	return nil
}

func (s *NeedStore) Payments() []core.MonthlyNeedPayment { return s.payments.snapshot() }

func (s *NeedStore) Count() int { return s.needs.len() }

func (s *NeedStore) ReplaceAll(ctx context.Context, needs []core.MonthlyNeed, payments []core.MonthlyNeedPayment) error {
	if err := s.needs.replaceAll(ctx, needs); err != nil {
		return err
	}
	return s.payments.replaceAll(ctx, payments)
}

func (s *NeedStore) MergeAll(ctx context.Context, needs []core.MonthlyNeed, payments []core.MonthlyNeedPayment) (int, error) {
	added, err := s.needs.mergeAll(ctx, needs)
	if err != nil {
		return added, err
	}
	addedPayments, err := s.payments.mergeAll(ctx, payments)
	return added + addedPayments, err
}
