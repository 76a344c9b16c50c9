// Package store owns the canonical in-memory collections, one per entity
// type, mirrored write-through to the local SQLite tables. Mutations persist
// first and update memory only on success, so readers inside the process
// never observe state the durable store has not accepted.
//
// Derived values (progress, schedules, budget variance) are never kept here;
// they are recomputed by internal/core on every read.
package store

import (
	"errors"
	"time"

	"github.com/tzoee/personal-finance-manager-sub001/internal/core"
)

var (
	// ErrNotFound is the uniform result of any mutation that references a
	// missing ID. No operation silently no-ops.
	ErrNotFound = errors.New("record not found")

	// ErrValidation signals that the caller-side validators rejected the
	// input; the field details travel in core.ValidationResult.
	ErrValidation = errors.New("validation failed")

	// ErrPaidOff is returned when a payment targets an installment that has
	// already reached its total amount.
	ErrPaidOff = errors.New("installment is already paid off")

	// ErrAlreadyPaid is returned when a second payment is recorded for the
	// same (need, month) pair.
	ErrAlreadyPaid = errors.New("need is already paid for this month")
)

// Options configures a store's identity and clock sources. Zero values fall
// back to uuid-based IDs and the wall clock.
type Options struct {
	NewID core.IDGenerator
	Now   func() time.Time
	// Notify runs after every successful mutation. Wired by the application
	// container to the sync coordinator's change hook.
	Notify func()
}

func (o Options) withDefaults() Options {
	if o.NewID == nil {
		o.NewID = core.NewID
	}
	if o.Now == nil {
		o.Now = func() time.Time { return time.Now().UTC() }
	}
	if o.Notify == nil {
		o.Notify = func() {}
	}
	return o
}
