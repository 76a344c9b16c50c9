// Package worker keeps the cloud snapshot current for a dataset that other
// processes mutate.
package worker

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/tzoee/personal-finance-manager-sub001/internal/amqp"
	"github.com/tzoee/personal-finance-manager-sub001/internal/cloud"
	"github.com/tzoee/personal-finance-manager-sub001/internal/snapshot"
)

// PushWorker uploads the dataset snapshot whenever it has been marked dirty.
// Reload runs before every push so writes made by other processes against
// the shared database are picked up.
type PushWorker struct {
	store    cloud.Store
	reload   func(ctx context.Context) error
	export   func() snapshot.Snapshot
	debounce time.Duration
	interval time.Duration
	timeout  time.Duration

	dirty atomic.Bool
}

func NewPushWorker(store cloud.Store, reload func(ctx context.Context) error, export func() snapshot.Snapshot, debounce, interval, timeout time.Duration) *PushWorker {
	w := &PushWorker{
		store:    store,
		reload:   reload,
		export:   export,
		debounce: debounce,
		interval: interval,
		timeout:  timeout,
	}
	// Push once at startup so a fresh worker converges immediately.
	w.dirty.Store(true)
	return w
}

// MarkDirty schedules a push on the next debounce tick. Safe from any
// goroutine.
func (w *PushWorker) MarkDirty() {
	w.dirty.Store(true)
}

// HandleChange is the AMQP consumer hook. Every change message, whatever the
// entity, marks the whole dataset dirty.
func (w *PushWorker) HandleChange(msg *amqp.ChangeMessage) error {
	slog.Info("Change received", "entity", msg.Entity, "action", msg.Action)
	w.MarkDirty()
	return nil
}

// Run loops until the context is cancelled. The debounce ticker coalesces
// change bursts into one upload; the interval ticker forces a periodic push
// in case a message was lost.
func (w *PushWorker) Run(ctx context.Context) {
	debounce := time.NewTicker(w.debounce)
	defer debounce.Stop()
	full := time.NewTicker(w.interval)
	defer full.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-debounce.C:
			if w.dirty.CompareAndSwap(true, false) {
				w.push(ctx)
			}
		case <-full.C:
			w.dirty.Store(false)
			w.push(ctx)
		}
	}
}

func (w *PushWorker) push(ctx context.Context) {
	pushCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	if err := w.reload(pushCtx); err != nil {
		slog.Error("Store reload failed", "error", err)
		w.dirty.Store(true)
		return
	}
	snap := w.export()
	if err := w.store.SaveToCloud(pushCtx, snap); err != nil {
		slog.Error("Cloud push failed", "error", err)
		w.dirty.Store(true) // retry on the next tick
		return
	}
	slog.Info("Snapshot pushed", "entities", snap.EntityCount())
}
