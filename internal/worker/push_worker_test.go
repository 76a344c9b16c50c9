package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tzoee/personal-finance-manager-sub001/internal/amqp"
	"github.com/tzoee/personal-finance-manager-sub001/internal/cloud/memory"
	"github.com/tzoee/personal-finance-manager-sub001/internal/core"
	"github.com/tzoee/personal-finance-manager-sub001/internal/snapshot"
)

func exportOneTransaction() snapshot.Snapshot {
	return snapshot.Snapshot{
		Version: snapshot.Version,
		Transactions: []core.Transaction{{
			ID:     "tx-1",
			Date:   core.NewDate(2024, 6, 1),
			Type:   core.Expense,
			Amount: core.MustAmount("10"),
		}},
	}
}

func TestPushWorkerPushesOnStartup(t *testing.T) {
	store := memory.New()
	reloads := 0
	w := NewPushWorker(store,
		func(context.Context) error { reloads++; return nil },
		exportOneTransaction,
		5*time.Millisecond, time.Hour, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.Eventually(t, func() bool { return store.SaveCount() == 1 },
		time.Second, 5*time.Millisecond)
	require.Equal(t, 1, reloads)

	snap, err := store.LoadFromCloud(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Transactions, 1)
}

func TestPushWorkerCoalescesChangeBurst(t *testing.T) {
	store := memory.New()
	w := NewPushWorker(store,
		func(context.Context) error { return nil },
		exportOneTransaction,
		50*time.Millisecond, time.Hour, time.Second)
	w.dirty.Store(false) // suppress the startup push for this test

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	for i := 0; i < 5; i++ {
		require.NoError(t, w.HandleChange(&amqp.ChangeMessage{
			Entity: amqp.EntityTransaction,
			Action: amqp.ActionCreated,
		}))
	}

	require.Eventually(t, func() bool { return store.SaveCount() == 1 },
		time.Second, 10*time.Millisecond)
	time.Sleep(120 * time.Millisecond)
	require.Equal(t, 1, store.SaveCount())
}

func TestPushWorkerRetriesAfterFailure(t *testing.T) {
	store := memory.New()
	store.SetFail(context.DeadlineExceeded)
	w := NewPushWorker(store,
		func(context.Context) error { return nil },
		exportOneTransaction,
		10*time.Millisecond, time.Hour, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 0, store.SaveCount())

	// The failed push re-marks the worker dirty, so recovery needs no new
	// change message.
	store.SetFail(nil)
	require.Eventually(t, func() bool { return store.SaveCount() == 1 },
		time.Second, 10*time.Millisecond)
}
