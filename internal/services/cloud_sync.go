package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tzoee/personal-finance-manager-sub001/internal/cloud"
	"github.com/tzoee/personal-finance-manager-sub001/internal/snapshot"
)

// SyncState is the cloud sync machine state.
type SyncState int

const (
	SyncIdle SyncState = iota
	// SyncPending means a change was seen and the debounce timer is running.
	SyncPending
	// SyncInFlight means a push to the cloud store is running right now.
	SyncInFlight
)

func (s SyncState) String() string {
	switch s {
	case SyncIdle:
		return "idle"
	case SyncPending:
		return "pending"
	case SyncInFlight:
		return "in_flight"
	default:
		return "unknown"
	}
}

// SyncStatus is an advisory view of the sync machine. A non-nil LastError
// never blocks local operation; the dataset stays fully usable offline.
type SyncStatus struct {
	State      SyncState
	LastSyncAt time.Time
	LastError  error
}

// CloudSync pushes snapshots to a cloud store after a quiet period follows
// the last local change. At most one push is in flight; changes arriving
// mid-push schedule exactly one follow-up instead of queueing.
type CloudSync struct {
	store    cloud.Store
	export   func() snapshot.Snapshot
	debounce time.Duration
	timeout  time.Duration

	mu       sync.Mutex
	state    SyncState
	timer    *time.Timer
	followUp bool
	closed   bool
	lastSync time.Time
	lastErr  error
	inflight sync.WaitGroup
}

func NewCloudSync(store cloud.Store, export func() snapshot.Snapshot, debounce time.Duration) *CloudSync {
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	return &CloudSync{
		store:    store,
		export:   export,
		debounce: debounce,
		timeout:  time.Minute,
	}
}

// NotifyChange records a local dataset change. In SyncIdle it arms the
// debounce timer; in SyncPending it resets the timer, cancelling the
// previously scheduled push; in SyncInFlight it marks a follow-up push.
func (c *CloudSync) NotifyChange() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	switch c.state {
	case SyncIdle:
		c.state = SyncPending
		c.timer = time.AfterFunc(c.debounce, c.fire)
	case SyncPending:
		c.timer.Reset(c.debounce)
	case SyncInFlight:
		c.followUp = true
	}
}

func (c *CloudSync) fire() {
	c.mu.Lock()
	if c.closed || c.state != SyncPending {
		c.mu.Unlock()
		return
	}
	c.state = SyncInFlight
	c.inflight.Add(1)
	c.mu.Unlock()

	go c.push()
}

func (c *CloudSync) push() {
	defer c.inflight.Done()

	snap := c.export()
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	err := c.store.SaveToCloud(ctx, snap)
	cancel()

	if err != nil {
		slog.Error("cloud sync failed", "error", err, "entities", snap.EntityCount())
	} else {
		slog.Info("cloud sync completed", "entities", snap.EntityCount())
	}

	c.mu.Lock()
	c.lastErr = err
	if err == nil {
		c.lastSync = time.Now().UTC()
	}
	if c.followUp && !c.closed {
		c.followUp = false
		c.state = SyncPending
		c.timer = time.AfterFunc(c.debounce, c.fire)
	} else {
		c.state = SyncIdle
	}
	c.mu.Unlock()
}

// SyncNow pushes immediately, bypassing the debounce. If a push is already
// in flight it only schedules a follow-up.
func (c *CloudSync) SyncNow(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	if c.state == SyncInFlight {
		c.followUp = true
		c.mu.Unlock()
		return nil
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.state = SyncInFlight
	c.mu.Unlock()

	snap := c.export()
	err := c.store.SaveToCloud(ctx, snap)

	c.mu.Lock()
	c.lastErr = err
	if err == nil {
		c.lastSync = time.Now().UTC()
	}
	if c.followUp && !c.closed {
		c.followUp = false
		c.state = SyncPending
		c.timer = time.AfterFunc(c.debounce, c.fire)
	} else {
		c.state = SyncIdle
	}
	c.mu.Unlock()
	return err
}

// Status returns the current advisory sync status.
func (c *CloudSync) Status() SyncStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return SyncStatus{
		State:      c.state,
		LastSyncAt: c.lastSync,
		LastError:  c.lastErr,
	}
}

// Close cancels any pending push and waits for an in-flight one to finish.
func (c *CloudSync) Close() {
	c.mu.Lock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
	}
	c.mu.Unlock()
	c.inflight.Wait()
}
