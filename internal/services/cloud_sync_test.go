package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tzoee/personal-finance-manager-sub001/internal/cloud/memory"
	"github.com/tzoee/personal-finance-manager-sub001/internal/snapshot"
)

// blockingStore lets tests hold a SaveToCloud call open.
type blockingStore struct {
	mu      sync.Mutex
	saves   int
	started chan struct{}
	release chan struct{}
}

func newBlockingStore() *blockingStore {
	return &blockingStore{
		started: make(chan struct{}, 16),
		release: make(chan struct{}),
	}
}

func (s *blockingStore) SaveToCloud(ctx context.Context, _ snapshot.Snapshot) error {
	s.started <- struct{}{}
	select {
	case <-s.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	s.mu.Lock()
	s.saves++
	s.mu.Unlock()
	return nil
}

func (s *blockingStore) LoadFromCloud(context.Context) (snapshot.Snapshot, error) {
	return snapshot.Snapshot{}, nil
}
func (s *blockingStore) HasCloudData(context.Context) (bool, error) { return false, nil }
func (s *blockingStore) DeleteCloudData(context.Context) error     { return nil }

func (s *blockingStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func emptyExport() snapshot.Snapshot {
	return snapshot.Snapshot{Version: snapshot.Version}
}

func TestCloudSyncDebounceCoalesces(t *testing.T) {
	store := memory.New()
	cs := NewCloudSync(store, emptyExport, 30*time.Millisecond)
	defer cs.Close()

	// A burst of changes within the quiet period yields a single push.
	for i := 0; i < 5; i++ {
		cs.NotifyChange()
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return store.SaveCount() == 1 && cs.Status().State == SyncIdle
	}, 2*time.Second, 10*time.Millisecond)

	// Quiet afterwards: still exactly one push.
	time.Sleep(60 * time.Millisecond)
	require.Equal(t, 1, store.SaveCount())
}

func TestCloudSyncChangeDuringPushSchedulesOneFollowUp(t *testing.T) {
	store := newBlockingStore()
	cs := NewCloudSync(store, emptyExport, 10*time.Millisecond)

	cs.NotifyChange()
	<-store.started // first push is now in flight

	// Several changes while syncing collapse into one follow-up.
	cs.NotifyChange()
	cs.NotifyChange()
	cs.NotifyChange()
	require.Equal(t, SyncInFlight, cs.Status().State)

	close(store.release)
	require.Eventually(t, func() bool {
		return store.saveCount() == 2 && cs.Status().State == SyncIdle
	}, 2*time.Second, 10*time.Millisecond)

	cs.Close()
	require.Equal(t, 2, store.saveCount())
}

func TestCloudSyncErrorIsAdvisory(t *testing.T) {
	store := memory.New()
	store.SetFail(errors.New("remote rejected"))
	cs := NewCloudSync(store, emptyExport, 10*time.Millisecond)
	defer cs.Close()

	cs.NotifyChange()
	require.Eventually(t, func() bool {
		return cs.Status().LastError != nil
	}, 2*time.Second, 10*time.Millisecond)

	st := cs.Status()
	require.Error(t, st.LastError)
	require.True(t, st.LastSyncAt.IsZero())
	require.Equal(t, SyncIdle, st.State)

	// Recovery on the next change once the remote behaves again.
	store.SetFail(nil)
	cs.NotifyChange()
	require.Eventually(t, func() bool {
		return cs.Status().LastError == nil && !cs.Status().LastSyncAt.IsZero()
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCloudSyncSyncNowBypassesDebounce(t *testing.T) {
	store := memory.New()
	cs := NewCloudSync(store, emptyExport, time.Hour)
	defer cs.Close()

	require.NoError(t, cs.SyncNow(context.Background()))
	require.Equal(t, 1, store.SaveCount())
	require.Equal(t, SyncIdle, cs.Status().State)
}

func TestCloudSyncCloseCancelsPending(t *testing.T) {
	store := memory.New()
	cs := NewCloudSync(store, emptyExport, 20*time.Millisecond)

	cs.NotifyChange()
	cs.Close()

	time.Sleep(60 * time.Millisecond)
	require.Zero(t, store.SaveCount())
}
