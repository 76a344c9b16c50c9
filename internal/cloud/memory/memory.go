// Package memory is an in-process cloud store used in tests and offline
// development.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/tzoee/personal-finance-manager-sub001/internal/cloud"
	"github.com/tzoee/personal-finance-manager-sub001/internal/snapshot"
)

type Store struct {
	mu   sync.Mutex
	data []byte

	fail  error
	saves int
}

var _ cloud.Store = (*Store)(nil)

func New() *Store { return &Store{} }

// SetFail makes every subsequent call return err. Tests use it to simulate
// network trouble; pass nil to restore normal behavior.
func (s *Store) SetFail(err error) {
	s.mu.Lock()
	s.fail = err
	s.mu.Unlock()
}

// SaveCount reports how many SaveToCloud calls have succeeded.
func (s *Store) SaveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *Store) SaveToCloud(_ context.Context, snap snapshot.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	s.data = body
	s.saves++
	return nil
}

func (s *Store) LoadFromCloud(context.Context) (snapshot.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return snapshot.Snapshot{}, s.fail
	}
	if s.data == nil {
		return snapshot.Snapshot{}, cloud.ErrNoData
	}
	var snap snapshot.Snapshot
	if err := json.Unmarshal(s.data, &snap); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

func (s *Store) HasCloudData(context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return false, s.fail
	}
	return s.data != nil, nil
}

func (s *Store) DeleteCloudData(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.data = nil
	return nil
}
