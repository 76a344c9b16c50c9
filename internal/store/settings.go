package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/tzoee/personal-finance-manager-sub001/internal/core"
	"github.com/tzoee/personal-finance-manager-sub001/internal/storage"
)

// settingsRowID is the fixed primary key of the single settings row.
const settingsRowID = "settings"

// SettingsStore holds the singleton settings record. On first run the row
// does not exist and defaults are written.
type SettingsStore struct {
	table *storage.Table
	opts  Options

	mu  sync.RWMutex
	cur core.Settings
}

func NewSettingsStore(table *storage.Table, opts Options) *SettingsStore {
	return &SettingsStore{table: table, opts: opts.withDefaults()}
}

func (s *SettingsStore) Initialize(ctx context.Context) error {
	rec, err := s.table.Get(ctx, settingsRowID)
	if errors.Is(err, storage.ErrNoRow) {
		defaults := core.DefaultSettings()
		defaults.UpdatedAt = s.opts.Now()
		return s.persist(ctx, defaults, false)
	}
	if err != nil {
		return err
	}
	var loaded core.Settings
	if err := json.Unmarshal(rec.Doc, &loaded); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	s.mu.Lock()
	s.cur = loaded
	s.mu.Unlock()
	return nil
}

func (s *SettingsStore) Get() core.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *SettingsStore) Update(ctx context.Context, mutate func(*core.Settings)) error {
	s.mu.RLock()
	next := s.cur
	s.mu.RUnlock()
	mutate(&next)
	next.UpdatedAt = s.opts.Now()
	return s.persist(ctx, next, true)
}

// Reset restores the defaults, discarding any customization.
func (s *SettingsStore) Reset(ctx context.Context) error {
	defaults := core.DefaultSettings()
	defaults.UpdatedAt = s.opts.Now()
	return s.persist(ctx, defaults, true)
}

// Replace overwrites the settings wholesale. Imports use it in both merge
// and replace mode.
func (s *SettingsStore) Replace(ctx context.Context, next core.Settings) error {
	return s.persist(ctx, next, true)
}

func (s *SettingsStore) persist(ctx context.Context, next core.Settings, notify bool) error {
	doc, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	rec := storage.Record{
		ID:        settingsRowID,
		SortKey:   settingsRowID,
		CreatedAt: next.UpdatedAt,
		Doc:       doc,
	}
	if err := s.table.Put(ctx, rec); err != nil {
		return err
	}
	s.mu.Lock()
	s.cur = next
	s.mu.Unlock()
	if notify {
		s.opts.Notify()
	}
	return nil
}
