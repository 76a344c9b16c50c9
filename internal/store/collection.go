package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tzoee/personal-finance-manager-sub001/internal/storage"
)

// descriptor tells the generic collection how to index one entity type.
type descriptor[T any] struct {
	id        func(T) string
	sortKey   func(T) string
	createdAt func(T) time.Time
}

// collection is the shared machinery of every record store: an authoritative
// in-memory map mirrored write-through to one SQLite table. Mutations persist
// before touching memory; a persistence failure leaves both sides unchanged.
type collection[T any] struct {
	mu     sync.RWMutex
	table  *storage.Table
	desc   descriptor[T]
	items  map[string]T
	notify func()
}

func newCollection[T any](table *storage.Table, desc descriptor[T], notify func()) *collection[T] {
	return &collection[T]{
		table:  table,
		desc:   desc,
		items:  make(map[string]T),
		notify: notify,
	}
}

// load reads the whole table into memory. Called once at startup.
func (c *collection[T]) load(ctx context.Context) error {
	recs, err := c.table.List(ctx)
	if err != nil {
		return err
	}
	items := make(map[string]T, len(recs))
	for _, rec := range recs {
		var v T
		if err := json.Unmarshal(rec.Doc, &v); err != nil {
			return fmt.Errorf("decode %s doc %s: %w", c.table.Name(), rec.ID, err)
		}
		items[rec.ID] = v
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

func (c *collection[T]) record(v T) (storage.Record, error) {
	doc, err := json.Marshal(v)
	if err != nil {
		return storage.Record{}, fmt.Errorf("encode %s doc: %w", c.table.Name(), err)
	}
	return storage.Record{
		ID:        c.desc.id(v),
		SortKey:   c.desc.sortKey(v),
		CreatedAt: c.desc.createdAt(v),
		Doc:       doc,
	}, nil
}

// insert persists a brand-new entity then adds it to memory.
func (c *collection[T]) insert(ctx context.Context, v T) error {
	rec, err := c.record(v)
	if err != nil {
		return err
	}
	if err := c.table.Insert(ctx, rec); err != nil {
		return err
	}
	c.mu.Lock()
	c.items[rec.ID] = v
	c.mu.Unlock()
	c.notify()
	return nil
}

// put persists a replacement for an existing entity then updates memory.
func (c *collection[T]) put(ctx context.Context, v T) error {
	rec, err := c.record(v)
	if err != nil {
		return err
	}
	if err := c.table.Put(ctx, rec); err != nil {
		return err
	}
	c.mu.Lock()
	c.items[rec.ID] = v
	c.mu.Unlock()
	c.notify()
	return nil
}

// remove deletes by id, returning ErrNotFound for missing ids.
func (c *collection[T]) remove(ctx context.Context, id string) error {
	c.mu.RLock()
	_, ok := c.items[id]
	c.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s id %s", ErrNotFound, c.table.Name(), id)
	}
	found, err := c.table.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s id %s", ErrNotFound, c.table.Name(), id)
	}
	c.mu.Lock()
	delete(c.items, id)
	c.mu.Unlock()
	c.notify()
	return nil
}

// get returns the entity for id, if present.
func (c *collection[T]) get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[id]
	return v, ok
}

// snapshot returns a sorted copy of the collection: sort key first, creation
// time next, ID last so equal-time entries keep a stable order, matching the
// table's ordered reads.
func (c *collection[T]) snapshot() []T {
	c.mu.RLock()
	out := make([]T, 0, len(c.items))
	for _, v := range c.items {
		out = append(out, v)
	}
	c.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := c.desc.sortKey(out[i]), c.desc.sortKey(out[j])
		if ki != kj {
			return ki < kj
		}
		ti, tj := c.desc.createdAt(out[i]), c.desc.createdAt(out[j])
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return c.desc.id(out[i]) < c.desc.id(out[j])
	})
	return out
}

func (c *collection[T]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// replaceAll wipes the table and bulk-inserts vs verbatim in one transaction,
// then mirrors the result in memory. Used by replace-mode import.
func (c *collection[T]) replaceAll(ctx context.Context, vs []T) error {
	recs := make([]storage.Record, 0, len(vs))
	for _, v := range vs {
		rec, err := c.record(v)
		if err != nil {
			return err
		}
		recs = append(recs, rec)
	}
	if err := c.table.ReplaceAll(ctx, recs); err != nil {
		return err
	}
	items := make(map[string]T, len(vs))
	for _, v := range vs {
		items[c.desc.id(v)] = v
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	c.notify()
	return nil
}

// mergeAll inserts only entities whose ID is not already present; existing
// entities are never overwritten. Returns how many were added. Used by
// merge-mode import; applying the same input twice adds nothing the second
// time.
func (c *collection[T]) mergeAll(ctx context.Context, vs []T) (added int, err error) {
	var (
		recs []storage.Record
		news []T
	)
	c.mu.RLock()
	for _, v := range vs {
		if _, exists := c.items[c.desc.id(v)]; exists {
			continue
		}
		rec, recErr := c.record(v)
		if recErr != nil {
			c.mu.RUnlock()
			return 0, recErr
		}
		recs = append(recs, rec)
		news = append(news, v)
	}
	c.mu.RUnlock()

	if len(recs) == 0 {
		return 0, nil
	}
	if err := c.table.BulkInsert(ctx, recs); err != nil {
		return 0, err
	}
	c.mu.Lock()
	for _, v := range news {
		c.items[c.desc.id(v)] = v
	}
	c.mu.Unlock()
	c.notify()
	return len(news), nil
}
