package store

import (
	"context"
	"fmt"
	"time"

	"github.com/tzoee/personal-finance-manager-sub001/internal/core"
	"github.com/tzoee/personal-finance-manager-sub001/internal/storage"
)

// CategoryStore owns the category collection, including each category's
// embedded subcategories.
type CategoryStore struct {
	col  *collection[core.Category]
	opts Options
}

func NewCategoryStore(table *storage.Table, opts Options) *CategoryStore {
	opts = opts.withDefaults()
	return &CategoryStore{
		col: newCollection(table, descriptor[core.Category]{
			id:        func(c core.Category) string { return c.ID },
			sortKey:   func(c core.Category) string { return c.Name },
			createdAt: func(c core.Category) time.Time { return c.CreatedAt },
		}, opts.Notify),
		opts: opts,
	}
}

func (s *CategoryStore) Initialize(ctx context.Context) error {
	return s.col.load(ctx)
}

// Names returns every category name, for the caller-supplied uniqueness list
// the category validator expects.
func (s *CategoryStore) Names() []string {
	cats := s.col.snapshot()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	return names
}

func (s *CategoryStore) Add(ctx context.Context, input core.Category) (core.Category, error) {
	input.ID = s.opts.NewID()
	input.CreatedAt = s.opts.Now()
	if input.Subcategories == nil {
		input.Subcategories = []core.Subcategory{}
	}
	for i := range input.Subcategories {
		if input.Subcategories[i].ID == "" {
			input.Subcategories[i].ID = s.opts.NewID()
		}
	}
	if err := s.col.insert(ctx, input); err != nil {
		return core.Category{}, err
	}
	return input, nil
}

func (s *CategoryStore) Update(ctx context.Context, id string, mutate func(*core.Category)) error {
	cur, ok := s.col.get(id)
	if !ok {
		return fmt.Errorf("%w: category %s", ErrNotFound, id)
	}
	mutate(&cur)
	cur.ID = id
	return s.col.put(ctx, cur)
}

// AddSubcategory appends a named subcategory; its ID is unique within the
// category only.
func (s *CategoryStore) AddSubcategory(ctx context.Context, categoryID, name string) (core.Subcategory, error) {
	sub := core.Subcategory{ID: s.opts.NewID(), Name: name}
	err := s.Update(ctx, categoryID, func(c *core.Category) {
		c.Subcategories = append(c.Subcategories, sub)
	})
	if err != nil {
		return core.Subcategory{}, err
	}
	return sub, nil
}

func (s *CategoryStore) Delete(ctx context.Context, id string) error {
	return s.col.remove(ctx, id)
}

func (s *CategoryStore) Get(id string) (core.Category, error) {
	c, ok := s.col.get(id)
	if !ok {
		return core.Category{}, fmt.Errorf("%w: category %s", ErrNotFound, id)
	}
	return c, nil
}

func (s *CategoryStore) List() []core.Category { return s.col.snapshot() }

func (s *CategoryStore) Count() int { return s.col.len() }

func (s *CategoryStore) ReplaceAll(ctx context.Context, vs []core.Category) error {
	return s.col.replaceAll(ctx, vs)
}

func (s *CategoryStore) MergeAll(ctx context.Context, vs []core.Category) (int, error) {
	return s.col.mergeAll(ctx, vs)
}
