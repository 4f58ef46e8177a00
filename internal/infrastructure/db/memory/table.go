// Package memory provides process-local repositories. They honour the same
// contracts as the MongoDB repositories (sequence ids, insertion order,
// unique keys) and back local development and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/zebrands/catalog-api/internal/core/domain"
)

// table is a mutex-guarded map of rows keyed by a sequence id with a single
// unique secondary key.
type table[T any] struct {
	mu     sync.RWMutex
	rows   map[int64]*T
	nextID int64
	id     func(*T) *int64
	key    func(*T) string
	// keep, when set, copies server-maintained fields from the stored row
	// onto a replacement so Replace never rolls them back.
	keep func(stored, next *T)
}

func newTable[T any](id func(*T) *int64, key func(*T) string) *table[T] {
	return &table[T]{rows: make(map[int64]*T), id: id, key: key}
}

func (t *table[T]) FindAll(_ context.Context) ([]*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		out = append(out, clone(t.rows[id]))
	}
	return out, nil
}

func (t *table[T]) FindByID(_ context.Context, id int64) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(row), nil
}

func (t *table[T]) Insert(_ context.Context, v *T) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkUnique(0, v); err != nil {
		return nil, err
	}
	t.nextID++
	row := clone(v)
	*t.id(row) = t.nextID
	t.rows[t.nextID] = row
	return clone(row), nil
}

func (t *table[T]) Replace(_ context.Context, id int64, v *T) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stored, ok := t.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if err := t.checkUnique(id, v); err != nil {
		return nil, err
	}
	row := clone(v)
	*t.id(row) = id
	if t.keep != nil {
		t.keep(stored, row)
	}
	t.rows[id] = row
	return clone(row), nil
}

func (t *table[T]) Delete(_ context.Context, id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

// findByKey resolves a row by its unique secondary key.
func (t *table[T]) findByKey(key string) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, row := range t.rows {
		if t.key(row) == key {
			return clone(row), nil
		}
	}
	return nil, domain.ErrNotFound
}

// update applies fn to the stored row under the write lock.
func (t *table[T]) update(id int64, fn func(*T)) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	fn(row)
	return clone(row), nil
}

// checkUnique must be called with the write lock held. self is the id of
// the row being replaced, or 0 on insert.
func (t *table[T]) checkUnique(self int64, v *T) error {
	key := t.key(v)
	for id, row := range t.rows {
		if id != self && t.key(row) == key {
			return fmt.Errorf("key %q: %w", key, domain.ErrDuplicateKey)
		}
	}
	return nil
}

func clone[T any](v *T) *T {
	c := *v
	return &c
}
