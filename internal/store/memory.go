package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryRepository keeps JSON snapshots of documents in process memory.
// Used when DB_DRIVER=memory and by handler tests.
type MemoryRepository[T any] struct {
	mu   sync.RWMutex
	rows map[string]memoryRow
	seq  int
	now  func() time.Time
}

type memoryRow struct {
	seq     int
	created time.Time
	data    []byte
}

func NewMemory[T any]() *MemoryRepository[T] {
	return &MemoryRepository[T]{rows: map[string]memoryRow{}, now: time.Now}
}

func (r *MemoryRepository[T]) Create(_ context.Context, v *T) error {
	m := base(v)
	if m == nil {
		return fmt.Errorf("memory repository: %T does not embed store.Model", v)
	}
	m.ID = ""
	m.CreatedAt = time.Time{}
	m.Stamp(r.now())

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.rows[m.ID] = memoryRow{seq: r.seq, created: m.CreatedAt, data: data}
	return nil
}

func (r *MemoryRepository[T]) List(_ context.Context, order Order) ([]T, error) {
	r.mu.RLock()
	rows := make([]memoryRow, 0, len(r.rows))
	for _, row := range r.rows {
		rows = append(rows, row)
	}
	r.mu.RUnlock()

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.created.Equal(b.created) {
			if order == NewestFirst {
				return a.created.After(b.created)
			}
			return a.created.Before(b.created)
		}
		if order == NewestFirst {
			return a.seq > b.seq
		}
		return a.seq < b.seq
	})

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		var v T
		if err := json.Unmarshal(row.data, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *MemoryRepository[T]) Get(_ context.Context, id string) (*T, error) {
	r.mu.RLock()
	row, ok := r.rows[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	var v T
	if err := json.Unmarshal(row.data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *MemoryRepository[T]) First(ctx context.Context) (*T, error) {
	all, err := r.List(ctx, OldestFirst)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, ErrNotFound
	}
	return &all[0], nil
}

func (r *MemoryRepository[T]) Save(_ context.Context, v *T) error {
	m := base(v)
	if m == nil {
		return fmt.Errorf("memory repository: %T does not embed store.Model", v)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[m.ID]
	if !ok {
		return ErrNotFound
	}
	m.CreatedAt = row.created
	m.Stamp(r.now())

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	row.data = data
	r.rows[m.ID] = row
	return nil
}

func (r *MemoryRepository[T]) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *MemoryRepository[T]) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.rows)), nil
}
