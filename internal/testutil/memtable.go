// Package testutil provides in-memory fakes for tests.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"rockalpatio/internal/store"
)

type entity interface {
	EntityID() int64
}

type memRow struct {
	id      int64
	created time.Time
	data    []byte // JSON encoding of the row
}

// MemTable is an in-memory store.Table. Rows are kept JSON-encoded so
// every Select hands out fresh copies and Update touches only the patched
// columns, which are addressed by their JSON names.
type MemTable[T entity] struct {
	mu     sync.Mutex
	name   string
	rows   []memRow
	nextID int64
	clock  time.Time

	// Error injection
	SelectErr error
	InsertErr error
	UpdateErr error

	// Call counters
	Selects int
	Inserts int
	Updates int

	// OnSelect runs at the start of every Select, before any error injection.
	OnSelect func()
}

func NewMemTable[T entity](name string) *MemTable[T] {
	return &MemTable[T]{
		name:   name,
		nextID: 1,
		clock:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (t *MemTable[T]) Name() string { return t.name }

// Seed inserts rows as if they had been created in order, oldest first.
func (t *MemTable[T]) Seed(rows ...T) {
	for i := range rows {
		row := rows[i]
		if err := t.insert(&row, row.EntityID()); err != nil {
			panic(err)
		}
	}
}

// Len returns the number of stored rows.
func (t *MemTable[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

// Get returns a copy of the row with the given id.
func (t *MemTable[T]) Get(id int64) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out T
	for _, r := range t.rows {
		if r.id == id {
			_ = json.Unmarshal(r.data, &out)
			return out, true
		}
	}
	return out, false
}

// Raw returns the stored JSON of the row with the given id.
func (t *MemTable[T]) Raw(id int64) []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range t.rows {
		if r.id == id {
			return append([]byte(nil), r.data...)
		}
	}
	return nil
}

func (t *MemTable[T]) Select(_ context.Context) ([]T, error) {
	if t.OnSelect != nil {
		t.OnSelect()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Selects++
	if t.SelectErr != nil {
		return nil, t.SelectErr
	}

	ordered := make([]memRow, len(t.rows))
	copy(ordered, t.rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].created.Equal(ordered[j].created) {
			return ordered[i].created.After(ordered[j].created)
		}
		return ordered[i].id > ordered[j].id
	})

	out := make([]T, 0, len(ordered))
	for _, r := range ordered {
		var row T
		if err := json.Unmarshal(r.data, &row); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func (t *MemTable[T]) Insert(_ context.Context, row *T) error {
	t.mu.Lock()
	t.Inserts++
	err := t.InsertErr
	t.mu.Unlock()
	if err != nil {
		return err
	}
	return t.insert(row, 0)
}

func (t *MemTable[T]) insert(row *T, id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if id == 0 {
		id = t.nextID
	}
	if id >= t.nextID {
		t.nextID = id + 1
	}
	t.clock = t.clock.Add(time.Second)

	fields, err := toMap(row)
	if err != nil {
		return err
	}
	fields["id"] = id
	fields["created_at"] = t.clock
	data, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, row); err != nil {
		return err
	}

	t.rows = append(t.rows, memRow{id: id, created: t.clock, data: data})
	return nil
}

func (t *MemTable[T]) Update(_ context.Context, id int64, patch store.Patch) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Updates++
	if t.UpdateErr != nil {
		return t.UpdateErr
	}

	for i, r := range t.rows {
		if r.id != id {
			continue
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(r.data, &fields); err != nil {
			return err
		}
		for col, v := range patch {
			if _, ok := fields[col]; !ok || col == "id" || col == "created_at" {
				return fmt.Errorf("column %q cannot be updated", col)
			}
			enc, err := json.Marshal(v)
			if err != nil {
				return err
			}
			fields[col] = enc
		}
		data, err := json.Marshal(fields)
		if err != nil {
			return err
		}
		t.rows[i].data = data
		return nil
	}
	return store.ErrNotFound
}

func toMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
