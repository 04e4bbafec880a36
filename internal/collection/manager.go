package collection

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"rockalpatio/internal/model"
	"rockalpatio/internal/store"
	"rockalpatio/pkg/logger"
	"rockalpatio/pkg/metrics"
)

// Entity is a row with a store-assigned identity.
type Entity interface {
	EntityID() int64
}

// FieldRule describes one field that may be changed in place.
// Normalize validates the raw input and returns the value to persist;
// Apply writes that value onto an in-memory copy of the row.
type FieldRule[T any] struct {
	Normalize func(raw any) (any, error)
	Apply     func(row *T, value any)
}

// Config wires a Manager to one entity type.
type Config[T Entity, D any] struct {
	Table store.Table[T]

	// Key returns the categorical field used by the filter tabs.
	Key        func(T) string
	Categories []model.Option

	NewDraft func() D
	// Build validates and normalizes a draft into a row ready for insert.
	// actor may be nil; Build returns ErrUnauthorized if it needs one.
	Build func(draft D, actor *store.Actor) (*T, error)

	Fields map[string]FieldRule[T]
}

// Manager loads, projects and mutates one collection.
type Manager[T Entity, D any] struct {
	cfg    Config[T, D]
	logger *zap.Logger
}

func NewManager[T Entity, D any](cfg Config[T, D], logger *zap.Logger) *Manager[T, D] {
	return &Manager[T, D]{cfg: cfg, logger: logger}
}

// Table returns the name of the backing table.
func (m *Manager[T, D]) Table() string { return m.cfg.Table.Name() }

// NewView returns a view that has not been loaded yet.
func (m *Manager[T, D]) NewView() *View[T, D] {
	return &View[T, D]{
		State:  StateLoading,
		Filter: All,
		Draft:  m.cfg.NewDraft(),
	}
}

// Load replaces the view's items with the full collection, newest first.
// On failure the previous items are kept, the view is marked failed and
// the error is both stored and returned so a retry can be offered.
func (m *Manager[T, D]) Load(ctx context.Context, v *View[T, D]) error {
	log := logger.WithTrace(ctx, m.logger).With(zap.String("table", m.Table()))

	rows, err := m.cfg.Table.Select(ctx)
	if err != nil {
		err = store.Wrap("select", m.Table(), err)
		v.State = StateFailed
		v.LoadErr = err
		m.record("select", err)
		log.Error("Failed to load collection", zap.Error(err))
		return err
	}
	if rows == nil {
		rows = []T{}
	}

	v.Items = rows
	v.State = StateReady
	v.LoadErr = nil
	m.record("select", nil)

	// keep the detail panel in step with what the store now says
	if v.Selected != nil {
		id := (*v.Selected).EntityID()
		for i := range rows {
			if rows[i].EntityID() == id {
				sel := rows[i]
				v.Selected = &sel
				break
			}
		}
	}

	log.Debug("Collection loaded", zap.Int("count", len(rows)))
	return nil
}

// Visible is the projection of the loaded items through the view's filter.
func (m *Manager[T, D]) Visible(v *View[T, D]) []T {
	return Project(v.Items, v.Filter, m.cfg.Key)
}

// Tabs returns the filter tabs with their counts.
func (m *Manager[T, D]) Tabs(v *View[T, D]) []Tab {
	return Tabs(v.Items, m.cfg.Categories, m.cfg.Key, v.Filter)
}

// SetFilter changes the active category. Unknown categories are rejected.
func (m *Manager[T, D]) SetFilter(v *View[T, D], category string) error {
	if IsAll(category) {
		v.Filter = All
		return nil
	}
	if !model.Declared(m.cfg.Categories, category) {
		return Undeclared("filter", category)
	}
	v.Filter = category
	return nil
}

// Select opens the row with the given id in the detail panel. The view gets
// its own copy of the row.
func (m *Manager[T, D]) Select(v *View[T, D], id int64) bool {
	for i := range v.Items {
		if v.Items[i].EntityID() == id {
			sel := v.Items[i]
			v.Selected = &sel
			return true
		}
	}
	return false
}

func (m *Manager[T, D]) ClearSelection(v *View[T, D]) { v.Selected = nil }

func (m *Manager[T, D]) OpenDialog(v *View[T, D]) { v.DialogOpen = true }

// CloseDialog hides the creation form. The draft is kept, like cancelling
// the form in the page.
func (m *Manager[T, D]) CloseDialog(v *View[T, D]) { v.DialogOpen = false }

// Create validates the view's draft, inserts it and reloads the collection.
// On any failure the draft and dialog are left untouched and the error is
// stored on the view and returned.
func (m *Manager[T, D]) Create(ctx context.Context, v *View[T, D], actor *store.Actor) error {
	log := logger.WithTrace(ctx, m.logger).With(zap.String("table", m.Table()))

	row, err := m.cfg.Build(v.Draft, actor)
	if err != nil {
		v.FormErr = err
		m.record("insert", err)
		log.Info("Create rejected", zap.Error(err))
		return err
	}

	if err := m.cfg.Table.Insert(ctx, row); err != nil {
		err = store.Wrap("insert", m.Table(), err)
		v.FormErr = err
		m.record("insert", err)
		log.Error("Failed to create row", zap.Error(err))
		return err
	}
	m.record("insert", nil)
	log.Info("Row created", zap.Int64("id", (*row).EntityID()))

	v.Draft = m.cfg.NewDraft()
	v.DialogOpen = false
	v.FormErr = nil

	// the insert stands even if the reload fails; the view reports that itself
	_ = m.Load(ctx, v)
	return nil
}

// UpdateField changes one field of one row and reloads the collection. If
// the row is open in the detail panel its copy is patched right away.
func (m *Manager[T, D]) UpdateField(ctx context.Context, v *View[T, D], id int64, field string, raw any) error {
	log := logger.WithTrace(ctx, m.logger).With(
		zap.String("table", m.Table()),
		zap.Int64("id", id),
		zap.String("field", field),
	)

	rule, ok := m.cfg.Fields[field]
	if !ok {
		err := &FieldError{Field: field, Reason: "cannot be changed"}
		m.record("update", err)
		return err
	}

	value, err := rule.Normalize(raw)
	if err != nil {
		m.record("update", err)
		log.Info("Update rejected", zap.Error(err))
		return err
	}

	if err := m.cfg.Table.Update(ctx, id, store.Patch{field: value}); err != nil {
		err = store.Wrap("update", m.Table(), err)
		m.record("update", err)
		log.Error("Failed to update row", zap.Error(err))
		return err
	}
	m.record("update", nil)
	log.Info("Row updated", zap.Any("value", value))

	if v.Selected != nil && (*v.Selected).EntityID() == id {
		rule.Apply(v.Selected, value)
	}

	_ = m.Load(ctx, v)
	return nil
}

func (m *Manager[T, D]) record(op string, err error) {
	metrics.IncrementStoreOperation(m.Table(), op, resultLabel(err))
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var fe *FieldError
	switch {
	case errors.As(err, &fe):
		return string(store.KindInvalid)
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	}
	return string(store.KindOf(err))
}
