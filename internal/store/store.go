// Package store defines the table-oriented persistence contract the
// dashboard collections are loaded from and written to.
package store

import "context"

// Patch maps column names to new values for a single-row update.
type Patch map[string]any

// Table is one remote table holding rows of type T.
//
// Select returns every row ordered by creation time, newest first.
// Insert assigns the row's id and creation time on success.
// Update writes patch to the row identified by id and returns a
// KindNotFound error when no such row exists.
type Table[T any] interface {
	Name() string
	Select(ctx context.Context) ([]T, error)
	Insert(ctx context.Context, row *T) error
	Update(ctx context.Context, id int64, patch Patch) error
}

// Actor is the authenticated user performing an operation.
type Actor struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
