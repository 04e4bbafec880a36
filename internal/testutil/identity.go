package testutil

import (
	"context"
	"sync"
	"time"

	"rockalpatio/internal/model"
	"rockalpatio/internal/store"
)

// Users is an in-memory user repository.
type Users struct {
	mu     sync.Mutex
	users  []model.User
	nextID int64

	// Error injection
	FindErr   error
	CreateErr error
}

func NewUsers() *Users {
	return &Users{nextID: 1}
}

// CreateUser implements auth.UserStore.
func (u *Users) CreateUser(_ context.Context, user *model.User) error {
	if u.CreateErr != nil {
		return u.CreateErr
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, existing := range u.users {
		if existing.Email == user.Email {
			return &store.Error{Kind: store.KindConflict, Op: "insert", Table: "users"}
		}
	}
	user.ID = u.nextID
	user.CreatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	u.nextID++
	u.users = append(u.users, *user)
	return nil
}

// FindByEmail implements auth.UserStore.
func (u *Users) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return u.find(func(x model.User) bool { return x.Email == email })
}

// FindByID implements auth.UserStore.
func (u *Users) FindByID(_ context.Context, id int64) (*model.User, error) {
	return u.find(func(x model.User) bool { return x.ID == id })
}

func (u *Users) find(match func(model.User) bool) (*model.User, error) {
	if u.FindErr != nil {
		return nil, u.FindErr
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, x := range u.users {
		if match(x) {
			found := x
			return &found, nil
		}
	}
	return nil, store.Wrap("select", "users", store.ErrNotFound)
}

// Revocations is an in-memory session.Revoker.
type Revocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time

	Err error
}

func NewRevocations() *Revocations {
	return &Revocations{revoked: make(map[string]time.Time)}
}

func (r *Revocations) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[tokenID] = until
	return nil
}

func (r *Revocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if r.Err != nil {
		return false, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[tokenID]
	return ok, nil
}

// Count returns the number of revoked tokens.
func (r *Revocations) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.revoked)
}
