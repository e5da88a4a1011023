package repositoryimpl

import (
	"context"
	"strings"
	"sync"

	"github.com/kazz187/taskmarket/internal/user"
	"github.com/kazz187/taskmarket/pkg/cerr"
)

// MemoryRepository keeps users in insertion order. Emails are compared
// case-insensitively for uniqueness.
type MemoryRepository struct {
	mu    sync.RWMutex
	users []*user.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) indexOf(id string) int {
	for i, u := range r.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (r *MemoryRepository) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.ID == u.ID {
			return cerr.NewError(cerr.AlreadyExists, "user already exists", nil)
		}
		if strings.EqualFold(existing.Email, u.Email) {
			return cerr.NewError(cerr.AlreadyExists, "email already in use", nil)
		}
	}
	r.users = append(r.users, u.Clone())
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, cerr.NewError(cerr.NotFound, "user not found", nil)
	}
	return r.users[i].Clone(), nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u.Clone(), nil
		}
	}
	return nil, cerr.NewError(cerr.NotFound, "user not found", nil)
}

func (r *MemoryRepository) List(_ context.Context) ([]*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*user.User, len(r.users))
	for i, u := range r.users {
		out[i] = u.Clone()
	}
	return out, nil
}

func (r *MemoryRepository) Update(_ context.Context, id string, fn func(u *user.User) error) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, cerr.NewError(cerr.NotFound, "user not found", nil)
	}
	updated := r.users[i].Clone()
	if err := fn(updated); err != nil {
		return nil, err
	}
	updated.ID = id
	r.users[i] = updated
	return updated.Clone(), nil
}
