package repositoryimpl

import (
	"context"
	"slices"
	"sync"

	"github.com/kazz187/taskmarket/internal/task"
	"github.com/kazz187/taskmarket/pkg/cerr"
)

// MemoryRepository keeps tasks in insertion order. Every task is cloned on
// the way in and out.
type MemoryRepository struct {
	mu    sync.RWMutex
	tasks []*task.Task
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) indexOf(id string) int {
	return slices.IndexFunc(r.tasks, func(t *task.Task) bool {
		return t.ID == id
	})
}

func (r *MemoryRepository) Create(_ context.Context, t *task.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(t.ID) >= 0 {
		return cerr.NewError(cerr.AlreadyExists, "task already exists", nil)
	}
	r.tasks = append(r.tasks, t.Clone())
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, cerr.NewError(cerr.NotFound, "task not found", nil)
	}
	return r.tasks[i].Clone(), nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*task.Task, len(r.tasks))
	for i, t := range r.tasks {
		out[i] = t.Clone()
	}
	return out, nil
}

// Update replaces the stored task in place, keeping its position.
func (r *MemoryRepository) Update(_ context.Context, t *task.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(t.ID)
	if i < 0 {
		return cerr.NewError(cerr.NotFound, "task not found", nil)
	}
	r.tasks[i] = t.Clone()
	return nil
}

// Delete removes the task. Deleting an unknown id is not an error.
func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = slices.DeleteFunc(r.tasks, func(t *task.Task) bool {
		return t.ID == id
	})
	return nil
}
