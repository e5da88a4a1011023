package task

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/kazz187/taskmarket/pkg/cerr"
	"github.com/kazz187/taskmarket/pkg/future"
)

// Store is the authoritative task collection. Every operation runs in the
// background, after the configured latency, and returns a future.
// Operations apply one at a time in the order they were submitted. Once
// started an operation always runs to completion; cancelling the context
// passed to Await only stops the wait.
type Store struct {
	repo    Repository
	latency time.Duration
	now     func() time.Time
	newID   func() string

	mu     sync.Mutex // serializes repository access
	runner future.Runner

	closeMu sync.RWMutex
	closed  bool
}

type StoreOption func(*Store)

// WithLatency delays every operation by d before it touches the collection.
func WithLatency(d time.Duration) StoreOption {
	return func(s *Store) { s.latency = d }
}

func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(newID func() string) StoreOption {
	return func(s *Store) { s.newID = newID }
}

func NewStore(repo Repository, opts ...StoreOption) *Store {
	s := &Store{
		repo:  repo,
		now:   time.Now,
		newID: func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func submit[T any](ctx context.Context, s *Store, fn func(ctx context.Context) (T, error)) *future.Future[T] {
	s.closeMu.RLock()
	defer s.closeMu.RUnlock()
	if s.closed {
		var zero T
		return future.Resolved(zero, cerr.NewError(cerr.Unavailable, "task store is closed", nil))
	}

	ctx = context.WithoutCancel(ctx)
	ready := time.Now().Add(s.latency)
	return future.Run(&s.runner, func() (T, error) {
		// Operations queue behind each other; the latency runs from
		// submission, not from the end of the previous operation.
		time.Sleep(time.Until(ready))
		s.mu.Lock()
		defer s.mu.Unlock()
		return fn(ctx)
	})
}

// Create adds a new open task posted by nt.PostedBy.
func (s *Store) Create(ctx context.Context, nt NewTask) *future.Future[*Task] {
	return submit(ctx, s, func(ctx context.Context) (*Task, error) {
		t := &Task{
			ID:          s.newID(),
			Title:       nt.Title,
			Description: nt.Description,
			Category:    nt.Category,
			Payment:     nt.Payment,
			Location:    nt.Location,
			Status:      StatusOpen,
			CreatedAt:   s.now(),
			PostedBy:    nt.PostedBy,
			Tags:        nt.Tags,
			Attachments: nt.Attachments,
		}
		if nt.Coordinates != nil {
			coords := *nt.Coordinates
			t.Coordinates = &coords
		}
		if nt.DueDate != nil {
			due := *nt.DueDate
			t.DueDate = &due
		}
		t = t.Clone()
		if err := s.repo.Create(ctx, t); err != nil {
			return nil, err
		}
		slog.DebugContext(ctx, "task created", "task_id", t.ID, "posted_by", t.PostedBy.ID)
		return t, nil
	})
}

func (s *Store) Get(ctx context.Context, id string) *future.Future[*Task] {
	return submit(ctx, s, func(ctx context.Context) (*Task, error) {
		t, err := s.repo.Get(ctx, id)
		if err != nil {
			if cerr.IsCode(err, cerr.NotFound) {
				return nil, errNotFound(id)
			}
			return nil, err
		}
		return t, nil
	})
}

// ListAll returns the whole collection in insertion order.
func (s *Store) ListAll(ctx context.Context) *future.Future[[]*Task] {
	return submit(ctx, s, func(ctx context.Context) ([]*Task, error) {
		return s.repo.List(ctx)
	})
}

// Query returns the collection narrowed and ordered by f.
func (s *Store) Query(ctx context.Context, f Filter) *future.Future[[]*Task] {
	return submit(ctx, s, func(ctx context.Context) ([]*Task, error) {
		tasks, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		return f.Apply(tasks), nil
	})
}

// Update merges p into the task. A status change must follow the lifecycle.
func (s *Store) Update(ctx context.Context, id string, p Patch) *future.Future[*Task] {
	return s.update(ctx, id, nil, p)
}

// update runs guard against the current task before applying p, all within
// one operation.
func (s *Store) update(ctx context.Context, id string, guard func(*Task) error, p Patch) *future.Future[*Task] {
	return submit(ctx, s, func(ctx context.Context) (*Task, error) {
		before, err := s.repo.Get(ctx, id)
		if err != nil {
			if cerr.IsCode(err, cerr.NotFound) {
				return nil, errNotFound(id)
			}
			return nil, err
		}
		if guard != nil {
			if err := guard(before); err != nil {
				return nil, err
			}
		}
		after := before.Clone()
		p.apply(after)
		if err := checkDueDate(after); err != nil {
			return nil, err
		}
		if err := checkTransition(before, after); err != nil {
			return nil, err
		}
		if err := s.repo.Update(ctx, after); err != nil {
			return nil, err
		}
		if before.Status != after.Status {
			slog.DebugContext(ctx, "task status changed", "task_id", id, "from", before.Status, "to", after.Status)
		}
		return after, nil
	})
}

// Delete removes the task and reports true, whether or not it existed.
func (s *Store) Delete(ctx context.Context, id string) *future.Future[bool] {
	return s.delete(ctx, id, nil)
}

// delete runs guard against the task, when it exists, before removing it.
func (s *Store) delete(ctx context.Context, id string, guard func(*Task) error) *future.Future[bool] {
	return submit(ctx, s, func(ctx context.Context) (bool, error) {
		if guard != nil {
			t, err := s.repo.Get(ctx, id)
			switch {
			case err == nil:
				if err := guard(t); err != nil {
					return false, err
				}
			case !cerr.IsCode(err, cerr.NotFound):
				return false, err
			}
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return false, err
		}
		slog.DebugContext(ctx, "task deleted", "task_id", id)
		return true, nil
	})
}

// Close rejects new operations and waits for the started ones to finish.
func (s *Store) Close() {
	s.closeMu.Lock()
	s.closed = true
	s.closeMu.Unlock()
	s.runner.Wait()
}
