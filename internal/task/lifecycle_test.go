package task_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/taskmarket/internal/task"
	"github.com/kazz187/taskmarket/pkg/cerr"
)

func TestCanTransition(t *testing.T) {
	statuses := []task.Status{
		task.StatusOpen,
		task.StatusAssigned,
		task.StatusInProgress,
		task.StatusCompleted,
		task.StatusCancelled,
	}
	allowed := map[[2]task.Status]bool{
		{task.StatusOpen, task.StatusAssigned}:      true,
		{task.StatusAssigned, task.StatusCompleted}: true,
		{task.StatusAssigned, task.StatusCancelled}: true,
	}
	for _, from := range statuses {
		for _, to := range statuses {
			assert.Equal(t, allowed[[2]task.Status{from, to}], task.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestLifecycle_HappyPath(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	l := task.NewLifecycle(s)
	created := create(t, s, newTask("walk the dog"))

	assigned, err := l.Assign(ctx, created.ID, emma, david).Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, task.StatusAssigned, assigned.Status)
	require.NotNil(t, assigned.AssignedTo)
	assert.Equal(t, david, *assigned.AssignedTo)

	completed, err := l.Complete(ctx, created.ID, emma).Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, completed.Status)
	assert.Equal(t, david, *completed.AssignedTo)
}

func TestLifecycle_Cancel(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	l := task.NewLifecycle(s)
	created := create(t, s, newTask("fix faucet"))

	_, err := l.Cancel(ctx, created.ID, emma).Await(ctx)
	require.Error(t, err, "an open task cannot be cancelled")
	assert.True(t, errors.Is(err, task.ErrInvalidTransition))

	_, err = l.Assign(ctx, created.ID, emma, david).Await(ctx)
	require.NoError(t, err)
	cancelled, err := l.Cancel(ctx, created.ID, emma).Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCancelled, cancelled.Status)

	_, err = l.Assign(ctx, created.ID, emma, sarah).Await(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, task.ErrInvalidTransition))
}

func TestLifecycle_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		prepare  func(ctx context.Context, l *task.Lifecycle, id string) error
		act      func(ctx context.Context, l *task.Lifecycle, id string) error
		wantCode cerr.Code
	}{
		{
			name: "assign by someone other than the poster",
			act: func(ctx context.Context, l *task.Lifecycle, id string) error {
				_, err := l.Assign(ctx, id, sarah, david).Await(ctx)
				return err
			},
			wantCode: cerr.PermissionDenied,
		},
		{
			name: "assign twice",
			prepare: func(ctx context.Context, l *task.Lifecycle, id string) error {
				_, err := l.Assign(ctx, id, emma, david).Await(ctx)
				return err
			},
			act: func(ctx context.Context, l *task.Lifecycle, id string) error {
				_, err := l.Assign(ctx, id, emma, sarah).Await(ctx)
				return err
			},
			wantCode: cerr.FailedPrecondition,
		},
		{
			name: "complete an open task",
			act: func(ctx context.Context, l *task.Lifecycle, id string) error {
				_, err := l.Complete(ctx, id, emma).Await(ctx)
				return err
			},
			wantCode: cerr.FailedPrecondition,
		},
		{
			name: "complete by the assignee",
			prepare: func(ctx context.Context, l *task.Lifecycle, id string) error {
				_, err := l.Assign(ctx, id, emma, david).Await(ctx)
				return err
			},
			act: func(ctx context.Context, l *task.Lifecycle, id string) error {
				_, err := l.Complete(ctx, id, david).Await(ctx)
				return err
			},
			wantCode: cerr.PermissionDenied,
		},
		{
			name: "cancel a completed task",
			prepare: func(ctx context.Context, l *task.Lifecycle, id string) error {
				if _, err := l.Assign(ctx, id, emma, david).Await(ctx); err != nil {
					return err
				}
				_, err := l.Complete(ctx, id, emma).Await(ctx)
				return err
			},
			act: func(ctx context.Context, l *task.Lifecycle, id string) error {
				_, err := l.Cancel(ctx, id, emma).Await(ctx)
				return err
			},
			wantCode: cerr.FailedPrecondition,
		},
		{
			name: "unknown task",
			act: func(ctx context.Context, l *task.Lifecycle, _ string) error {
				_, err := l.Complete(ctx, "missing", emma).Await(ctx)
				return err
			},
			wantCode: cerr.NotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := newStore(t)
			l := task.NewLifecycle(s)
			created := create(t, s, newTask(tt.name))
			if tt.prepare != nil {
				require.NoError(t, tt.prepare(ctx, l, created.ID))
			}
			before, err := s.Get(ctx, created.ID).Await(ctx)
			require.NoError(t, err)

			err = tt.act(ctx, l, created.ID)
			require.Error(t, err)
			assert.True(t, cerr.IsCode(err, tt.wantCode), "got %v", err)

			after, err := s.Get(ctx, created.ID).Await(ctx)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}
