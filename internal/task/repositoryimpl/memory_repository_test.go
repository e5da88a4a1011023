package repositoryimpl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/taskmarket/internal/task"
	"github.com/kazz187/taskmarket/pkg/cerr"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	for _, id := range []string{"task-1", "task-2", "task-3"} {
		require.NoError(t, repo.Create(ctx, &task.Task{ID: id, Title: id, Status: task.StatusOpen, Tags: []string{"a"}}))
	}

	err := repo.Create(ctx, &task.Task{ID: "task-2"})
	assert.True(t, cerr.IsCode(err, cerr.AlreadyExists))

	got, err := repo.Get(ctx, "task-2")
	require.NoError(t, err)
	assert.Equal(t, "task-2", got.Title)

	// Mutating a returned task does not touch the stored one.
	got.Tags[0] = "mutated"
	again, err := repo.Get(ctx, "task-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, again.Tags)

	again.Title = "renamed"
	require.NoError(t, repo.Update(ctx, again))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "task-1", list[0].ID)
	assert.Equal(t, "renamed", list[1].Title, "update keeps the position")
	assert.Equal(t, "task-3", list[2].ID)

	err = repo.Update(ctx, &task.Task{ID: "missing"})
	assert.True(t, cerr.IsCode(err, cerr.NotFound))

	require.NoError(t, repo.Delete(ctx, "task-1"))
	require.NoError(t, repo.Delete(ctx, "task-1"))
	_, err = repo.Get(ctx, "task-1")
	assert.True(t, cerr.IsCode(err, cerr.NotFound))

	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
