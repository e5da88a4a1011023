package client

import (
	"context"
	"fmt"

	"connectrpc.com/connect"

	"github.com/kazz187/taskmarket/internal/rpc"
)

// TaskClient provides client operations for tasks
type TaskClient struct {
	client rpc.TaskServiceClient
}

// NewTaskClient creates a new task client. token may be empty for the
// operations that do not need a signed-in user.
func NewTaskClient(httpClient connect.HTTPClient, baseURL, token string) *TaskClient {
	return &TaskClient{
		client: rpc.NewTaskServiceClient(httpClient, baseURL, options(token)...),
	}
}

func (c *TaskClient) CreateTask(ctx context.Context, in *rpc.CreateTaskRequest) (*rpc.Task, error) {
	resp, err := c.client.CreateTask(ctx, connect.NewRequest(in))
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return resp.Msg.Task, nil
}

func (c *TaskClient) ListTasks(ctx context.Context, in *rpc.ListTasksRequest) ([]*rpc.Task, error) {
	resp, err := c.client.ListTasks(ctx, connect.NewRequest(in))
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return resp.Msg.Tasks, nil
}

func (c *TaskClient) GetTask(ctx context.Context, taskID string) (*rpc.Task, error) {
	resp, err := c.client.GetTask(ctx, connect.NewRequest(&rpc.GetTaskRequest{ID: taskID}))
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return resp.Msg.Task, nil
}

func (c *TaskClient) UpdateTask(ctx context.Context, in *rpc.UpdateTaskRequest) (*rpc.Task, error) {
	resp, err := c.client.UpdateTask(ctx, connect.NewRequest(in))
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return resp.Msg.Task, nil
}

func (c *TaskClient) DeleteTask(ctx context.Context, taskID string) (bool, error) {
	resp, err := c.client.DeleteTask(ctx, connect.NewRequest(&rpc.DeleteTaskRequest{ID: taskID}))
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	return resp.Msg.Deleted, nil
}

func (c *TaskClient) AssignTask(ctx context.Context, taskID, helperID string) (*rpc.Task, error) {
	resp, err := c.client.AssignTask(ctx, connect.NewRequest(&rpc.AssignTaskRequest{
		ID:       taskID,
		HelperID: helperID,
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}
	return resp.Msg.Task, nil
}

func (c *TaskClient) CompleteTask(ctx context.Context, taskID string) (*rpc.Task, error) {
	resp, err := c.client.CompleteTask(ctx, connect.NewRequest(&rpc.CompleteTaskRequest{ID: taskID}))
	if err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}
	return resp.Msg.Task, nil
}

func (c *TaskClient) CancelTask(ctx context.Context, taskID string) (*rpc.Task, error) {
	resp, err := c.client.CancelTask(ctx, connect.NewRequest(&rpc.CancelTaskRequest{ID: taskID}))
	if err != nil {
		return nil, fmt.Errorf("failed to cancel task: %w", err)
	}
	return resp.Msg.Task, nil
}
