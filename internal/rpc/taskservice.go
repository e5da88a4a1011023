package rpc

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const TaskServiceName = "taskmarket.v1.TaskService"

const (
	TaskServiceCreateTaskProcedure   = "/taskmarket.v1.TaskService/CreateTask"
	TaskServiceGetTaskProcedure      = "/taskmarket.v1.TaskService/GetTask"
	TaskServiceListTasksProcedure    = "/taskmarket.v1.TaskService/ListTasks"
	TaskServiceUpdateTaskProcedure   = "/taskmarket.v1.TaskService/UpdateTask"
	TaskServiceDeleteTaskProcedure   = "/taskmarket.v1.TaskService/DeleteTask"
	TaskServiceAssignTaskProcedure   = "/taskmarket.v1.TaskService/AssignTask"
	TaskServiceCompleteTaskProcedure = "/taskmarket.v1.TaskService/CompleteTask"
	TaskServiceCancelTaskProcedure   = "/taskmarket.v1.TaskService/CancelTask"
)

type TaskServiceHandler interface {
	CreateTask(context.Context, *connect.Request[CreateTaskRequest]) (*connect.Response[CreateTaskResponse], error)
	GetTask(context.Context, *connect.Request[GetTaskRequest]) (*connect.Response[GetTaskResponse], error)
	ListTasks(context.Context, *connect.Request[ListTasksRequest]) (*connect.Response[ListTasksResponse], error)
	UpdateTask(context.Context, *connect.Request[UpdateTaskRequest]) (*connect.Response[UpdateTaskResponse], error)
	DeleteTask(context.Context, *connect.Request[DeleteTaskRequest]) (*connect.Response[DeleteTaskResponse], error)
	AssignTask(context.Context, *connect.Request[AssignTaskRequest]) (*connect.Response[AssignTaskResponse], error)
	CompleteTask(context.Context, *connect.Request[CompleteTaskRequest]) (*connect.Response[CompleteTaskResponse], error)
	CancelTask(context.Context, *connect.Request[CancelTaskRequest]) (*connect.Response[CancelTaskResponse], error)
}

// NewTaskServiceHandler builds an HTTP handler for every TaskService
// procedure and returns the path to mount it on.
func NewTaskServiceHandler(svc TaskServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	mux := http.NewServeMux()
	mux.Handle(TaskServiceCreateTaskProcedure, connect.NewUnaryHandler(TaskServiceCreateTaskProcedure, svc.CreateTask, opts...))
	mux.Handle(TaskServiceGetTaskProcedure, connect.NewUnaryHandler(TaskServiceGetTaskProcedure, svc.GetTask, opts...))
	mux.Handle(TaskServiceListTasksProcedure, connect.NewUnaryHandler(TaskServiceListTasksProcedure, svc.ListTasks, opts...))
	mux.Handle(TaskServiceUpdateTaskProcedure, connect.NewUnaryHandler(TaskServiceUpdateTaskProcedure, svc.UpdateTask, opts...))
	mux.Handle(TaskServiceDeleteTaskProcedure, connect.NewUnaryHandler(TaskServiceDeleteTaskProcedure, svc.DeleteTask, opts...))
	mux.Handle(TaskServiceAssignTaskProcedure, connect.NewUnaryHandler(TaskServiceAssignTaskProcedure, svc.AssignTask, opts...))
	mux.Handle(TaskServiceCompleteTaskProcedure, connect.NewUnaryHandler(TaskServiceCompleteTaskProcedure, svc.CompleteTask, opts...))
	mux.Handle(TaskServiceCancelTaskProcedure, connect.NewUnaryHandler(TaskServiceCancelTaskProcedure, svc.CancelTask, opts...))
	return "/" + TaskServiceName + "/", mux
}

type TaskServiceClient interface {
	CreateTask(context.Context, *connect.Request[CreateTaskRequest]) (*connect.Response[CreateTaskResponse], error)
	GetTask(context.Context, *connect.Request[GetTaskRequest]) (*connect.Response[GetTaskResponse], error)
	ListTasks(context.Context, *connect.Request[ListTasksRequest]) (*connect.Response[ListTasksResponse], error)
	UpdateTask(context.Context, *connect.Request[UpdateTaskRequest]) (*connect.Response[UpdateTaskResponse], error)
	DeleteTask(context.Context, *connect.Request[DeleteTaskRequest]) (*connect.Response[DeleteTaskResponse], error)
	AssignTask(context.Context, *connect.Request[AssignTaskRequest]) (*connect.Response[AssignTaskResponse], error)
	CompleteTask(context.Context, *connect.Request[CompleteTaskRequest]) (*connect.Response[CompleteTaskResponse], error)
	CancelTask(context.Context, *connect.Request[CancelTaskRequest]) (*connect.Response[CancelTaskResponse], error)
}

type taskServiceClient struct {
	createTask   *connect.Client[CreateTaskRequest, CreateTaskResponse]
	getTask      *connect.Client[GetTaskRequest, GetTaskResponse]
	listTasks    *connect.Client[ListTasksRequest, ListTasksResponse]
	updateTask   *connect.Client[UpdateTaskRequest, UpdateTaskResponse]
	deleteTask   *connect.Client[DeleteTaskRequest, DeleteTaskResponse]
	assignTask   *connect.Client[AssignTaskRequest, AssignTaskResponse]
	completeTask *connect.Client[CompleteTaskRequest, CompleteTaskResponse]
	cancelTask   *connect.Client[CancelTaskRequest, CancelTaskResponse]
}

func NewTaskServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TaskServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &taskServiceClient{
		createTask:   connect.NewClient[CreateTaskRequest, CreateTaskResponse](httpClient, baseURL+TaskServiceCreateTaskProcedure, opts...),
		getTask:      connect.NewClient[GetTaskRequest, GetTaskResponse](httpClient, baseURL+TaskServiceGetTaskProcedure, opts...),
		listTasks:    connect.NewClient[ListTasksRequest, ListTasksResponse](httpClient, baseURL+TaskServiceListTasksProcedure, opts...),
		updateTask:   connect.NewClient[UpdateTaskRequest, UpdateTaskResponse](httpClient, baseURL+TaskServiceUpdateTaskProcedure, opts...),
		deleteTask:   connect.NewClient[DeleteTaskRequest, DeleteTaskResponse](httpClient, baseURL+TaskServiceDeleteTaskProcedure, opts...),
		assignTask:   connect.NewClient[AssignTaskRequest, AssignTaskResponse](httpClient, baseURL+TaskServiceAssignTaskProcedure, opts...),
		completeTask: connect.NewClient[CompleteTaskRequest, CompleteTaskResponse](httpClient, baseURL+TaskServiceCompleteTaskProcedure, opts...),
		cancelTask:   connect.NewClient[CancelTaskRequest, CancelTaskResponse](httpClient, baseURL+TaskServiceCancelTaskProcedure, opts...),
	}
}

func (c *taskServiceClient) CreateTask(ctx context.Context, req *connect.Request[CreateTaskRequest]) (*connect.Response[CreateTaskResponse], error) {
	return c.createTask.CallUnary(ctx, req)
}

func (c *taskServiceClient) GetTask(ctx context.Context, req *connect.Request[GetTaskRequest]) (*connect.Response[GetTaskResponse], error) {
	return c.getTask.CallUnary(ctx, req)
}

func (c *taskServiceClient) ListTasks(ctx context.Context, req *connect.Request[ListTasksRequest]) (*connect.Response[ListTasksResponse], error) {
	return c.listTasks.CallUnary(ctx, req)
}

func (c *taskServiceClient) UpdateTask(ctx context.Context, req *connect.Request[UpdateTaskRequest]) (*connect.Response[UpdateTaskResponse], error) {
	return c.updateTask.CallUnary(ctx, req)
}

func (c *taskServiceClient) DeleteTask(ctx context.Context, req *connect.Request[DeleteTaskRequest]) (*connect.Response[DeleteTaskResponse], error) {
	return c.deleteTask.CallUnary(ctx, req)
}

func (c *taskServiceClient) AssignTask(ctx context.Context, req *connect.Request[AssignTaskRequest]) (*connect.Response[AssignTaskResponse], error) {
	return c.assignTask.CallUnary(ctx, req)
}

func (c *taskServiceClient) CompleteTask(ctx context.Context, req *connect.Request[CompleteTaskRequest]) (*connect.Response[CompleteTaskResponse], error) {
	return c.completeTask.CallUnary(ctx, req)
}

func (c *taskServiceClient) CancelTask(ctx context.Context, req *connect.Request[CancelTaskRequest]) (*connect.Response[CancelTaskResponse], error) {
	return c.cancelTask.CallUnary(ctx, req)
}
