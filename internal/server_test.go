package internal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/taskmarket/internal/client"
	"github.com/kazz187/taskmarket/internal/config"
	"github.com/kazz187/taskmarket/internal/rpc"
	"github.com/kazz187/taskmarket/internal/session"
	"github.com/kazz187/taskmarket/internal/task"
	taskrepo "github.com/kazz187/taskmarket/internal/task/repositoryimpl"
	"github.com/kazz187/taskmarket/internal/user"
	userrepo "github.com/kazz187/taskmarket/internal/user/repositoryimpl"
)

type testEnv struct {
	url  string
	http *http.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	users := userrepo.NewMemoryRepository()
	for _, u := range []*user.User{
		{ID: "user-1", Name: "Emma Wilson", Email: "emma.wilson@example.com", Rating: 4.8, ReviewCount: 12, TasksPosted: 7},
		{ID: "user-4", Name: "David Miller", Email: "david.miller@example.com", Rating: 4.7, ReviewCount: 11, TasksCompleted: 24},
	} {
		require.NoError(t, users.Create(ctx, u))
	}

	store := task.NewStore(taskrepo.NewMemoryRepository())
	t.Cleanup(store.Close)
	sessions := session.NewManager("test-secret", time.Hour)

	srv := NewServer(
		&config.Env{},
		task.NewServer(store, task.NewLifecycle(store), users),
		task.NewBrowseHandler(store),
		session.NewServer(sessions, users, "password"),
		sessions,
		users,
	)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &testEnv{url: ts.URL, http: ts.Client()}
}

func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	_, token, err := client.NewUserClient(e.http, e.url, "").Login(context.Background(), email, "password")
	require.NoError(t, err)
	return token
}

func (e *testEnv) tasks(token string) *client.TaskClient {
	return client.NewTaskClient(e.http, e.url, token)
}

func (e *testEnv) users(token string) *client.UserClient {
	return client.NewUserClient(e.http, e.url, token)
}

func requireCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, connect.CodeOf(err), "got %v", err)
}

func TestServer_TaskLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	emmaToken := env.login(t, "emma.wilson@example.com")
	davidToken := env.login(t, "david.miller@example.com")
	emma := env.tasks(emmaToken)
	david := env.tasks(davidToken)

	_, err := env.tasks("").CreateTask(ctx, &rpc.CreateTaskRequest{Title: "anonymous", Category: "Other"})
	requireCode(t, err, connect.CodeUnauthenticated)

	_, err = emma.CreateTask(ctx, &rpc.CreateTaskRequest{Title: "", Category: "Gardening", Payment: decimal.NewFromInt(-1)})
	requireCode(t, err, connect.CodeInvalidArgument)

	created, err := emma.CreateTask(ctx, &rpc.CreateTaskRequest{
		Title:    "Help moving furniture",
		Category: "Moving",
		Payment:  decimal.NewFromInt(120),
		Location: "Brooklyn, NY",
		Tags:     []string{"heavy lifting"},
	})
	require.NoError(t, err)
	assert.Equal(t, "open", created.Status)
	assert.Equal(t, "user-1", created.PostedBy.ID)

	me, err := env.users(emmaToken).CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, me.TasksPosted)

	got, err := env.tasks("").GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)

	_, err = david.AssignTask(ctx, created.ID, "user-4")
	requireCode(t, err, connect.CodePermissionDenied)

	_, err = emma.AssignTask(ctx, created.ID, "user-1")
	requireCode(t, err, connect.CodeInvalidArgument)

	_, err = emma.CompleteTask(ctx, created.ID)
	requireCode(t, err, connect.CodeFailedPrecondition)

	assigned, err := emma.AssignTask(ctx, created.ID, "user-4")
	require.NoError(t, err)
	assert.Equal(t, "assigned", assigned.Status)
	require.NotNil(t, assigned.AssignedTo)
	assert.Equal(t, "David Miller", assigned.AssignedTo.Name)

	completed, err := emma.CompleteTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", completed.Status)

	helper, err := env.users("").GetUser(ctx, "user-4")
	require.NoError(t, err)
	assert.Equal(t, 25, helper.TasksCompleted)

	open := "open"
	_, err = emma.UpdateTask(ctx, &rpc.UpdateTaskRequest{ID: created.ID, Status: &open})
	requireCode(t, err, connect.CodeFailedPrecondition)

	_, err = david.DeleteTask(ctx, created.ID)
	requireCode(t, err, connect.CodePermissionDenied)

	deleted, err := emma.DeleteTask(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = emma.DeleteTask(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = env.tasks("").GetTask(ctx, created.ID)
	requireCode(t, err, connect.CodeNotFound)
}

func TestServer_ListTasks(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	emma := env.tasks(env.login(t, "emma.wilson@example.com"))

	for _, in := range []*rpc.CreateTaskRequest{
		{Title: "move couch", Category: "Moving", Payment: decimal.NewFromInt(120)},
		{Title: "deep clean", Category: "Cleaning", Payment: decimal.NewFromInt(80)},
		{Title: "groceries", Category: "Delivery", Payment: decimal.NewFromInt(25)},
	} {
		_, err := emma.CreateTask(ctx, in)
		require.NoError(t, err)
	}

	titles := func(tasks []*rpc.Task) []string {
		out := make([]string, len(tasks))
		for i, t := range tasks {
			out[i] = t.Title
		}
		return out
	}

	list, err := emma.ListTasks(ctx, &rpc.ListTasksRequest{SortBy: "price_low"})
	require.NoError(t, err)
	assert.Equal(t, []string{"groceries", "deep clean", "move couch"}, titles(list))

	list, err = emma.ListTasks(ctx, &rpc.ListTasksRequest{Category: "Moving"})
	require.NoError(t, err)
	assert.Equal(t, []string{"move couch"}, titles(list))

	list, err = emma.ListTasks(ctx, &rpc.ListTasksRequest{
		PriceRange: &rpc.PriceRange{Min: decimal.NewFromInt(500), Max: decimal.NewFromInt(100)},
	})
	require.NoError(t, err)
	assert.Empty(t, list)

	david := env.tasks(env.login(t, "david.miller@example.com"))
	_, err = david.CreateTask(ctx, &rpc.CreateTaskRequest{Title: "fix shelf", Category: "Handyman", Payment: decimal.NewFromInt(60)})
	require.NoError(t, err)

	list, err = emma.ListTasks(ctx, &rpc.ListTasksRequest{PostedBy: "user-4"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fix shelf"}, titles(list))

	list, err = david.ListTasks(ctx, &rpc.ListTasksRequest{PostedBy: "user-1", SortBy: "price_high"})
	require.NoError(t, err)
	assert.Equal(t, []string{"move couch", "deep clean", "groceries"}, titles(list))
}

func TestServer_Sessions(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	anon := env.users("")

	_, _, err := anon.Login(ctx, "emma.wilson@example.com", "wrong")
	requireCode(t, err, connect.CodeUnauthenticated)

	_, _, err = anon.Login(ctx, "nobody@example.com", "password")
	requireCode(t, err, connect.CodeUnauthenticated)

	_, _, err = anon.Signup(ctx, &rpc.SignupRequest{Name: "Emma Again", Email: "Emma.Wilson@example.com"})
	requireCode(t, err, connect.CodeAlreadyExists)

	_, _, err = anon.Signup(ctx, &rpc.SignupRequest{Name: "No Mail", Email: "not-an-email"})
	requireCode(t, err, connect.CodeInvalidArgument)

	u, token, err := anon.Signup(ctx, &rpc.SignupRequest{Name: "Sarah Johnson", Email: "sarah.johnson@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 0, u.TasksPosted)

	sarah := env.users(token)
	me, err := sarah.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, u.ID, me.ID)

	_, _, err = anon.Login(ctx, "sarah.johnson@example.com", "password")
	require.NoError(t, err)

	_, err = anon.CurrentUser(ctx)
	requireCode(t, err, connect.CodeUnauthenticated)

	require.NoError(t, sarah.Logout(ctx))
	_, err = sarah.CurrentUser(ctx)
	requireCode(t, err, connect.CodeUnauthenticated)

	_, err = env.users("garbage").GetUser(ctx, "user-1")
	requireCode(t, err, connect.CodeUnauthenticated)
}

func TestServer_SignupWithPassword(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	anon := env.users("")

	_, _, err := anon.Signup(ctx, &rpc.SignupRequest{Name: "Mike Chen", Email: "mike.chen@example.com", Password: "short"})
	requireCode(t, err, connect.CodeInvalidArgument)

	_, _, err = anon.Signup(ctx, &rpc.SignupRequest{Name: "Mike Chen", Email: "mike.chen@example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, _, err = anon.Login(ctx, "mike.chen@example.com", "password")
	requireCode(t, err, connect.CodeUnauthenticated)

	u, _, err := anon.Login(ctx, "mike.chen@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "Mike Chen", u.Name)
}

func TestServer_RejectsImmutableFields(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "emma.wilson@example.com")

	body := `{"id":"task-1","createdAt":"2020-01-01T00:00:00Z"}`
	req, err := http.NewRequest(http.MethodPost, env.url+rpc.TaskServiceUpdateTaskProcedure, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := env.http.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var connectErr struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&connectErr))
	assert.Equal(t, "invalid_argument", connectErr.Code)
}

func TestServer_Browse(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	emma := env.tasks(env.login(t, "emma.wilson@example.com"))
	moving, err := emma.CreateTask(ctx, &rpc.CreateTaskRequest{Title: "move couch", Category: "Moving", Payment: decimal.NewFromInt(120)})
	require.NoError(t, err)
	_, err = emma.CreateTask(ctx, &rpc.CreateTaskRequest{Title: "mansion clean", Category: "Cleaning", Payment: decimal.NewFromInt(5000)})
	require.NoError(t, err)

	get := func(t *testing.T, path string, v any) int {
		t.Helper()
		resp, err := env.http.Get(env.url + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
		return resp.StatusCode
	}

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantTitles []string
		wantCode   string
	}{
		{name: "defaults cap the price at 1000", path: "/api/tasks", wantStatus: http.StatusOK, wantTitles: []string{"move couch"}},
		{name: "raised max", path: "/api/tasks?max=10000&sort=price_high", wantStatus: http.StatusOK, wantTitles: []string{"mansion clean", "move couch"}},
		{name: "category", path: "/api/tasks?category=Cleaning&max=10000", wantStatus: http.StatusOK, wantTitles: []string{"mansion clean"}},
		{name: "posted by", path: "/api/tasks?posted_by=user-1&max=10000&sort=price_low", wantStatus: http.StatusOK, wantTitles: []string{"move couch", "mansion clean"}},
		{name: "posted by someone else", path: "/api/tasks?posted_by=user-4", wantStatus: http.StatusOK, wantTitles: []string{}},
		{name: "bad bound", path: "/api/tasks?min=cheap", wantStatus: http.StatusBadRequest, wantCode: "InvalidArgument"},
		{name: "unknown task", path: "/api/tasks/missing", wantStatus: http.StatusNotFound, wantCode: "NotFound"},
		{name: "unknown route", path: "/api/nothing", wantStatus: http.StatusNotFound, wantCode: "NotFound"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				Tasks []*rpc.Task `json:"tasks"`
				Code  string      `json:"code"`
			}
			status := get(t, tt.path, &body)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body.Code)
			if tt.wantTitles != nil {
				titles := make([]string, len(body.Tasks))
				for i, task := range body.Tasks {
					titles[i] = task.Title
				}
				assert.Equal(t, tt.wantTitles, titles)
			}
		})
	}

	var one struct {
		Task *rpc.Task `json:"task"`
	}
	assert.Equal(t, http.StatusOK, get(t, "/api/tasks/"+moving.ID, &one))
	require.NotNil(t, one.Task)
	assert.Equal(t, "move couch", one.Task.Title)
}

func TestServer_Health(t *testing.T) {
	env := newTestEnv(t)
	resp, err := env.http.Get(env.url + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
