package task

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/kazz187/taskmarket/internal/rpc"
	"github.com/kazz187/taskmarket/internal/session"
	"github.com/kazz187/taskmarket/internal/user"
	"github.com/kazz187/taskmarket/pkg/cerr"
	"github.com/kazz187/taskmarket/pkg/clog"
)

var _ rpc.TaskServiceHandler = (*Server)(nil)

type Server struct {
	store     *Store
	lifecycle *Lifecycle
	users     user.Repository
	now       func() time.Time
}

func NewServer(store *Store, lifecycle *Lifecycle, users user.Repository) *Server {
	return &Server{
		store:     store,
		lifecycle: lifecycle,
		users:     users,
		now:       time.Now,
	}
}

func (s *Server) CreateTask(ctx context.Context, req *connect.Request[rpc.CreateTaskRequest]) (*connect.Response[rpc.CreateTaskResponse], error) {
	poster, err := session.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	nt := NewTask{
		Title:       req.Msg.Title,
		Description: req.Msg.Description,
		Category:    Category(req.Msg.Category),
		Payment:     req.Msg.Payment,
		Location:    req.Msg.Location,
		Coordinates: coordinatesFromRPC(req.Msg.Coordinates),
		DueDate:     req.Msg.DueDate,
		PostedBy:    poster.Ref(),
		Tags:        req.Msg.Tags,
		Attachments: req.Msg.Attachments,
	}
	if err := nt.Validate(s.now()); err != nil {
		return nil, err
	}
	t, err := s.store.Create(ctx, nt).Await(ctx)
	if err != nil {
		return nil, err
	}
	clog.SetTask(ctx, t.ID)

	s.bumpCounter(ctx, poster.ID, func(u *user.User) { u.TasksPosted++ })

	return connect.NewResponse(&rpc.CreateTaskResponse{
		Task: toRPC(t),
	}), nil
}

func (s *Server) GetTask(ctx context.Context, req *connect.Request[rpc.GetTaskRequest]) (*connect.Response[rpc.GetTaskResponse], error) {
	clog.SetTask(ctx, req.Msg.ID)
	t, err := s.store.Get(ctx, req.Msg.ID).Await(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&rpc.GetTaskResponse{
		Task: toRPC(t),
	}), nil
}

func (s *Server) ListTasks(ctx context.Context, req *connect.Request[rpc.ListTasksRequest]) (*connect.Response[rpc.ListTasksResponse], error) {
	f := Filter{
		Category: req.Msg.Category,
		PostedBy: req.Msg.PostedBy,
		Distance: req.Msg.Distance,
		SortBy:   SortBy(req.Msg.SortBy),
	}
	if r := req.Msg.PriceRange; r != nil {
		f.PriceRange = &PriceRange{Min: r.Min, Max: r.Max}
	}
	tasks, err := s.store.Query(ctx, f).Await(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*rpc.Task, len(tasks))
	for i, t := range tasks {
		out[i] = toRPC(t)
	}
	return connect.NewResponse(&rpc.ListTasksResponse{
		Tasks: out,
	}), nil
}

func (s *Server) UpdateTask(ctx context.Context, req *connect.Request[rpc.UpdateTaskRequest]) (*connect.Response[rpc.UpdateTaskResponse], error) {
	actor, err := session.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	p := Patch{
		Title:       req.Msg.Title,
		Description: req.Msg.Description,
		Location:    req.Msg.Location,
		Coordinates: coordinatesFromRPC(req.Msg.Coordinates),
		Payment:     req.Msg.Payment,
		DueDate:     req.Msg.DueDate,
		Tags:        req.Msg.Tags,
		Attachments: req.Msg.Attachments,
	}
	if req.Msg.Category != nil {
		c := Category(*req.Msg.Category)
		p.Category = &c
	}
	if req.Msg.Status != nil {
		st := Status(*req.Msg.Status)
		p.Status = &st
	}
	if req.Msg.AssignedToID != nil {
		helper, err := s.lookupRef(ctx, *req.Msg.AssignedToID)
		if err != nil {
			return nil, err
		}
		p.AssignedTo = &helper
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var prev Status
	guard := func(t *Task) error {
		if err := posterOnly(actor.Ref(), "update")(t); err != nil {
			return err
		}
		prev = t.Status
		return nil
	}
	clog.SetTask(ctx, req.Msg.ID)
	t, err := s.store.update(ctx, req.Msg.ID, guard, p).Await(ctx)
	if err != nil {
		return nil, err
	}
	if prev != StatusCompleted && t.Status == StatusCompleted {
		s.bumpCompleted(ctx, t)
	}

	return connect.NewResponse(&rpc.UpdateTaskResponse{
		Task: toRPC(t),
	}), nil
}

func (s *Server) DeleteTask(ctx context.Context, req *connect.Request[rpc.DeleteTaskRequest]) (*connect.Response[rpc.DeleteTaskResponse], error) {
	actor, err := session.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	clog.SetTask(ctx, req.Msg.ID)
	deleted, err := s.store.delete(ctx, req.Msg.ID, posterOnly(actor.Ref(), "delete")).Await(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&rpc.DeleteTaskResponse{
		Deleted: deleted,
	}), nil
}

func (s *Server) AssignTask(ctx context.Context, req *connect.Request[rpc.AssignTaskRequest]) (*connect.Response[rpc.AssignTaskResponse], error) {
	actor, err := session.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.HelperID == actor.ID {
		return nil, cerr.NewError(cerr.InvalidArgument, "a task cannot be assigned to its poster", nil).
			WithViolation("helper_id.not_poster", "a task cannot be assigned to its poster")
	}
	helper, err := s.lookupRef(ctx, req.Msg.HelperID)
	if err != nil {
		return nil, err
	}
	clog.SetTask(ctx, req.Msg.ID)
	t, err := s.lifecycle.Assign(ctx, req.Msg.ID, actor.Ref(), helper).Await(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&rpc.AssignTaskResponse{
		Task: toRPC(t),
	}), nil
}

func (s *Server) CompleteTask(ctx context.Context, req *connect.Request[rpc.CompleteTaskRequest]) (*connect.Response[rpc.CompleteTaskResponse], error) {
	actor, err := session.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	clog.SetTask(ctx, req.Msg.ID)
	t, err := s.lifecycle.Complete(ctx, req.Msg.ID, actor.Ref()).Await(ctx)
	if err != nil {
		return nil, err
	}
	s.bumpCompleted(ctx, t)
	return connect.NewResponse(&rpc.CompleteTaskResponse{
		Task: toRPC(t),
	}), nil
}

func (s *Server) CancelTask(ctx context.Context, req *connect.Request[rpc.CancelTaskRequest]) (*connect.Response[rpc.CancelTaskResponse], error) {
	actor, err := session.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	clog.SetTask(ctx, req.Msg.ID)
	t, err := s.lifecycle.Cancel(ctx, req.Msg.ID, actor.Ref()).Await(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&rpc.CancelTaskResponse{
		Task: toRPC(t),
	}), nil
}

func (s *Server) lookupRef(ctx context.Context, userID string) (user.Ref, error) {
	if userID == "" {
		return user.Ref{}, cerr.NewError(cerr.InvalidArgument, "helper is required", nil).
			WithViolation("helper_id.required", "helper is required")
	}
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return user.Ref{}, err
	}
	return u.Ref(), nil
}

func (s *Server) bumpCompleted(ctx context.Context, t *Task) {
	if t.AssignedTo == nil {
		return
	}
	s.bumpCounter(ctx, t.AssignedTo.ID, func(u *user.User) { u.TasksCompleted++ })
}

// bumpCounter updates a user's task counters. Failures are logged and do not
// fail the request that triggered them.
func (s *Server) bumpCounter(ctx context.Context, userID string, fn func(u *user.User)) {
	_, err := s.users.Update(ctx, userID, func(u *user.User) error {
		fn(u)
		return nil
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to update user counters", "user_id", userID, "error", err)
	}
}

func toRPC(t *Task) *rpc.Task {
	out := &rpc.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    string(t.Category),
		Payment:     t.Payment,
		Location:    t.Location,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		DueDate:     t.DueDate,
		PostedBy:    refToRPC(t.PostedBy),
		Tags:        t.Tags,
		Attachments: t.Attachments,
	}
	if t.Coordinates != nil {
		out.Coordinates = &rpc.Coordinates{Lat: t.Coordinates.Lat, Lng: t.Coordinates.Lng}
	}
	if t.AssignedTo != nil {
		ref := refToRPC(*t.AssignedTo)
		out.AssignedTo = &ref
	}
	return out
}

func refToRPC(r user.Ref) rpc.UserRef {
	return rpc.UserRef{
		ID:          r.ID,
		Name:        r.Name,
		Rating:      r.Rating,
		ReviewCount: r.ReviewCount,
	}
}

func coordinatesFromRPC(c *rpc.Coordinates) *Coordinates {
	if c == nil {
		return nil
	}
	return &Coordinates{Lat: c.Lat, Lng: c.Lng}
}
