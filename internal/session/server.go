package session

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/oklog/ulid/v2"

	"github.com/kazz187/taskmarket/internal/rpc"
	"github.com/kazz187/taskmarket/internal/user"
	"github.com/kazz187/taskmarket/pkg/cerr"
)

var _ rpc.UserServiceHandler = (*Server)(nil)

// Server implements the user service: the demo sign-in flow and the user
// directory lookups.
type Server struct {
	manager      *Manager
	users        user.Repository
	demoPassword string
	now          func() time.Time
}

func NewServer(manager *Manager, users user.Repository, demoPassword string) *Server {
	return &Server{
		manager:      manager,
		users:        users,
		demoPassword: demoPassword,
		now:          time.Now,
	}
}

func (s *Server) Signup(ctx context.Context, req *connect.Request[rpc.SignupRequest]) (*connect.Response[rpc.SignupResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	email := strings.TrimSpace(req.Msg.Email)
	if name == "" {
		return nil, cerr.NewError(cerr.InvalidArgument, "name is required", nil).
			WithViolation("name.required", "name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, cerr.NewError(cerr.InvalidArgument, "invalid email address", err).
			WithViolation("email.format", "invalid email address")
	}

	u := &user.User{
		ID:         ulid.Make().String(),
		Name:       name,
		Email:      email,
		Phone:      req.Msg.Phone,
		Bio:        req.Msg.Bio,
		Location:   req.Msg.Location,
		JoinedDate: s.now(),
	}
	if req.Msg.Password != "" {
		hash, err := hashPassword(req.Msg.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	token, err := s.manager.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "user signed up", "user_id", u.ID)

	return connect.NewResponse(&rpc.SignupResponse{
		User:  UserToRPC(u),
		Token: token,
	}), nil
}

func (s *Server) Login(ctx context.Context, req *connect.Request[rpc.LoginRequest]) (*connect.Response[rpc.LoginResponse], error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(req.Msg.Email))
	if err != nil {
		if cerr.IsCode(err, cerr.NotFound) {
			return nil, errBadCredentials()
		}
		return nil, err
	}
	if err := s.checkPassword(u, req.Msg.Password); err != nil {
		return nil, err
	}
	token, err := s.manager.Issue(u.ID)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&rpc.LoginResponse{
		User:  UserToRPC(u),
		Token: token,
	}), nil
}

func (s *Server) Logout(ctx context.Context, _ *connect.Request[rpc.LogoutRequest]) (*connect.Response[rpc.LogoutResponse], error) {
	sess, ok := FromContext(ctx)
	if !ok {
		return nil, cerr.NewError(cerr.Unauthenticated, "sign in required", nil)
	}
	s.manager.Revoke(sess.Claims)
	return connect.NewResponse(&rpc.LogoutResponse{}), nil
}

func (s *Server) GetCurrentUser(ctx context.Context, _ *connect.Request[rpc.GetCurrentUserRequest]) (*connect.Response[rpc.GetCurrentUserResponse], error) {
	u, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&rpc.GetCurrentUserResponse{
		User: UserToRPC(u),
	}), nil
}

func (s *Server) GetUser(ctx context.Context, req *connect.Request[rpc.GetUserRequest]) (*connect.Response[rpc.GetUserResponse], error) {
	u, err := s.users.Get(ctx, req.Msg.ID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&rpc.GetUserResponse{
		User: UserToRPC(u),
	}), nil
}

func UserToRPC(u *user.User) *rpc.User {
	return &rpc.User{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		Bio:            u.Bio,
		Avatar:         u.Avatar,
		Rating:         u.Rating,
		ReviewCount:    u.ReviewCount,
		Location:       u.Location,
		JoinedDate:     u.JoinedDate,
		TasksCompleted: u.TasksCompleted,
		TasksPosted:    u.TasksPosted,
	}
}
