package rpc

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const UserServiceName = "taskmarket.v1.UserService"

const (
	UserServiceSignupProcedure         = "/taskmarket.v1.UserService/Signup"
	UserServiceLoginProcedure          = "/taskmarket.v1.UserService/Login"
	UserServiceLogoutProcedure         = "/taskmarket.v1.UserService/Logout"
	UserServiceGetCurrentUserProcedure = "/taskmarket.v1.UserService/GetCurrentUser"
	UserServiceGetUserProcedure        = "/taskmarket.v1.UserService/GetUser"
)

type UserServiceHandler interface {
	Signup(context.Context, *connect.Request[SignupRequest]) (*connect.Response[SignupResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	Logout(context.Context, *connect.Request[LogoutRequest]) (*connect.Response[LogoutResponse], error)
	GetCurrentUser(context.Context, *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error)
	GetUser(context.Context, *connect.Request[GetUserRequest]) (*connect.Response[GetUserResponse], error)
}

func NewUserServiceHandler(svc UserServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	mux := http.NewServeMux()
	mux.Handle(UserServiceSignupProcedure, connect.NewUnaryHandler(UserServiceSignupProcedure, svc.Signup, opts...))
	mux.Handle(UserServiceLoginProcedure, connect.NewUnaryHandler(UserServiceLoginProcedure, svc.Login, opts...))
	mux.Handle(UserServiceLogoutProcedure, connect.NewUnaryHandler(UserServiceLogoutProcedure, svc.Logout, opts...))
	mux.Handle(UserServiceGetCurrentUserProcedure, connect.NewUnaryHandler(UserServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...))
	mux.Handle(UserServiceGetUserProcedure, connect.NewUnaryHandler(UserServiceGetUserProcedure, svc.GetUser, opts...))
	return "/" + UserServiceName + "/", mux
}

type UserServiceClient interface {
	Signup(context.Context, *connect.Request[SignupRequest]) (*connect.Response[SignupResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	Logout(context.Context, *connect.Request[LogoutRequest]) (*connect.Response[LogoutResponse], error)
	GetCurrentUser(context.Context, *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error)
	GetUser(context.Context, *connect.Request[GetUserRequest]) (*connect.Response[GetUserResponse], error)
}

type userServiceClient struct {
	signup         *connect.Client[SignupRequest, SignupResponse]
	login          *connect.Client[LoginRequest, LoginResponse]
	logout         *connect.Client[LogoutRequest, LogoutResponse]
	getCurrentUser *connect.Client[GetCurrentUserRequest, GetCurrentUserResponse]
	getUser        *connect.Client[GetUserRequest, GetUserResponse]
}

func NewUserServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) UserServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &userServiceClient{
		signup:         connect.NewClient[SignupRequest, SignupResponse](httpClient, baseURL+UserServiceSignupProcedure, opts...),
		login:          connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+UserServiceLoginProcedure, opts...),
		logout:         connect.NewClient[LogoutRequest, LogoutResponse](httpClient, baseURL+UserServiceLogoutProcedure, opts...),
		getCurrentUser: connect.NewClient[GetCurrentUserRequest, GetCurrentUserResponse](httpClient, baseURL+UserServiceGetCurrentUserProcedure, opts...),
		getUser:        connect.NewClient[GetUserRequest, GetUserResponse](httpClient, baseURL+UserServiceGetUserProcedure, opts...),
	}
}

func (c *userServiceClient) Signup(ctx context.Context, req *connect.Request[SignupRequest]) (*connect.Response[SignupResponse], error) {
	return c.signup.CallUnary(ctx, req)
}

func (c *userServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *userServiceClient) Logout(ctx context.Context, req *connect.Request[LogoutRequest]) (*connect.Response[LogoutResponse], error) {
	return c.logout.CallUnary(ctx, req)
}

func (c *userServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

func (c *userServiceClient) GetUser(ctx context.Context, req *connect.Request[GetUserRequest]) (*connect.Response[GetUserResponse], error) {
	return c.getUser.CallUnary(ctx, req)
}
