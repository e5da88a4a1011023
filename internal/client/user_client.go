package client

import (
	"context"
	"fmt"

	"connectrpc.com/connect"

	"github.com/kazz187/taskmarket/internal/rpc"
)

// UserClient provides sign-in and user directory operations
type UserClient struct {
	client rpc.UserServiceClient
}

func NewUserClient(httpClient connect.HTTPClient, baseURL, token string) *UserClient {
	return &UserClient{
		client: rpc.NewUserServiceClient(httpClient, baseURL, options(token)...),
	}
}

// Login returns the signed-in user and the session token to send afterwards.
func (c *UserClient) Login(ctx context.Context, email, password string) (*rpc.User, string, error) {
	resp, err := c.client.Login(ctx, connect.NewRequest(&rpc.LoginRequest{
		Email:    email,
		Password: password,
	}))
	if err != nil {
		return nil, "", fmt.Errorf("failed to log in: %w", err)
	}
	return resp.Msg.User, resp.Msg.Token, nil
}

func (c *UserClient) Signup(ctx context.Context, in *rpc.SignupRequest) (*rpc.User, string, error) {
	resp, err := c.client.Signup(ctx, connect.NewRequest(in))
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign up: %w", err)
	}
	return resp.Msg.User, resp.Msg.Token, nil
}

func (c *UserClient) Logout(ctx context.Context) error {
	if _, err := c.client.Logout(ctx, connect.NewRequest(&rpc.LogoutRequest{})); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	return nil
}

func (c *UserClient) CurrentUser(ctx context.Context) (*rpc.User, error) {
	resp, err := c.client.GetCurrentUser(ctx, connect.NewRequest(&rpc.GetCurrentUserRequest{}))
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return resp.Msg.User, nil
}

func (c *UserClient) GetUser(ctx context.Context, userID string) (*rpc.User, error) {
	resp, err := c.client.GetUser(ctx, connect.NewRequest(&rpc.GetUserRequest{ID: userID}))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return resp.Msg.User, nil
}
