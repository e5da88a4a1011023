package client

import (
	"context"

	"connectrpc.com/connect"
)

// NewAuthInterceptor sends token as a bearer token on every call. An empty
// token sends nothing.
func NewAuthInterceptor(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient && token != "" {
				req.Header().Set("Authorization", "Bearer "+token)
			}
			return next(ctx, req)
		}
	}
}

func options(token string) []connect.ClientOption {
	return []connect.ClientOption{
		connect.WithInterceptors(NewAuthInterceptor(token)),
	}
}
