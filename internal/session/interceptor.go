package session

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/kazz187/taskmarket/internal/user"
	"github.com/kazz187/taskmarket/pkg/cerr"
	"github.com/kazz187/taskmarket/pkg/clog"
)

// BearerToken extracts the token from an "Authorization: Bearer" header value.
func BearerToken(header string) string {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// NewInterceptor attaches the session of a bearer token to the request
// context. Requests without a token pass through anonymously; a token that
// does not verify fails the request with Unauthenticated.
func NewInterceptor(m *Manager, users user.Repository) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				return next(ctx, req)
			}
			token := BearerToken(req.Header().Get("Authorization"))
			if token == "" {
				return next(ctx, req)
			}
			claims, err := m.Verify(token)
			if err != nil {
				return nil, err
			}
			u, err := users.Get(ctx, claims.UserID())
			if err != nil {
				if cerr.IsCode(err, cerr.NotFound) {
					return nil, cerr.NewError(cerr.Unauthenticated, "invalid session token", err)
				}
				return nil, err
			}
			clog.SetUser(ctx, u.ID)
			return next(WithSession(ctx, &Session{Claims: claims, User: u}), req)
		}
	}
}
