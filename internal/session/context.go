package session

import (
	"context"

	"github.com/kazz187/taskmarket/internal/user"
	"github.com/kazz187/taskmarket/pkg/cerr"
)

type Session struct {
	Claims *Claims
	User   *user.User
}

type sessionKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}

// CurrentUser returns the signed-in user of the request, if any.
func CurrentUser(ctx context.Context) (*user.User, bool) {
	s, ok := FromContext(ctx)
	if !ok {
		return nil, false
	}
	return s.User, true
}

// RequireUser is CurrentUser for operations that need a signed-in user.
func RequireUser(ctx context.Context) (*user.User, error) {
	u, ok := CurrentUser(ctx)
	if !ok {
		return nil, cerr.NewError(cerr.Unauthenticated, "sign in required", nil)
	}
	return u, nil
}
