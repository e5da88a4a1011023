// Package clog collects log attributes over the lifetime of a request and
// attaches them to every record logged with that request's context.
package clog

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"
)

const (
	ErrorKey  = "error.message"
	StackKey  = "error.stack"
	UserIDKey = "user_id"
	TaskIDKey = "task_id"
)

// scope is shared by every context derived from the one NewScope returned,
// so attributes set deep in a handler show up in the access line.
type scope struct {
	mu    sync.Mutex
	attrs map[string]any
}

type scopeKey struct{}

// NewScope returns a context carrying an empty attribute scope. Attributes
// set on a context without a scope are dropped.
func NewScope(ctx context.Context) context.Context {
	return context.WithValue(ctx, scopeKey{}, &scope{attrs: map[string]any{}})
}

func scopeFrom(ctx context.Context) *scope {
	s, _ := ctx.Value(scopeKey{}).(*scope)
	return s
}

func Set(ctx context.Context, key string, value any) {
	s := scopeFrom(ctx)
	if s == nil {
		return
	}
	s.mu.Lock()
	s.attrs[key] = value
	s.mu.Unlock()
}

func SetAll(ctx context.Context, attrs map[string]any) {
	s := scopeFrom(ctx)
	if s == nil {
		return
	}
	s.mu.Lock()
	maps.Copy(s.attrs, attrs)
	s.mu.Unlock()
}

// Lookup returns the attribute stored under key if it has type T.
func Lookup[T any](ctx context.Context, key string) (T, bool) {
	var zero T
	s := scopeFrom(ctx)
	if s == nil {
		return zero, false
	}
	s.mu.Lock()
	v, ok := s.attrs[key]
	s.mu.Unlock()
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Attrs returns the scope's attributes ordered by key.
func Attrs(ctx context.Context) []slog.Attr {
	s := scopeFrom(ctx)
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]slog.Attr, 0, len(s.attrs))
	for _, k := range slices.Sorted(maps.Keys(s.attrs)) {
		out = append(out, slog.Any(k, s.attrs[k]))
	}
	return out
}

func AddError(ctx context.Context, err error) {
	Set(ctx, ErrorKey, err)
}

func AddStack(ctx context.Context, stack string) {
	Set(ctx, StackKey, stack)
}

// SetUser records the signed-in user serving the request.
func SetUser(ctx context.Context, userID string) {
	Set(ctx, UserIDKey, userID)
}

// SetTask records the task a request operates on.
func SetTask(ctx context.Context, taskID string) {
	Set(ctx, TaskIDKey, taskID)
}
