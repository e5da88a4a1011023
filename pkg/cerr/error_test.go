package cerr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/taskmarket/pkg/storage"
)

func TestError(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := NewError(FailedPrecondition, "cannot do that", fmt.Errorf("wrapped: %w", sentinel))

	assert.Equal(t, "[FailedPrecondition] cannot do that: wrapped: sentinel", err.Error())
	assert.ErrorIs(t, err, sentinel)
	assert.True(t, IsCode(err, FailedPrecondition))
	assert.True(t, IsCode(fmt.Errorf("outer: %w", err), FailedPrecondition))
	assert.False(t, IsCode(sentinel, FailedPrecondition))
	assert.Empty(t, err.Stack)

	internal := NewError(Internal, "server error", nil)
	assert.NotEmpty(t, internal.Stack)
	assert.Equal(t, "[Internal] server error", internal.Error())
}

func TestExtractConnectError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode connect.Code
		wantMsg  string
	}{
		{
			name:     "coded error",
			err:      NewError(NotFound, "task not found", errors.New("task t1")),
			wantCode: connect.CodeNotFound,
			wantMsg:  "task not found",
		},
		{
			name:     "wrapped coded error",
			err:      fmt.Errorf("outer: %w", NewError(PermissionDenied, "nope", nil)),
			wantCode: connect.CodePermissionDenied,
			wantMsg:  "nope",
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			wantCode: connect.CodeUnknown,
			wantMsg:  "unknown error",
		},
		{
			name:     "context cancelled",
			err:      context.Canceled,
			wantCode: connect.CodeCanceled,
			wantMsg:  "connection closed",
		},
		{
			name:     "connect error passes through",
			err:      connect.NewError(connect.CodeInvalidArgument, errors.New("bad json")),
			wantCode: connect.CodeInvalidArgument,
			wantMsg:  "bad json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ExtractConnectError(context.Background(), tt.err)
			var connectErr *connect.Error
			require.True(t, errors.As(err, &connectErr))
			assert.Equal(t, tt.wantCode, connectErr.Code())
			assert.Equal(t, tt.wantMsg, connectErr.Message())
		})
	}

	assert.NoError(t, ExtractConnectError(context.Background(), nil))
}

func TestConnectError_CarriesDetails(t *testing.T) {
	err := NewError(InvalidArgument, "invalid task", nil).
		WithViolation("title.required", "title is required")
	connectErr := err.ConnectError()
	require.Len(t, connectErr.Details(), 1)
	assert.Equal(t, "buf.validate.Violation", connectErr.Details()[0].Type())
}

func TestConvertErrorChiMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name: "response",
			handler: func(_ http.ResponseWriter, r *http.Request) {
				SetJSONResponse(r.Context(), map[string]string{"hello": "world"})
			},
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"hello": "world"},
		},
		{
			name: "coded error",
			handler: func(_ http.ResponseWriter, r *http.Request) {
				SetNewJSONError(r.Context(), NotFound, "task not found", nil)
			},
			wantStatus: http.StatusNotFound,
			wantBody:   map[string]any{"code": "NotFound", "message": "task not found"},
		},
		{
			name: "plain error",
			handler: func(_ http.ResponseWriter, r *http.Request) {
				SetJSONError(r.Context(), errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"code": "Unknown", "message": "unknown error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewConvertErrorChiMiddleware()(tt.handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestCode(t *testing.T) {
	assert.Equal(t, "FailedPrecondition", FailedPrecondition.String())
	assert.Equal(t, connect.CodeFailedPrecondition, FailedPrecondition.ConnectCode())
	assert.Equal(t, http.StatusPreconditionFailed, FailedPrecondition.HTTPCode())
	assert.Equal(t, "Code(99)", Code(99).String())
	assert.Equal(t, http.StatusInternalServerError, Code(99).HTTPCode())

	assert.Equal(t, NotFound, CodeOf(connect.NewError(connect.CodeNotFound, errors.New("gone"))))
	assert.Equal(t, Unknown, CodeOf(errors.New("plain")))
}

func TestWrapStorageError(t *testing.T) {
	err := WrapStorageError("users/a.yaml", fmt.Errorf("read: %w", storage.ErrNotFound))
	assert.True(t, IsCode(err, NotFound))
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = WrapStorageError("users/", errors.New("access denied"))
	assert.True(t, IsCode(err, Internal))
}
