package cerr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kazz187/taskmarket/pkg/clog"
)

type resultKey struct{}

// result is what a chi handler reports for the middleware to render.
type result struct {
	body any
	err  error
}

func resultFrom(ctx context.Context) *result {
	r, _ := ctx.Value(resultKey{}).(*result)
	return r
}

// SetJSONResponse records the value the middleware encodes once the handler
// returns.
func SetJSONResponse(ctx context.Context, body any) {
	if r := resultFrom(ctx); r != nil {
		r.body = body
	}
}

func SetJSONError(ctx context.Context, err error) {
	if r := resultFrom(ctx); r != nil {
		r.err = err
	}
}

func SetNewJSONError(ctx context.Context, code Code, msg string, err error) {
	SetJSONError(ctx, NewError(code, msg, err))
}

// NewConvertErrorChiMiddleware lets chi handlers report results through
// SetJSONResponse and SetJSONError instead of writing the response
// themselves.
func NewConvertErrorChiMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			res := &result{}
			ctx := context.WithValue(r.Context(), resultKey{}, res)
			next.ServeHTTP(rw, r.WithContext(ctx))
			res.write(ctx, rw)
		})
	}
}

type httpError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (res *result) write(ctx context.Context, rw http.ResponseWriter) {
	if res.err == nil {
		body, err := encode(res.body)
		if err != nil {
			writeError(ctx, rw, NewError(Internal, "server error", err))
			return
		}
		writeBody(ctx, rw, http.StatusOK, body)
		return
	}
	if isHangup(res.err) {
		writeError(ctx, rw, NewError(Canceled, "connection closed", res.err))
		return
	}
	writeError(ctx, rw, record(ctx, res.err))
}

func writeError(ctx context.Context, rw http.ResponseWriter, e *Error) {
	body, err := encode(httpError{Code: e.Code.String(), Message: e.Msg})
	if err != nil {
		clog.AddError(ctx, errors.Join(e, err))
		body = []byte(`{"code":"Internal","message":"server error"}` + "\n")
	}
	writeBody(ctx, rw, e.Code.HTTPCode(), body)
}

func writeBody(ctx context.Context, rw http.ResponseWriter, status int, body []byte) {
	rw.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.WriteHeader(status)
	if _, err := rw.Write(body); err != nil {
		clog.AddError(ctx, NewError(Internal, "failed to write response", err))
	}
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
