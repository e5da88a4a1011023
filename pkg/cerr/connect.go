package cerr

import (
	"context"
	"errors"
	"net"

	"connectrpc.com/connect"

	"github.com/kazz187/taskmarket/pkg/clog"
)

// NewConvertConnectErrorInterceptor turns errors returned by handlers into
// Connect errors carrying the mapped code and details.
func NewConvertConnectErrorInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			resp, err := next(ctx, req)
			if req.Spec().IsClient {
				return resp, err
			}
			return resp, ExtractConnectError(ctx, err)
		}
	}
}

// ExtractConnectError converts err for the wire and records the original on
// the request's log scope.
func ExtractConnectError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if isHangup(err) {
		return NewError(Canceled, "connection closed", err).ConnectError()
	}

	// Codec failures and inner handlers already produce connect errors.
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}
	return record(ctx, err).ConnectError()
}

// record logs err on ctx and returns it as an *Error, wrapping errors that
// carry no code as Unknown.
func record(ctx context.Context, err error) *Error {
	clog.AddError(ctx, err)
	var e *Error
	if !errors.As(err, &e) {
		return NewError(Unknown, "unknown error", err)
	}
	if e.Stack != "" {
		clog.AddStack(ctx, e.Stack)
	}
	return e
}

func isHangup(err error) bool {
	if errors.Is(err, context.Canceled) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr) && dnsErr.Err == "operation was canceled"
}
