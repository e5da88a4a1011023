package clog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/proto"
)

const healthCheckProcedure = "/grpc.health.v1.Health/Check"

// ConnectOption configures NewSlogConnectInterceptor.
type ConnectOption func(*connectConfig)

type connectConfig struct {
	skip func(spec connect.Spec) bool
}

// SkipProcedures suppresses the access line for procedures skip accepts.
func SkipProcedures(skip func(spec connect.Spec) bool) ConnectOption {
	return func(cfg *connectConfig) {
		cfg.skip = skip
	}
}

// IsHealthCheck reports whether spec is the gRPC health probe.
func IsHealthCheck(spec connect.Spec) bool {
	return spec.Procedure == healthCheckProcedure
}

// NewSlogConnectInterceptor opens a log scope for every unary call handled
// by the server and writes one access line when the call returns.
func NewSlogConnectInterceptor(opts ...ConnectOption) connect.UnaryInterceptorFunc {
	var cfg connectConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				return next(ctx, req)
			}
			start := time.Now()
			ctx = NewScope(ctx)
			SetAll(ctx, map[string]any{
				"method":    req.HTTPMethod(),
				"procedure": req.Spec().Procedure,
				"peer":      req.Peer().Addr,
			})
			resp, err := next(ctx, req)
			if cfg.skip != nil && cfg.skip(req.Spec()) {
				return resp, err
			}

			if err == nil {
				SetAll(ctx, map[string]any{"code": "ok", "duration": time.Since(start)})
				slog.InfoContext(ctx, "finished")
				return resp, nil
			}
			var connectErr *connect.Error
			if !errors.As(err, &connectErr) {
				connectErr = connect.NewError(connect.CodeUnknown, err)
			}
			SetAll(ctx, map[string]any{"code": connectErr.Code().String(), "duration": time.Since(start)})
			logConnectError(ctx, connectErr)
			return resp, err
		}
	}
}

func logConnectError(ctx context.Context, connectErr *connect.Error) {
	if details := connectErr.Details(); len(details) > 0 {
		msgs := make([]proto.Message, 0, len(details))
		for _, d := range details {
			msg, err := d.Value()
			if err != nil {
				slog.ErrorContext(ctx, "failed to decode error detail", ErrorKey, err)
				continue
			}
			msgs = append(msgs, msg)
		}
		Set(ctx, "error.details", msgs)
	}
	slog.Log(ctx, LevelForCode(connectErr.Code()), connectErr.Message())
}
