package clog

import (
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
)

// LevelForStatus maps an HTTP status to the level its access line is
// written at. 499 is a client hanging up.
func LevelForStatus(status int) slog.Level {
	switch {
	case status == 499, status >= 100 && status < http.StatusBadRequest:
		return slog.LevelInfo
	case status >= http.StatusBadRequest && status < http.StatusInternalServerError:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// LevelForCode maps a Connect code to a log level. Codes a caller can cause
// on its own are informational; the rest mean the server is at fault.
func LevelForCode(code connect.Code) slog.Level {
	switch code {
	case connect.CodeCanceled,
		connect.CodeInvalidArgument,
		connect.CodeDeadlineExceeded,
		connect.CodeNotFound,
		connect.CodeAlreadyExists,
		connect.CodePermissionDenied,
		connect.CodeFailedPrecondition,
		connect.CodeAborted,
		connect.CodeOutOfRange,
		connect.CodeUnauthenticated:
		return slog.LevelInfo
	default:
		return slog.LevelError
	}
}
