// Package cerr defines coded errors that render to both Connect errors and
// JSON HTTP responses.
package cerr

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"buf.build/gen/go/bufbuild/protovalidate/protocolbuffers/go/buf/validate"
	"connectrpc.com/connect"
	"google.golang.org/protobuf/proto"

	"github.com/kazz187/taskmarket/pkg/clog"
)

type Error struct {
	Code    Code
	Msg     string          // returned to the caller together with Code
	Err     error           // logged, never returned to the caller
	Stack   string          // captured for server-fault codes only
	Details []proto.Message // returned to the caller as error details
}

func NewError(code Code, msg string, underlying error) *Error {
	err := &Error{
		Code: code,
		Msg:  msg,
		Err:  underlying,
	}
	if clog.LevelForCode(code.ConnectCode()) >= slog.LevelError {
		buf := make([]byte, 2048)
		err.Stack = string(buf[:runtime.Stack(buf, false)])
	}
	return err
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Msg, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithViolation attaches a field violation. ruleID names the field and the
// rule it broke, e.g. "title.required".
func (e *Error) WithViolation(ruleID, msg string) *Error {
	e.Details = append(e.Details, &validate.Violation{
		RuleId:  &ruleID,
		Message: &msg,
	})
	return e
}

func (e *Error) ConnectError() *connect.Error {
	connectErr := connect.NewError(e.Code.ConnectCode(), errors.New(e.Msg))
	for _, msg := range e.Details {
		detail, err := connect.NewErrorDetail(msg)
		if err != nil {
			continue
		}
		connectErr.AddDetail(detail)
	}
	return connectErr
}

func IsCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
